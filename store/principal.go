package store

// Principal is an authenticated identity. A verified principal carries the
// account id that owns (or is granted access to) a spreadsheet; a pending
// principal carries only an email address and cannot resolve a store until
// it is linked to a verified identity.
type Principal struct {
	id      string
	email   string
	pending bool
}

// Verified returns a principal for a known account id.
func Verified(id string) Principal {
	return Principal{id: id}
}

// Pending returns a placeholder principal for an invited email address that
// has not yet signed in.
func Pending(email string) Principal {
	return Principal{email: email, pending: true}
}

// Link upgrades a pending principal to a verified one once the identity
// step has bound the email to an account id.
func (p Principal) Link(id string) Principal {
	return Principal{id: id, email: p.email}
}

// ID returns the account id, or "" for pending principals.
func (p Principal) ID() string { return p.id }

// Email returns the invited email, or "" for verified principals created
// directly from an id.
func (p Principal) Email() string { return p.email }

// IsPending reports whether the principal still awaits identity linking.
func (p Principal) IsPending() bool { return p.pending }

// IsZero reports whether the principal carries no identity at all.
func (p Principal) IsZero() bool { return p.id == "" && p.email == "" }
