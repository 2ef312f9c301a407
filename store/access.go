package store

import (
	"context"
	"fmt"
)

// writerRole is the remote role granted to other accounts.
const writerRole = "writer"

// Grant gives the email write access to the principal's own spreadsheet.
// The remote service notifies the grantee by email.
func (s *Store) Grant(ctx context.Context, email string) error {
	id, err := s.originalID()
	if err != nil {
		return err
	}
	err = s.withRetry(ctx, func() error {
		return s.remote.CreatePermission(ctx, id, email, writerRole)
	})
	if err != nil {
		return fmt.Errorf("grant access to %s: %w", email, err)
	}
	return nil
}

// ListGrants lists the access delegations on the principal's own
// spreadsheet. The owner entry is excluded.
func (s *Store) ListGrants(ctx context.Context) ([]Grant, error) {
	id, err := s.originalID()
	if err != nil {
		return nil, err
	}
	var all []Grant
	err = s.withRetry(ctx, func() error {
		grants, err := s.remote.ListPermissions(ctx, id)
		all = grants
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	grants := make([]Grant, 0, len(all))
	for _, g := range all {
		if g.Role == "owner" {
			continue
		}
		grants = append(grants, g)
	}
	return grants, nil
}

// Revoke removes a previously created grant by its id.
func (s *Store) Revoke(ctx context.Context, grantID string) error {
	id, err := s.originalID()
	if err != nil {
		return err
	}
	err = s.withRetry(ctx, func() error {
		return s.remote.DeletePermission(ctx, id, grantID)
	})
	if err != nil {
		return fmt.Errorf("revoke grant %s: %w", grantID, err)
	}
	return nil
}

// originalID returns the principal's own spreadsheet id. Grants always
// operate on it, never on a shared spreadsheet the store switched to.
func (s *Store) originalID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.original == "" {
		return "", ErrNotInitialized
	}
	return s.original, nil
}
