package store

import "errors"

var (
	// ErrNotAuthenticated is returned when no credential is available, or
	// when a pending principal has not been linked to a verified identity.
	ErrNotAuthenticated = errors.New("sheetstore: not authenticated")

	// ErrNotInitialized is returned when an operation is attempted before a
	// spreadsheet has been resolved.
	ErrNotInitialized = errors.New("sheetstore: spreadsheet not resolved")

	// ErrRateLimited is returned (possibly wrapped) when the remote service
	// throttled a call. It is the only retryable error.
	ErrRateLimited = errors.New("sheetstore: rate limited")

	// ErrPermissionDenied is returned (possibly wrapped) when the remote
	// service rejected the caller's access to a spreadsheet.
	ErrPermissionDenied = errors.New("sheetstore: permission denied")

	// ErrUnknownTable is returned when the schema has no entry for the
	// requested table name. This is a programming error, never retried.
	ErrUnknownTable = errors.New("sheetstore: unknown table")

	// ErrRowNotFound is returned when an update or delete predicate matched
	// no row.
	ErrRowNotFound = errors.New("sheetstore: row not found")
)
