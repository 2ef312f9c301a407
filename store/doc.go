// Package store turns a single Google Spreadsheet into a schema-enforced,
// multi-table row store with typed CRUD operations.
//
// Sheetstore is designed for applications that want a zero-infrastructure
// database: every table is a sheet inside one spreadsheet, row 1 is the
// header, and each data row is one record keyed by its "id" column.
//
// # Key Features
//
//   - Lazy, idempotent bootstrap: the spreadsheet and all schema tables are
//     discovered or created on first [Store.Resolve], deduplicated across
//     concurrent callers
//   - Additive schema repair: missing tables and trailing columns are added
//     on resolution without touching existing data
//   - Identifier precision: "id" and "*_id" columns survive round-trips as
//     opaque strings, immune to the spreadsheet's numeric auto-conversion
//   - Bounded retry with exponential backoff on rate-limit responses
//   - Tenant switching: all operations can be redirected to a spreadsheet
//     shared by another account, and back
//   - Write-access grants managed through the Drive permission system
//
// # Usage
//
//	remote, err := gsheets.New(ctx, tokenSource)
//	s := store.New(remote, store.DefaultSchema(), store.DefaultConfig())
//
//	if _, err := s.Resolve(ctx, store.Verified(userID)); err != nil {
//	    return err
//	}
//
//	err = s.Insert(ctx, "workouts", store.Record{"user_id": userID, "name": "Push Day"})
//	rows, err := s.Select(ctx, "workouts", &store.Query{
//	    Eq: &store.Eq{Column: "user_id", Value: userID},
//	})
//
// # Consistency
//
// The spreadsheet is a shared document: any account with write access may
// mutate it concurrently. The store holds no locks and no local row cache;
// Update and Delete re-read the table and re-locate the target row on every
// call, and concurrent writers resolve to last-write-wins at row
// granularity.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotAuthenticated] - no credential or an unlinked pending identity
//   - [ErrNotInitialized] - operation attempted before Resolve succeeded
//   - [ErrRateLimited] - the remote service throttled the call
//   - [ErrPermissionDenied] - the remote service rejected the caller
//   - [ErrUnknownTable] - the schema has no entry for the table name
//   - [ErrRowNotFound] - an update/delete predicate matched nothing
package store
