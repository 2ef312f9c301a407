package store

import "context"

// SheetInfo identifies one sheet (table) inside a spreadsheet.
type SheetInfo struct {
	// ID is the numeric sheet id used by structural batch operations.
	ID int64

	// Title is the sheet title, which equals the table name.
	Title string
}

// Grant is a write-access delegation on a spreadsheet.
type Grant struct {
	// ID is the permission id used for revocation.
	ID string

	// Email is the grantee's address.
	Email string

	// Role is the remote role name (e.g. "writer", "owner").
	Role string
}

// Remote is the spreadsheet service surface the store consumes. The
// production implementation lives in the gsheets package; tests provide a
// fake.
//
// Implementations must translate service failures into the package's error
// taxonomy: throttling as ErrRateLimited, missing credentials as
// ErrNotAuthenticated, and access rejections as ErrPermissionDenied (all
// wrapped, so the remote message survives).
type Remote interface {
	// ReadRange returns the cell values of an A1-notation range. Rows may
	// be ragged; trailing empty cells are not padded.
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)

	// AppendRows appends rows after the last data row of the ranged table.
	AppendRows(ctx context.Context, spreadsheetID, rng string, rows [][]string) error

	// UpdateRange overwrites exactly the addressed cells.
	UpdateRange(ctx context.Context, spreadsheetID, rng string, rows [][]string) error

	// Sheets lists the sheets of a spreadsheet.
	Sheets(ctx context.Context, spreadsheetID string) ([]SheetInfo, error)

	// AddSheet creates an empty sheet with the given title.
	AddSheet(ctx context.Context, spreadsheetID, title string) error

	// DeleteRows removes the half-open 0-based row interval [start, end)
	// from the sheet, shifting subsequent rows up.
	DeleteRows(ctx context.Context, spreadsheetID string, sheetID, start, end int64) error

	// FindSpreadsheet returns the id of the caller-owned, non-trashed
	// spreadsheet with the given title, or "" if none exists.
	FindSpreadsheet(ctx context.Context, title string) (string, error)

	// CreateSpreadsheet creates an empty spreadsheet and returns its id.
	CreateSpreadsheet(ctx context.Context, title string) (string, error)

	// CreatePermission grants the role to the email on the spreadsheet and
	// lets the service notify the grantee.
	CreatePermission(ctx context.Context, spreadsheetID, email, role string) error

	// ListPermissions lists all permissions on the spreadsheet, the owner
	// entry included.
	ListPermissions(ctx context.Context, spreadsheetID string) ([]Grant, error)

	// DeletePermission revokes a permission by id.
	DeletePermission(ctx context.Context, spreadsheetID, permissionID string) error
}
