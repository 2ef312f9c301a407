package store

import "context"

// SwitchTo redirects all subsequent operations to the given spreadsheet,
// typically one shared by another account. Passing "" restores the
// principal's own spreadsheet.
//
// The target's tables are validated best-effort before the switch; a
// repair failure is logged, not fatal. No authorization check happens
// locally: an unauthorized switch surfaces as ErrPermissionDenied on the
// first subsequent operation.
func (s *Store) SwitchTo(ctx context.Context, spreadsheetID string) error {
	s.mu.Lock()
	original := s.original
	s.mu.Unlock()
	if original == "" {
		return ErrNotInitialized
	}

	if spreadsheetID == "" {
		s.mu.Lock()
		s.active = original
		s.mu.Unlock()
		return nil
	}

	if err := s.ensureTables(ctx, spreadsheetID); err != nil {
		s.logger.Warn("shared spreadsheet validation failed, switching anyway",
			"spreadsheet", spreadsheetID,
			"error", err,
		)
	}

	s.mu.Lock()
	s.active = spreadsheetID
	s.mu.Unlock()
	return nil
}

// CurrentSpreadsheet returns the spreadsheet id operations currently
// target, or "" before resolution.
func (s *Store) CurrentSpreadsheet() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// OriginalSpreadsheet returns the principal's own spreadsheet id, or ""
// before resolution.
func (s *Store) OriginalSpreadsheet() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original
}
