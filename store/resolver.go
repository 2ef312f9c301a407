package store

import (
	"context"
	"fmt"

	"github.com/setbook/sheetstore/internal/cellref"
)

// Resolve finds or creates the principal's spreadsheet, guarantees every
// schema table and header exists, caches the id for the Store's lifetime,
// and returns it. Concurrent callers share a single in-flight resolution;
// later callers hit the cache.
//
// For an existing spreadsheet the table repair is best-effort: a repair
// that still fails after retries is logged and the known id is returned
// anyway. For a freshly created spreadsheet the bootstrap must complete,
// so failures surface.
func (s *Store) Resolve(ctx context.Context, p Principal) (string, error) {
	if p.IsZero() || p.IsPending() {
		return "", ErrNotAuthenticated
	}

	s.mu.Lock()
	if s.original != "" {
		id := s.original
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	v, err, _ := s.resolving.Do("resolve", func() (any, error) {
		id, err := s.resolveSpreadsheet(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.original = id
		if s.active == "" {
			s.active = id
		}
		s.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Store) resolveSpreadsheet(ctx context.Context) (string, error) {
	var id string
	err := s.withRetry(ctx, func() error {
		found, err := s.remote.FindSpreadsheet(ctx, s.config.SpreadsheetTitle)
		id = found
		return err
	})
	if err != nil {
		return "", fmt.Errorf("find spreadsheet: %w", err)
	}

	if id != "" {
		if err := s.ensureTables(ctx, id); err != nil {
			s.logger.Warn("table repair failed, continuing with known spreadsheet",
				"spreadsheet", id,
				"error", err,
			)
		}
		return id, nil
	}

	err = s.withRetry(ctx, func() error {
		created, err := s.remote.CreateSpreadsheet(ctx, s.config.SpreadsheetTitle)
		id = created
		return err
	})
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}
	if err := s.ensureTables(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// ensureTables adds every missing schema table with its header row and
// appends missing trailing header columns on existing tables. It never
// deletes or reorders anything: columns are append-only, so existing data
// rows keep their positional meaning.
func (s *Store) ensureTables(ctx context.Context, spreadsheetID string) error {
	var sheets []SheetInfo
	err := s.withRetry(ctx, func() error {
		infos, err := s.remote.Sheets(ctx, spreadsheetID)
		sheets = infos
		return err
	})
	if err != nil {
		return fmt.Errorf("list sheets: %w", err)
	}
	existing := make(map[string]bool, len(sheets))
	for _, info := range sheets {
		existing[info.Title] = true
	}

	for _, table := range s.schema.Tables() {
		if !existing[table.Name] {
			if err := s.createTable(ctx, spreadsheetID, table); err != nil {
				return err
			}
			continue
		}
		if err := s.repairHeader(ctx, spreadsheetID, table); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) createTable(ctx context.Context, spreadsheetID string, table Table) error {
	err := s.withRetry(ctx, func() error {
		return s.remote.AddSheet(ctx, spreadsheetID, table.Name)
	})
	if err != nil {
		return fmt.Errorf("add sheet %q: %w", table.Name, err)
	}
	rng := cellref.RowSpan(table.Name, 1, len(table.Columns))
	err = s.withRetry(ctx, func() error {
		return s.remote.UpdateRange(ctx, spreadsheetID, rng, [][]string{table.Columns})
	})
	if err != nil {
		return fmt.Errorf("write header %q: %w", table.Name, err)
	}
	return nil
}

func (s *Store) repairHeader(ctx context.Context, spreadsheetID string, table Table) error {
	rng := cellref.RowSpan(table.Name, 1, len(table.Columns))
	var raw [][]string
	err := s.withRetry(ctx, func() error {
		rows, err := s.remote.ReadRange(ctx, spreadsheetID, rng)
		raw = rows
		return err
	})
	if err != nil {
		return fmt.Errorf("read header %q: %w", table.Name, err)
	}
	var header []string
	if len(raw) > 0 {
		header = raw[0]
	}

	// First position where the header stops agreeing with the schema.
	diverge := len(table.Columns)
	for i, col := range table.Columns {
		if i >= len(header) || header[i] != col {
			diverge = i
			break
		}
	}
	if diverge == len(table.Columns) {
		return nil
	}

	seg := cellref.Segment(table.Name, 1, diverge, len(table.Columns)-1)
	err = s.withRetry(ctx, func() error {
		return s.remote.UpdateRange(ctx, spreadsheetID, seg, [][]string{table.Columns[diverge:]})
	})
	if err != nil {
		return fmt.Errorf("repair header %q: %w", table.Name, err)
	}
	return nil
}
