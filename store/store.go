package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/setbook/sheetstore/internal/cellref"
)

// Store provides typed CRUD operations over one remote spreadsheet.
//
// A Store instance owns all mutable resolution state (the cached
// spreadsheet ids and the in-flight bootstrap), so independent instances
// are fully isolated. A Store is safe for concurrent use.
type Store struct {
	remote Remote
	schema *Schema
	config Config
	logger *slog.Logger

	resolving singleflight.Group

	mu       sync.Mutex
	original string // the principal's own spreadsheet, set once
	active   string // what operations currently target
}

// New creates a Store over the given remote service and schema.
func New(remote Remote, schema *Schema, config Config) *Store {
	config.validate()
	return &Store{
		remote: remote,
		schema: schema,
		config: config,
		logger: config.Logger,
	}
}

// Schema returns the table schema the store enforces.
func (s *Store) Schema() *Schema {
	return s.schema
}

// Eq is an equality predicate on one column. Values are compared both raw
// and string-coerced, so numeric and string forms of the same identifier
// match each other.
type Eq struct {
	Column string
	Value  any
}

// Bound is a half-open range endpoint on one column.
type Bound struct {
	Column string
	Value  any
}

// Query filters and orders a Select. Filters apply in order: Eq, then
// Gte/Lt, then ordering.
type Query struct {
	Eq         *Eq
	Gte        *Bound
	Lt         *Bound
	OrderBy    string
	Descending bool
}

// Select reads all rows of a table, decodes them, and applies the query.
// It returns an empty slice when the table has no data rows, and degrades
// to an empty slice when the remote call stayed rate-limited through every
// retry.
func (s *Store) Select(ctx context.Context, table string, q *Query) ([]Record, error) {
	cols, err := s.schema.Columns(table)
	if err != nil {
		return nil, err
	}
	id, err := s.activeID()
	if err != nil {
		return nil, err
	}

	var raw [][]string
	err = s.withRetry(ctx, func() error {
		rows, err := s.remote.ReadRange(ctx, id, cellref.FullSpan(table))
		raw = rows
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			// Reads degrade rather than cascade the throttling upward.
			s.logger.Warn("select degraded to empty result after retries",
				"table", table,
				"error", err,
			)
			return []Record{}, nil
		}
		return nil, err
	}

	if len(raw) < 2 {
		return []Record{}, nil
	}
	records := make([]Record, 0, len(raw)-1)
	for _, row := range raw[1:] {
		records = append(records, DecodeRow(cols, row))
	}
	return applyQuery(records, q), nil
}

// Insert appends the records to the table in one batched call. Records
// without an "id" get a generated one written back into the record, and a
// "user_id" foreign key is forced to its string form before encoding.
func (s *Store) Insert(ctx context.Context, table string, records ...Record) error {
	cols, err := s.schema.Columns(table)
	if err != nil {
		return err
	}
	id, err := s.activeID()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if v, ok := rec["id"]; !ok || v == nil || v == "" {
			rec["id"] = GenerateID()
		}
		if v, ok := rec["user_id"]; ok && v != nil {
			rec["user_id"] = coerceString(v)
		}
		rows = append(rows, EncodeRow(cols, rec))
	}

	return s.withRetry(ctx, func() error {
		return s.remote.AppendRows(ctx, id, cellref.FullSpan(table), rows)
	})
}

// Update locates the first row matching eq from a fresh read, merges the
// partial record onto it, and overwrites exactly that row. Returns
// ErrRowNotFound when nothing matches.
func (s *Store) Update(ctx context.Context, table string, partial Record, eq Eq) error {
	cols, err := s.schema.Columns(table)
	if err != nil {
		return err
	}
	id, err := s.activeID()
	if err != nil {
		return err
	}

	// Row positions shift under concurrent deletes, so the target is
	// re-located from a fresh read on every call.
	idx, current, err := s.locate(ctx, id, table, cols, eq)
	if err != nil {
		return err
	}

	merged := make(Record, len(current)+len(partial))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}

	rng := cellref.RowSpan(table, idx+2, len(cols))
	return s.withRetry(ctx, func() error {
		return s.remote.UpdateRange(ctx, id, rng, [][]string{EncodeRow(cols, merged)})
	})
}

// Delete locates the first row matching eq from a fresh read and removes
// that physical row, shifting subsequent rows up. Returns ErrRowNotFound
// when nothing matches.
func (s *Store) Delete(ctx context.Context, table string, eq Eq) error {
	cols, err := s.schema.Columns(table)
	if err != nil {
		return err
	}
	id, err := s.activeID()
	if err != nil {
		return err
	}

	idx, _, err := s.locate(ctx, id, table, cols, eq)
	if err != nil {
		return err
	}

	var sheets []SheetInfo
	err = s.withRetry(ctx, func() error {
		infos, err := s.remote.Sheets(ctx, id)
		sheets = infos
		return err
	})
	if err != nil {
		return err
	}
	sheetID := int64(-1)
	for _, info := range sheets {
		if info.Title == table {
			sheetID = info.ID
			break
		}
	}
	if sheetID < 0 {
		return fmt.Errorf("%w: sheet %q missing from spreadsheet", ErrUnknownTable, table)
	}

	// Record idx sits at 0-based sheet row idx+1 (row 0 is the header).
	start := int64(idx + 1)
	return s.withRetry(ctx, func() error {
		return s.remote.DeleteRows(ctx, id, sheetID, start, start+1)
	})
}

// locate reads the whole table and returns the 0-based record index and
// decoded record of the first row matching eq. Rate-limit errors here
// surface to the caller: locate only runs as part of a write.
func (s *Store) locate(ctx context.Context, spreadsheetID, table string, cols []string, eq Eq) (int, Record, error) {
	var raw [][]string
	err := s.withRetry(ctx, func() error {
		rows, err := s.remote.ReadRange(ctx, spreadsheetID, cellref.FullSpan(table))
		raw = rows
		return err
	})
	if err != nil {
		return 0, nil, err
	}

	if len(raw) > 1 {
		for i, row := range raw[1:] {
			rec := DecodeRow(cols, row)
			if eqMatch(rec[eq.Column], eq.Value) {
				return i, rec, nil
			}
		}
	}
	return 0, nil, fmt.Errorf("%w: %s.%s = %v", ErrRowNotFound, table, eq.Column, eq.Value)
}

// activeID returns the spreadsheet id operations currently target.
func (s *Store) activeID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == "" {
		return "", ErrNotInitialized
	}
	return s.active, nil
}

// GenerateID returns a fresh row id: epoch milliseconds plus a short random
// suffix, keeping ids lexically near-ordered by creation time.
func GenerateID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + suffix
}

// applyQuery filters and orders decoded records.
func applyQuery(records []Record, q *Query) []Record {
	if q == nil {
		return records
	}

	out := records[:0:0]
	for _, rec := range records {
		if q.Eq != nil && !eqMatch(rec[q.Eq.Column], q.Eq.Value) {
			continue
		}
		if q.Gte != nil && compareValues(rec[q.Gte.Column], q.Gte.Value) < 0 {
			continue
		}
		if q.Lt != nil && compareValues(rec[q.Lt.Column], q.Lt.Value) >= 0 {
			continue
		}
		out = append(out, rec)
	}

	if q.OrderBy != "" {
		col, desc := q.OrderBy, q.Descending
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i][col], out[j][col])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if out == nil {
		out = []Record{}
	}
	return out
}

// eqMatch compares values raw and string-coerced, tolerating number/string
// identifier mismatches.
func eqMatch(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	return coerceString(a) == coerceString(b)
}

// compareValues orders two cell values: numerically when both are numeric,
// lexically otherwise. nil sorts before everything.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(coerceString(a), coerceString(b))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}

// coerceString renders a value the way it would appear in a cell, without
// the identifier text marker.
func coerceString(v any) string {
	return encodeValue(v)
}
