package store

import (
	"fmt"
	"strings"
)

// Table describes one named table: an ordered, append-only column list.
// Column order is the on-the-wire row layout; new columns may only be added
// at the end.
type Table struct {
	Name    string
	Columns []string
}

// Schema holds all tables stored in one spreadsheet, in creation order.
type Schema struct {
	tables []Table
	byName map[string][]string
}

// NewSchema creates a Schema from the given tables.
func NewSchema(tables ...Table) *Schema {
	s := &Schema{
		tables: tables,
		byName: make(map[string][]string, len(tables)),
	}
	for _, t := range tables {
		s.byName[t.Name] = t.Columns
	}
	return s
}

// Tables returns all tables in declaration order.
func (s *Schema) Tables() []Table {
	return s.tables
}

// Columns returns the ordered column list for a table, or ErrUnknownTable
// if the name is not registered.
func (s *Schema) Columns(table string) ([]string, error) {
	cols, ok := s.byName[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return cols, nil
}

// IsIdentifierColumn reports whether a column carries an opaque identifier.
// Identifier columns ("id" and any "*_id" foreign key) are stored and
// returned as strings end-to-end: the spreadsheet auto-infers numeric types
// and silently truncates precision for large integers, so they must never
// reach it as bare numbers.
func IsIdentifierColumn(name string) bool {
	return name == "id" || strings.HasSuffix(name, "_id")
}

// DefaultSchema returns the workout-tracking tables.
func DefaultSchema() *Schema {
	return NewSchema(
		Table{Name: "users", Columns: []string{
			"id", "email", "name", "created_at",
		}},
		Table{Name: "workouts", Columns: []string{
			"id", "user_id", "name", "status", "scheduled_for", "expires_at", "created_at", "updated_at",
		}},
		Table{Name: "workout_exercises", Columns: []string{
			"id", "workout_id", "user_id", "exercise_name", "sets", "reps", "weight", "position",
		}},
		Table{Name: "settings", Columns: []string{
			"id", "user_id", "key", "value",
		}},
	)
}
