// Package cellref builds A1-notation range references for sheet tables.
package cellref

import (
	"fmt"
	"strings"
)

// ColumnLetter converts a 0-based column index to its letter form
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnLetter(n int) string {
	letters := ""
	for n >= 0 {
		letters = string(rune('A'+n%26)) + letters
		n = n/26 - 1
	}
	return letters
}

// Title quotes a sheet title for use in a range reference when it contains
// characters A1 notation would misparse.
func Title(t string) string {
	for _, r := range t {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	}
	return t
}

// FullSpan addresses every cell of a table: header row plus all data rows.
func FullSpan(table string) string {
	return Title(table) + "!A:ZZ"
}

// RowSpan addresses one whole 1-based row across ncols columns.
func RowSpan(table string, row, ncols int) string {
	return fmt.Sprintf("%s!A%d:%s%d", Title(table), row, ColumnLetter(ncols-1), row)
}

// Segment addresses the cells of one 1-based row from 0-based column start
// up to and including column end.
func Segment(table string, row, start, end int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", Title(table), ColumnLetter(start), row, ColumnLetter(end), row)
}
