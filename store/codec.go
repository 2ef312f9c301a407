package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one logical row, keyed by column name. Values are strings,
// bools, int64/float64 numbers, or nil; identifier columns are always
// strings.
type Record map[string]any

// textMarker is the escape character the spreadsheet recognizes as "treat
// this cell as literal text". Values in identifier columns are written with
// it so the service never auto-converts them to (lossy) numerics.
const textMarker = "'"

// EncodeRow maps a record onto the ordered column layout of a table,
// producing one flat row of cell strings. Missing and nil values become
// empty cells; identifier-column values are text-forced.
func EncodeRow(columns []string, rec Record) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		v, ok := rec[col]
		if !ok || v == nil {
			row[i] = ""
			continue
		}
		cell := encodeValue(v)
		if IsIdentifierColumn(col) && cell != "" {
			cell = textMarker + cell
		}
		row[i] = cell
	}
	return row
}

// DecodeRow reverses EncodeRow. Identifier columns come back as plain
// strings with the text marker stripped; empty cells decode to nil, "true"
// and "false" to bools, and fully numeric cells to int64 or float64.
// Raw cells beyond the column list are ignored.
func DecodeRow(columns []string, raw []string) Record {
	rec := make(Record, len(columns))
	for i, col := range columns {
		var cell string
		if i < len(raw) {
			cell = raw[i]
		}
		if IsIdentifierColumn(col) {
			cell = strings.TrimPrefix(cell, textMarker)
			if cell == "" {
				rec[col] = nil
				continue
			}
			rec[col] = cell
			continue
		}
		rec[col] = decodeValue(cell)
	}
	return rec
}

func encodeValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		// Structured values travel as their JSON form.
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

func decodeValue(cell string) any {
	switch cell {
	case "":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
