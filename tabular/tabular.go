// Package tabular loads spreadsheet bytes into an in-memory table of typed columns.
package tabular

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/c2fo/doclib"
)

// ColumnType is the type inferred for every value of a column.
type ColumnType int

const (
	// String columns hold string values.  Columns with mixed or no values are String.
	String ColumnType = iota
	// Int columns hold int64 values.
	Int
	// Float columns hold float64 values.  A column mixing ints and floats is Float.
	Float
	// Bool columns hold bool values.
	Bool
	// Time columns hold time.Time values.
	Time
)

func (t ColumnType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	default:
		return "string"
	}
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is an ordered set of typed columns and the rows holding their values.  Every row has exactly len(Columns)
// cells; empty cells are nil.
type Table struct {
	Sheet   string
	Columns []Column
	Rows    [][]any
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the column called name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the column called name, or false if there is no such column.
func (t *Table) Column(name string) ([]any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, true
}

type loadOptions struct {
	sheet string
}

// Option configures Load.
type Option func(*loadOptions)

// WithSheet selects the sheet to load.  The first sheet is loaded by default.
func WithSheet(name string) Option {
	return func(o *loadOptions) {
		o.sheet = name
	}
}

// timeLayouts are the layouts excelize renders the built-in date formats with.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06",
	"1/2/06 15:04",
}

// Load parses xlsx bytes.  The first row of the sheet holds the column names.  Bytes that are not a spreadsheet, or a
// sheet that doesn't exist, fail with doclib.ErrFormat.
func Load(data []byte, opts ...Option) (*Table, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", doclib.ErrFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheet := o.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", doclib.ErrFormat)
		}
		sheet = sheets[0]
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q not found", doclib.ErrFormat, sheet)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", doclib.ErrFormat, err)
	}

	return build(sheet, raw), nil
}

func build(sheet string, raw [][]string) *Table {
	t := &Table{Sheet: sheet}
	if len(raw) == 0 {
		return t
	}

	width := 0
	for _, r := range raw {
		width = max(width, len(r))
	}

	names := headerNames(raw[0], width)
	body := raw[1:]

	t.Columns = make([]Column, width)
	for c := 0; c < width; c++ {
		t.Columns[c] = Column{Name: names[c], Type: inferType(body, c)}
	}

	t.Rows = make([][]any, len(body))
	for r, cells := range body {
		row := make([]any, width)
		for c := 0; c < width; c++ {
			if c < len(cells) && cells[c] != "" {
				row[c] = convert(cells[c], t.Columns[c].Type)
			}
		}
		t.Rows[r] = row
	}
	return t
}

// headerNames names blank headers "Unnamed: N" and suffixes duplicates with ".1", ".2", ...
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func inferType(body [][]string, col int) ColumnType {
	isInt, isFloat, isBool, isTime := true, true, true, true
	seen := false
	for _, row := range body {
		if col >= len(row) || row[col] == "" {
			continue
		}
		seen = true
		v := row[col]
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if _, ok := parseBool(v); !ok {
			isBool = false
		}
		if _, ok := parseTime(v); !ok {
			isTime = false
		}
	}

	switch {
	case !seen:
		return String
	case isInt:
		return Int
	case isFloat:
		return Float
	case isBool:
		return Bool
	case isTime:
		return Time
	default:
		return String
	}
}

func convert(v string, t ColumnType) any {
	switch t {
	case Int:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	case Float:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case Bool:
		b, _ := parseBool(v)
		return b
	case Time:
		tm, _ := parseTime(v)
		return tm
	default:
		return v
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToUpper(v) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	}
	return false, false
}

func parseTime(v string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
