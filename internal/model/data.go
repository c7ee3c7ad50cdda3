package model

import (
	"time"

	"github.com/guregu/null/v5"
)

// Column names of the OWID dataset that the loader keeps.
const (
	ColumnLocation    = "location"
	ColumnDate        = "date"
	ColumnNewCases    = "new_cases"
	ColumnNewDeaths   = "new_deaths"
	ColumnTotalDeaths = "total_deaths"
)

// RetainedColumns is the projection applied on load. Every other column of
// the source file is discarded.
var RetainedColumns = []string{
	ColumnLocation,
	ColumnDate,
	ColumnNewCases,
	ColumnNewDeaths,
	ColumnTotalDeaths,
}

// DateLayout is the layout of the date column in the source file.
const DateLayout = "2006-01-02"

// Row is one (country, date) observation.
type Row struct {
	Location    string     `json:"location"`
	Date        time.Time  `json:"date"`
	NewCases    null.Float `json:"new_cases"`
	NewDeaths   null.Float `json:"new_deaths"`
	TotalDeaths null.Float `json:"total_deaths"`
}

// Value returns the numeric field named by column. Unknown columns are
// reported as missing.
func (r Row) Value(column string) null.Float {
	switch column {
	case ColumnNewCases:
		return r.NewCases
	case ColumnNewDeaths:
		return r.NewDeaths
	case ColumnTotalDeaths:
		return r.TotalDeaths
	default:
		return null.Float{}
	}
}

// Table is an ordered, date-indexed collection of rows. A Table is never
// modified after construction; Where returns a new one.
type Table struct {
	columns []string
	rows    []Row
}

// NewTable copies rows into a new table.
func NewTable(columns []string, rows []Row) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		rows:    make([]Row, len(rows)),
	}
	copy(t.rows, rows)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the retained column names, date included.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether name survived the projection.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Rows returns a copy of the rows in file order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Index returns the date index. It is not unique: several countries share a
// date.
func (t *Table) Index() []time.Time {
	out := make([]time.Time, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Date
	}
	return out
}

// Where returns the rows matching keep, in order.
func (t *Table) Where(keep func(Row) bool) *Table {
	out := &Table{columns: append([]string(nil), t.columns...)}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Locations returns the distinct locations in first-seen order.
func (t *Table) Locations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.rows {
		if !seen[r.Location] {
			seen[r.Location] = true
			out = append(out, r.Location)
		}
	}
	return out
}
