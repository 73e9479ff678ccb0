package aligner

import (
	"time"

	"seriesaligner/internal/series"

	"github.com/guregu/null/v6"
)

// Table is a date-indexed table with one column per symbol. Values[c][i] is the
// cell of column c at Index[i]; an invalid null.Float marks a missing cell.
type Table struct {
	Index   []time.Time
	Columns []string
	Values  map[string][]null.Float
}

// ColumnCount pairs a column with a per-column count.
type ColumnCount struct {
	Column string
	Count  int
}

// NewEmptyTable returns a table with zero rows and zero columns.
func NewEmptyTable() *Table {
	return &Table{
		Index:   []time.Time{},
		Columns: []string{},
		Values:  map[string][]null.Float{},
	}
}

// Build outer-joins every series in the store on the union of their dates.
// Columns keep the store's insertion order; series without points are skipped.
func Build(store *series.Store) *Table {
	t := NewEmptyTable()
	t.Index = store.UnionDates()

	row := make(map[time.Time]int, len(t.Index))
	for i, d := range t.Index {
		row[d] = i
	}

	for _, ser := range store.GetAll() {
		if ser.Len() == 0 {
			continue
		}
		col := make([]null.Float, len(t.Index))
		for _, p := range ser.Points {
			col[row[p.Date]] = null.FloatFrom(p.AdjClose)
		}
		t.Columns = append(t.Columns, ser.Symbol)
		t.Values[ser.Symbol] = col
	}
	return t
}

// Empty reports whether the table has no columns.
func (t *Table) Empty() bool {
	return t == nil || len(t.Columns) == 0
}

// Shape returns the number of rows and columns.
func (t *Table) Shape() (rows, cols int) {
	if t.Empty() {
		return 0, 0
	}
	return len(t.Index), len(t.Columns)
}

func (t *Table) Column(symbol string) ([]null.Float, bool) {
	col, ok := t.Values[symbol]
	return col, ok
}

// Value returns the cell for symbol at date. The second result is false when the
// symbol or date is unknown; a known but missing cell returns an invalid Float.
func (t *Table) Value(symbol string, date time.Time) (null.Float, bool) {
	col, ok := t.Values[symbol]
	if !ok {
		return null.Float{}, false
	}
	d := series.Day(date)
	for i, idx := range t.Index {
		if idx.Equal(d) {
			return col[i], true
		}
	}
	return null.Float{}, false
}

// MissingCounts returns the number of missing cells per column, in column order.
func (t *Table) MissingCounts() []ColumnCount {
	if t.Empty() {
		return nil
	}
	out := make([]ColumnCount, 0, len(t.Columns))
	for _, c := range t.Columns {
		n := 0
		for _, v := range t.Values[c] {
			if !v.Valid {
				n++
			}
		}
		out = append(out, ColumnCount{Column: c, Count: n})
	}
	return out
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if t.Empty() {
		return NewEmptyTable()
	}
	if n > len(t.Index) {
		n = len(t.Index)
	}
	if n < 0 {
		n = 0
	}
	out := t.clone()
	out.Index = out.Index[:n]
	for c, col := range out.Values {
		out.Values[c] = col[:n]
	}
	return out
}

// FillMissing returns a forward-filled copy of t. Each missing cell takes the
// nearest earlier valid value of its own column; cells before a column's first
// valid value stay missing. Applying it again changes nothing.
func FillMissing(t *Table) *Table {
	if t.Empty() {
		return NewEmptyTable()
	}
	out := t.clone()
	for _, c := range out.Columns {
		col := out.Values[c]
		var last null.Float
		for i, v := range col {
			if v.Valid {
				last = v
				continue
			}
			col[i] = last
		}
	}
	return out
}

func (t *Table) clone() *Table {
	out := &Table{
		Index:   make([]time.Time, len(t.Index)),
		Columns: make([]string, len(t.Columns)),
		Values:  make(map[string][]null.Float, len(t.Values)),
	}
	copy(out.Index, t.Index)
	copy(out.Columns, t.Columns)
	for c, col := range t.Values {
		cp := make([]null.Float, len(col))
		copy(cp, col)
		out.Values[c] = cp
	}
	return out
}
