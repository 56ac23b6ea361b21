// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

// Row is one output record projected onto the template header. Every
// row carries exactly the template's columns in template order; values
// for columns never set render as blank cells.
type Row struct {
	columns []string
	index   map[string]int
	values  []string
}

// NewRow returns an empty row shaped by the template columns.
func NewRow(columns []string) Row {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, exists := index[c]; !exists {
			index[c] = i
		}
	}
	return Row{
		columns: columns,
		index:   index,
		values:  make([]string, len(columns)),
	}
}

// Set assigns a value to a column. Columns absent from the template are
// ignored so the column-set invariant can never break.
func (r Row) Set(column, value string) {
	if i, ok := r.index[column]; ok {
		r.values[i] = value
	}
}

// Get returns the value for a column, blank when unset or unknown.
func (r Row) Get(column string) string {
	if i, ok := r.index[column]; ok {
		return r.values[i]
	}
	return ""
}

// Columns returns the template header the row is aligned to.
func (r Row) Columns() []string {
	return r.columns
}

// Values returns the cell values in template column order.
func (r Row) Values() []string {
	return r.values
}
