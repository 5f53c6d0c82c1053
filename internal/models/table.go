package models

// Table is a parsed tabular input: normalized column names in file order,
// plus data rows keyed by those names. Both the master table and the List
// Order extract are carried in this shape.
type Table struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}
