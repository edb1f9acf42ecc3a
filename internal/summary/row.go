package summary

// Row is one flattened summary: an ordered mapping from column name to value.
type Row struct {
	columns []string
	values  map[string]string
}

func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set stores value under column, appending the column on first use.
func (r *Row) Set(column, value string) {
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

func (r *Row) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the column names in insertion order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r *Row) Len() int {
	return len(r.columns)
}
