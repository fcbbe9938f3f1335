package core

// Frame is the column-major view of a result set - the closest thing to
// a dataframe the shaping step can hand back. Column order follows the
// result header.
type Frame struct {
	header  Header
	columns map[string][]any
	length  int
}

// NewFrame converts a cached result into its column-major form.
func NewFrame(result *Result) *Frame {
	return &Frame{
		header:  result.Header(),
		columns: result.Dict(),
		length:  result.Len(),
	}
}

// Keys returns the ordered column names.
func (f *Frame) Keys() Header {
	return f.header
}

// Column returns the values of a named column.
func (f *Frame) Column(name string) ([]any, bool) {
	column, ok := f.columns[name]
	return column, ok
}

// Dict returns the column name to values mapping.
func (f *Frame) Dict() map[string][]any {
	return f.columns
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.length
}

// Row reassembles a single row in header order.
func (f *Frame) Row(i int) Row {
	if i < 0 || i >= f.length {
		return nil
	}

	row := make(Row, 0, len(f.header))
	for _, key := range f.header {
		// a ragged source row leaves the column short, pad with nil
		column := f.columns[key]
		if i >= len(column) {
			row = append(row, nil)
			continue
		}
		row = append(row, column[i])
	}
	return row
}
