package core

import "fmt"

var ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

// Result is the cached form of the ResultStream iterator. The stream is
// drained synchronously, so a filled Result is immutable afterwards.
type Result struct {
	header Header
	meta   *Meta
	rows   []Row

	truncated bool
	isFilled  bool
}

// SetIter drains the ResultStream iterator into the result, retaining
// at most limit rows (0 means unlimited). The iterator is closed on
// return. This can be done only once.
func (r *Result) SetIter(iter ResultStream, limit int) error {
	defer iter.Close()

	r.header = iter.Header()
	r.meta = iter.Meta()
	r.rows = make([]Row, 0)
	r.truncated = false
	r.isFilled = true

	for iter.HasNext() {
		if limit > 0 && len(r.rows) >= limit {
			r.truncated = true
			break
		}

		row, err := iter.Next()
		if err != nil {
			r.isFilled = false
			return err
		}

		r.rows = append(r.rows, row)
	}

	return nil
}

func (r *Result) Len() int {
	return len(r.rows)
}

func (r *Result) IsEmpty() bool {
	return !r.isFilled
}

// Truncated reports whether the row cap cut the result short.
func (r *Result) Truncated() bool {
	return r.truncated
}

func (r *Result) Header() Header {
	return r.header
}

// Keys is an alias for Header, mirroring the accessor the binding step
// uses to list column names.
func (r *Result) Keys() Header {
	return r.header
}

func (r *Result) Meta() *Meta {
	if r.meta == nil {
		return &Meta{}
	}
	return r.meta
}

// Dict returns the result in a column-keyed form: column name to the
// slice of its values, in row order.
func (r *Result) Dict() map[string][]any {
	dict := make(map[string][]any, len(r.header))

	for i, key := range r.header {
		column := make([]any, 0, len(r.rows))
		for _, row := range r.rows {
			if i < len(row) {
				column = append(column, row[i])
			}
		}
		dict[key] = column
	}

	return dict
}

func (r *Result) Format(formatter Formatter, from, to int) ([]byte, error) {
	rows, fromAdjusted, _, err := r.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("r.getRows: %w", err)
	}

	opts := &FormatterOptions{
		SchemaType: r.Meta().SchemaType,
		ChunkStart: fromAdjusted,
	}

	f, err := formatter.Format(r.header, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

func (r *Result) Rows(from, to int) ([]Row, error) {
	rows, _, _, err := r.getRows(from, to)
	return rows, err
}

// getRows returns the row range and adjusted from-to values.
// Negative indices select from the end: -1 is one past the last row.
func (r *Result) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	// validation
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	length := len(r.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}

	return r.rows[from:to], from, to, nil
}
