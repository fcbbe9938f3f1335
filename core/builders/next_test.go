package builders

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsql-project/vsql/core"
)

func TestNextSingle(t *testing.T) {
	r := require.New(t)

	rows := NewResultStreamBuilder().
		WithNextFunc(NextSingle(42)).
		WithHeader(core.Header{"answer"}).
		Build()

	r.True(rows.HasNext())

	row, err := rows.Next()
	r.NoError(err)
	r.Equal(core.Row{42}, row)

	r.False(rows.HasNext())
}

func TestNextNil(t *testing.T) {
	r := require.New(t)

	rows := NewResultStreamBuilder().
		WithNextFunc(NextNil()).
		Build()

	r.False(rows.HasNext())
}

func TestColumnsFromResultStream(t *testing.T) {
	r := require.New(t)

	index := 0
	data := []core.Row{
		{"id", "int"},
		{"name", "varchar"},
	}

	rows := NewResultStreamBuilder().
		WithNextFunc(
			func() (core.Row, error) {
				row := data[index]
				index++
				return row, nil
			},
			func() bool { return index < len(data) },
		).
		WithHeader(core.Header{"column_name", "data_type"}).
		Build()

	columns, err := ColumnsFromResultStream(rows)
	r.NoError(err)

	r.Equal([]*core.Column{
		{Name: "id", Type: "int"},
		{Name: "name", Type: "varchar"},
	}, columns)
}
