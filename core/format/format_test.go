package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsql-project/vsql/core"
)

var (
	testHeader = core.Header{"id", "name"}
	testRows   = []core.Row{
		{1, "bolt"},
		{2, "nut"},
	}
)

func TestCSV(t *testing.T) {
	r := require.New(t)

	out, err := NewCSV().Format(testHeader, testRows, &core.FormatterOptions{})
	r.NoError(err)

	r.Equal("id,name\n1,bolt\n2,nut\n", string(out))
}

func TestJSON(t *testing.T) {
	r := require.New(t)

	out, err := NewJSON().Format(testHeader, testRows, &core.FormatterOptions{SchemaType: core.SchemaFul})
	r.NoError(err)
	r.JSONEq(`[{"id":1,"name":"bolt"},{"id":2,"name":"nut"}]`, string(out))

	out, err = NewJSON().Format(core.Header{"value"}, []core.Row{{"a"}, {"b"}}, &core.FormatterOptions{SchemaType: core.SchemaLess})
	r.NoError(err)
	r.JSONEq(`["a","b"]`, string(out))
}

func TestTable(t *testing.T) {
	r := require.New(t)

	out, err := NewTable("DEFAULT").Format(testHeader, testRows, &core.FormatterOptions{ChunkStart: 0})
	r.NoError(err)

	rendered := string(out)
	r.Contains(rendered, "id")
	r.Contains(rendered, "bolt")
	// rows carry a 1-based index column
	r.Contains(rendered, "1")
	r.Contains(rendered, "2")

	// unknown style falls back instead of failing
	out, err = NewTable("NO_SUCH_STYLE").Format(testHeader, testRows, &core.FormatterOptions{})
	r.NoError(err)
	r.NotEmpty(out)
}

func TestTableChunkStart(t *testing.T) {
	r := require.New(t)

	out, err := NewTable("DEFAULT").Format(testHeader, testRows, &core.FormatterOptions{ChunkStart: 10})
	r.NoError(err)

	rendered := string(out)
	r.Contains(rendered, "11")
	r.Contains(rendered, "12")
}
