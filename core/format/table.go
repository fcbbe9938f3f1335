package format

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vsql-project/vsql/core"
)

var _ core.Formatter = (*Table)(nil)

// styles maps the external style names to go-pretty styles.
var styles = map[string]table.Style{
	"DEFAULT":         table.StyleLight,
	"MSWORD_FRIENDLY": table.StyleDouble,
	"PLAIN_COLUMNS":   table.StyleDefault,
	"RANDOM":          table.StyleRounded,
}

type Table struct {
	style table.Style
}

// NewTable creates a table formatter with a named style. Unknown names
// fall back to the default style.
func NewTable(styleName string) *Table {
	style, ok := styles[strings.ToUpper(styleName)]
	if !ok {
		style = table.StyleLight
	}

	return &Table{
		style: style,
	}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	tableHeaders := []any{""}
	for _, k := range header {
		tableHeaders = append(tableHeaders, k)
	}
	index := opts.ChunkStart

	var tableRows []table.Row
	for _, row := range rows {
		indexedRow := append([]any{index + 1}, row...)
		tableRows = append(tableRows, table.Row(indexedRow))
		index += 1
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row(tableHeaders))
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(tf.style)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()
	render := t.Render()

	return []byte(render), nil
}
