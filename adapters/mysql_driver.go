package adapters

import (
	"context"
	"strings"

	"github.com/vsql-project/vsql/core"
	"github.com/vsql-project/vsql/core/builders"
)

var _ core.Driver = (*mySQLDriver)(nil)

type mySQLDriver struct {
	c *builders.Client
}

func (c *mySQLDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	action := strings.ToLower(strings.Split(query, " ")[0])

	if action == "update" || action == "delete" || action == "insert" {
		return c.c.Exec(ctx, query)
	}

	return c.c.Query(ctx, query)
}

func (c *mySQLDriver) Columns(opts *core.TableOptions) ([]*core.Column, error) {
	return c.c.ColumnsFromQuery("DESCRIBE `%s`", opts.Table)
}

func (c *mySQLDriver) Structure() ([]*core.Structure, error) {
	query := `SELECT table_schema, table_name, 'TABLE' FROM information_schema.tables`

	rows, err := c.Query(context.TODO(), query)
	if err != nil {
		return nil, err
	}

	return getGenericStructure(rows, getSQLStructureType)
}

func (c *mySQLDriver) Close() {
	c.c.Close()
}
