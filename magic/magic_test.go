package magic

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsql-project/vsql/adapters"
	"github.com/vsql-project/vsql/core"
	"github.com/vsql-project/vsql/core/mock"
	"github.com/vsql-project/vsql/kernel"
)

func newTestMagic(t *testing.T, cfg *core.Config, adapter *mock.Adapter) (*Magic, *bytes.Buffer) {
	t.Helper()

	err := new(adapters.Mux).AddAdapter("mock", adapter)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	m := New(cfg,
		WithOutput(out),
		WithGetenv(func(string) string { return "" }),
	)
	return m, out
}

func TestExecuteReturnsResult(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(mock.NewRows(0, 3))
	m, _ := newTestMagic(t, core.DefaultConfig(), adapter)

	ns := kernel.Namespace{}
	result, err := m.Execute("mock://test SELECT 1", "", ns)
	r.NoError(err)

	res, ok := result.(*core.Result)
	r.True(ok)
	r.Equal(3, res.Len())

	// namespace untouched, connection released
	r.Empty(ns)
	r.Equal(1, adapter.CloseCount())
	r.Equal(core.StateSucceeded, m.State())
}

func TestExecuteAutoFrames(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.AutoFrames = true

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, _ := newTestMagic(t, cfg, adapter)

	result, err := m.Execute("mock://test SELECT 1", "", kernel.Namespace{})
	r.NoError(err)

	frame, ok := result.(*core.Frame)
	r.True(ok)
	r.Equal(2, frame.Len())
}

func TestExecuteAutoLimit(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.AutoLimit = 2

	adapter := mock.NewAdapter(mock.NewRows(0, 10))
	m, _ := newTestMagic(t, cfg, adapter)

	result, err := m.Execute("mock://test SELECT 1", "", kernel.Namespace{})
	r.NoError(err)

	res := result.(*core.Result)
	r.Equal(2, res.Len())
	r.True(res.Truncated())
}

func TestExecuteColumnLocalVars(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.ColumnLocalVars = true

	adapter := mock.NewAdapter(
		mock.NewRows(0, 2),
		mock.AdapterWithResultStreamOpts(
			mock.ResultStreamWithHeader(core.Header{"a", "b"}),
		),
	)
	m, out := newTestMagic(t, cfg, adapter)

	ns := kernel.Namespace{}
	result, err := m.Execute("mock://test SELECT 1", "", ns)
	r.NoError(err)
	r.Nil(result)

	r.Contains(ns, "a")
	r.Contains(ns, "b")
	r.Equal([]any{0, 1}, ns["a"])

	r.Equal("Returning data to local variables [a, b]\n", out.String())
}

func TestExecuteResultVar(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, out := newTestMagic(t, core.DefaultConfig(), adapter)

	ns := kernel.Namespace{}
	result, err := m.Execute("mock://test r << SELECT 1", "", ns)
	r.NoError(err)
	r.Nil(result)

	res, ok := ns["r"].(*core.Result)
	r.True(ok)
	r.Equal(2, res.Len())

	r.Equal("Returning data to local variable r\n", out.String())
}

func TestExecuteResultVarIgnoresFeedbackFlag(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.Feedback = false

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, out := newTestMagic(t, cfg, adapter)

	ns := kernel.Namespace{}
	result, err := m.Execute("mock://test r << SELECT 1", "", ns)
	r.NoError(err)
	r.Nil(result)
	r.Contains(ns, "r")

	// the result var bind is announced even with feedback off
	r.Equal("Returning data to local variable r\n", out.String())
}

func TestExecuteColumnLocalVarsNoFeedback(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.ColumnLocalVars = true
	cfg.Feedback = false

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, out := newTestMagic(t, cfg, adapter)

	ns := kernel.Namespace{}
	result, err := m.Execute("mock://test SELECT 1", "", ns)
	r.NoError(err)
	r.Nil(result)
	r.NotEmpty(ns)
	r.Empty(out.String())
}

func TestExecuteShortErrors(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(
		mock.NewRows(0, 2),
		mock.AdapterWithQuerySideEffect("boom", func(context.Context) error {
			return errors.New("syntax error near boom")
		}),
	)
	m, out := newTestMagic(t, core.DefaultConfig(), adapter)

	result, err := m.Execute("mock://test boom", "", kernel.Namespace{})
	r.NoError(err)
	r.Nil(result)

	// exactly one printed message, connection released exactly once
	r.Equal(1, strings.Count(out.String(), "\n"))
	r.Contains(out.String(), "syntax error near boom")
	r.Equal(1, adapter.CloseCount())
	r.Equal(core.StateFailed, m.State())
}

func TestExecuteLongErrors(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.ShortErrors = false

	adapter := mock.NewAdapter(
		mock.NewRows(0, 2),
		mock.AdapterWithQuerySideEffect("boom", func(context.Context) error {
			return errors.New("syntax error near boom")
		}),
	)
	m, out := newTestMagic(t, cfg, adapter)

	result, err := m.Execute("mock://test boom", "", kernel.Namespace{})
	r.Error(err)
	r.Nil(result)
	r.Empty(out.String())
	r.Equal(1, adapter.CloseCount())
}

func TestExecuteMissingEnvFailsBeforeConnect(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, _ := newTestMagic(t, core.DefaultConfig(), adapter)

	// no connection reference, empty environment
	result, err := m.Execute("", "SELECT 1", kernel.Namespace{})
	r.Error(err)
	r.Nil(result)
	r.Contains(err.Error(), "VERTICA_HOST")

	var missingErr *core.MissingEnvError
	r.ErrorAs(err, &missingErr)

	// no connection was ever opened
	r.Equal(0, adapter.CloseCount())
}

func TestExecuteAutocommitOff(t *testing.T) {
	r := require.New(t)

	cfg := core.DefaultConfig()
	cfg.Autocommit = false

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, _ := newTestMagic(t, cfg, adapter)

	_, err := m.Execute("mock://test SELECT 1", "", kernel.Namespace{})
	r.NoError(err)
	r.Equal([]bool{false}, adapter.AutocommitLog())
}

func TestExecuteEmptyInvocation(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(mock.NewRows(0, 2))
	m, _ := newTestMagic(t, core.DefaultConfig(), adapter)

	_, err := m.Execute("", "", kernel.Namespace{})
	r.ErrorIs(err, errNoQuery)
}

func TestCatalogOperations(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(
		mock.NewRows(0, 1),
		mock.AdapterWithTableDefinition("part", []*core.Column{
			{Name: "id", Type: "int"},
			{Name: "name", Type: "varchar"},
		}),
	)
	m, _ := newTestMagic(t, core.DefaultConfig(), adapter)

	structure, err := m.Structure("mock://test")
	r.NoError(err)
	r.Len(structure, 1)
	r.Equal("part", structure[0].Name)

	columns, err := m.Columns("mock://test", "", "part")
	r.NoError(err)
	r.Equal([]*core.Column{
		{Name: "id", Type: "int"},
		{Name: "name", Type: "varchar"},
	}, columns)

	_, err = m.Columns("mock://test", "", "bogus")
	r.Error(err)

	// each catalog call owns a scoped connection
	r.Equal(3, adapter.CloseCount())

	// the mock driver has no database switching
	_, _, err = m.Databases("mock://test")
	r.ErrorIs(err, core.ErrDatabaseSwitchingNotSupported)
}

func TestLoad(t *testing.T) {
	r := require.New(t)

	reg := kernel.NewRegistry()
	r.NoError(Load(reg, core.DefaultConfig()))

	// both names respond after loading
	_, recognized, _ := reg.Dispatch("%vsql", kernel.Namespace{})
	r.True(recognized)
	_, recognized, _ = reg.Dispatch("%sql", kernel.Namespace{})
	r.True(recognized)
}

func TestExecuteRecordsHistory(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(mock.NewRows(0, 2))

	err := new(adapters.Mux).AddAdapter("mock", adapter)
	r.NoError(err)

	history := NewHistory(t.TempDir() + "/history.json")
	m := New(core.DefaultConfig(),
		WithOutput(&bytes.Buffer{}),
		WithHistory(history),
	)

	_, err = m.Execute("mock://test SELECT 1", "", kernel.Namespace{})
	r.NoError(err)

	records := history.Records()
	r.Len(records, 1)
	r.Equal("SELECT 1", records[0].Query)
	r.Equal(core.StateSucceeded.String(), records[0].State)
	r.Empty(records[0].Error)
}
