package magic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vsql-project/vsql/adapters"
	"github.com/vsql-project/vsql/core"
	"github.com/vsql-project/vsql/kernel"
	"github.com/vsql-project/vsql/plugin"
)

var errNoQuery = errors.New("no query to execute")

var _ kernel.Magic = (*Magic)(nil)

// Magic is the execution/dispatch controller behind the %vsql magic.
// It is single-threaded: one invocation runs to completion before the
// next is accepted.
type Magic struct {
	cfg     *core.Config
	log     *plugin.Logger
	out     io.Writer
	store   *ConnectionStore
	history *History
	getenv  func(string) string

	state core.InvocationState
}

type Option func(*Magic)

func WithOutput(out io.Writer) Option {
	return func(m *Magic) { m.out = out }
}

func WithLogger(log *plugin.Logger) Option {
	return func(m *Magic) { m.log = log }
}

func WithGetenv(getenv func(string) string) Option {
	return func(m *Magic) { m.getenv = getenv }
}

func WithHistory(history *History) Option {
	return func(m *Magic) { m.history = history }
}

func New(cfg *core.Config, opts ...Option) *Magic {
	m := &Magic{
		cfg:    cfg,
		log:    plugin.NewLogger(),
		out:    os.Stdout,
		store:  NewConnectionStore(),
		getenv: os.Getenv,
		state:  core.StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load constructs the magic and registers it with the kernel registry
// under its line and cell invocation names.
func Load(reg *kernel.Registry, cfg *core.Config, opts ...Option) error {
	return reg.Register(New(cfg, opts...), "vsql", "sql")
}

// State returns the state of the last invocation.
func (m *Magic) State() core.InvocationState {
	return m.state
}

// Store exposes the connection alias store.
func (m *Magic) Store() *ConnectionStore {
	return m.store
}

// Execute runs one invocation: parse, connect, query, shape, dispatch.
// Exactly one of the following happens: the shaped result is returned,
// values are bound into ns, or an error is printed/returned.
func (m *Magic) Execute(line, cell string, ns kernel.Namespace) (any, error) {
	start := time.Now()

	m.state = core.StateParsing
	parsed := Parse(line, cell, m.cfg)
	if strings.TrimSpace(parsed.SQL) == "" {
		m.state = core.StateFailed
		return nil, errNoQuery
	}

	conn, err := m.connect(parsed.ConnectionRef)
	if err != nil {
		m.state = core.StateFailed
		return nil, err
	}
	defer conn.Close()
	m.state = core.StateConnected

	ctx := context.Background()
	if !m.cfg.Autocommit {
		err := conn.SetAutocommit(ctx, false)
		if err != nil && !errors.Is(err, core.ErrAutocommitNotSupported) {
			m.state = core.StateFailed
			return nil, err
		}
	}

	m.state = core.StateExecuting
	m.log.Infof("executing on %q: %s", conn.GetName(), parsed.SQL)

	iter, err := conn.Query(ctx, parsed.SQL)
	if err != nil {
		m.state = core.StateFailed
		m.record(parsed.SQL, start, err)
		return m.databaseError(err)
	}

	result := new(core.Result)
	if err := result.SetIter(iter, m.cfg.AutoLimit); err != nil {
		m.state = core.StateFailed
		m.record(parsed.SQL, start, err)
		return m.databaseError(err)
	}

	m.state = core.StateSucceeded
	m.record(parsed.SQL, start, nil)

	var shaped any = result
	if m.cfg.AutoFrames {
		shaped = core.NewFrame(result)
	}

	if m.cfg.ColumnLocalVars {
		for key, column := range result.Dict() {
			ns[key] = column
		}
		m.feedback("Returning data to local variables [%s]", strings.Join(result.Keys(), ", "))
		return nil, nil
	}

	if parsed.ResultVar != "" {
		ns[parsed.ResultVar] = shaped
		// always announced, the feedback flag only gates column binds
		fmt.Fprintf(m.out, "Returning data to local variable %s\n", parsed.ResultVar)
		return nil, nil
	}

	return shaped, nil
}

// Structure lists the objects visible over a connection reference,
// grouped by schema.
func (m *Magic) Structure(ref string) ([]*core.Structure, error) {
	conn, err := m.connect(ref)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.GetStructure()
}

// Databases lists the current and available databases over a
// connection reference.
func (m *Magic) Databases(ref string) (current string, available []string, err error) {
	conn, err := m.connect(ref)
	if err != nil {
		return "", nil, err
	}
	defer conn.Close()

	return conn.ListDatabases()
}

// Columns describes the columns of a table over a connection reference.
func (m *Magic) Columns(ref, schema, table string) ([]*core.Column, error) {
	conn, err := m.connect(ref)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.GetColumns(&core.TableOptions{Schema: schema, Table: table})
}

// connect resolves a connection reference and opens a scoped
// connection through the adapter registry. Config errors fail before
// any connection attempt.
func (m *Magic) connect(ref string) (*core.Connection, error) {
	params, err := m.resolveParams(ref)
	if err != nil {
		return nil, err
	}

	conn, err := adapters.NewConnection(params)
	if err != nil {
		m.log.Errorf("connect to %q failed: %s", params.Name, err)
		return nil, err
	}

	// remember the alias for later invocations
	m.store.Set(conn.GetName(), params)

	return conn, nil
}

// resolveParams maps a connection reference to connection parameters.
func (m *Magic) resolveParams(ref string) (*core.ConnectionParams, error) {
	switch {
	case ref == "":
		return core.ParamsFromEnv(m.getenv)
	case strings.HasPrefix(ref, "[") && strings.HasSuffix(ref, "]"):
		return core.ParamsFromDSNFile(m.cfg.DSNFilename, strings.Trim(ref, "[]"))
	case strings.Contains(ref, "://"):
		return core.ParamsFromURL(ref)
	default:
		params, ok := m.store.Get(ref)
		if !ok {
			return nil, fmt.Errorf("no stored connection named %q", ref)
		}
		return params, nil
	}
}

// databaseError applies the short error policy: print the message once
// and swallow, or hand the error back to the host.
func (m *Magic) databaseError(err error) (any, error) {
	m.log.Errorf("query failed: %s", err)

	if m.cfg.ShortErrors {
		fmt.Fprintln(m.out, err.Error())
		return nil, nil
	}
	return nil, err
}

func (m *Magic) feedback(format string, args ...any) {
	if !m.cfg.Feedback {
		return
	}
	fmt.Fprintf(m.out, format+"\n", args...)
}

func (m *Magic) record(query string, start time.Time, err error) {
	if m.history == nil {
		return
	}
	m.history.Add(query, m.state, time.Since(start), start, err)
}
