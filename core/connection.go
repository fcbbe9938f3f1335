package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrDatabaseSwitchingNotSupported = errors.New("database switching not supported")
	ErrAutocommitNotSupported        = errors.New("autocommit switching not supported")
	ErrColumnListingNotSupported     = errors.New("column listing not supported")
)

type (
	// Adapter is an object which allows to connect to a database via a url
	Adapter interface {
		Connect(url string) (Driver, error)
	}

	// Driver is an interface for a specific database driver
	Driver interface {
		Query(context.Context, string) (ResultStream, error)
		Structure() ([]*Structure, error)
		Close()
	}

	// DatabaseSwitcher is an optional interface for drivers that have database switching capabilities
	DatabaseSwitcher interface {
		SelectDatabase(string) error
		ListDatabases() (current string, available []string, err error)
	}

	// AutocommitSwitcher is an optional interface for drivers whose
	// sessions can toggle autocommit mode.
	AutocommitSwitcher interface {
		SetAutocommit(context.Context, bool) error
	}

	// ColumnLister is an optional interface for drivers that can describe
	// the columns of a table.
	ColumnLister interface {
		Columns(*TableOptions) ([]*Column, error)
	}
)

// Connection is a scoped handle to a database: it is owned for the
// duration of one invocation and must be closed on every exit path.
type Connection struct {
	params           *ConnectionParams
	unexpandedParams *ConnectionParams

	driver Driver
}

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.params)
}

func NewConnection(params *ConnectionParams, adapter Adapter) (*Connection, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = ConnectionID(uuid.New().String())
	}

	driver, err := adapter.Connect(expanded.URL)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	c := &Connection{
		params:           expanded,
		unexpandedParams: params,

		driver: driver,
	}

	return c, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetName() string {
	return c.params.Name
}

func (c *Connection) GetType() string {
	return c.params.Type
}

func (c *Connection) GetURL() string {
	return c.params.URL
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.unexpandedParams
}

// Query executes a statement on the underlying driver.
func (c *Connection) Query(ctx context.Context, query string) (ResultStream, error) {
	return c.driver.Query(ctx, query)
}

// SetAutocommit toggles the session autocommit mode on drivers that
// support it. Commit/rollback discipline past this point is entirely
// the driver's.
func (c *Connection) SetAutocommit(ctx context.Context, on bool) error {
	switcher, ok := c.driver.(AutocommitSwitcher)
	if !ok {
		return ErrAutocommitNotSupported
	}

	if err := switcher.SetAutocommit(ctx, on); err != nil {
		return fmt.Errorf("switcher.SetAutocommit: %w", err)
	}

	return nil
}

// SelectDatabase tries to switch to a given database with the used driver.
// on error, the switch doesn't happen and the previous connection remains active.
func (c *Connection) SelectDatabase(name string) error {
	switcher, ok := c.driver.(DatabaseSwitcher)
	if !ok {
		return ErrDatabaseSwitchingNotSupported
	}

	err := switcher.SelectDatabase(name)
	if err != nil {
		return fmt.Errorf("switcher.SelectDatabase: %w", err)
	}

	return nil
}

func (c *Connection) ListDatabases() (current string, available []string, err error) {
	switcher, ok := c.driver.(DatabaseSwitcher)
	if !ok {
		return "", nil, ErrDatabaseSwitchingNotSupported
	}

	currentDB, availableDBs, err := switcher.ListDatabases()
	if err != nil {
		return "", nil, fmt.Errorf("switcher.ListDatabases: %w", err)
	}

	return currentDB, availableDBs, nil
}

func (c *Connection) GetColumns(opts *TableOptions) ([]*Column, error) {
	lister, ok := c.driver.(ColumnLister)
	if !ok {
		return nil, ErrColumnListingNotSupported
	}

	columns, err := lister.Columns(opts)
	if err != nil {
		return nil, fmt.Errorf("lister.Columns: %w", err)
	}

	return columns, nil
}

func (c *Connection) GetStructure() ([]*Structure, error) {
	structure, err := c.driver.Structure()
	if err != nil {
		return nil, err
	}

	// fallback to not confuse users
	if len(structure) < 1 {
		structure = []*Structure{
			{
				Name: "no schema to show",
				Type: StructureTypeNone,
			},
		}
	}
	return structure, nil
}

func (c *Connection) Close() {
	c.driver.Close()
}
