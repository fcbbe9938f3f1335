package adapters

import (
	"context"
	"database/sql"
	"fmt"
	nurl "net/url"
	"time"

	_ "github.com/vertica/vertica-sql-go"

	"github.com/vsql-project/vsql/core"
	"github.com/vsql-project/vsql/core/builders"
)

// Register client
func init() {
	_ = register(&Vertica{}, "vertica", "vt")
}

var _ core.Adapter = (*Vertica)(nil)

type Vertica struct{}

func (v *Vertica) Connect(url string) (core.Driver, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	// connect_timeout is ours, the driver doesn't know it
	timeout := 5 * time.Second
	q := u.Query()
	if raw := q.Get("connect_timeout"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
		q.Del("connect_timeout")
		u.RawQuery = q.Encode()
	}

	db, err := sql.Open("vertica", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to vertica database: %w", err)
	}

	// session settings (autocommit) must stick to one connection
	db.SetMaxOpenConns(1)

	jsonProcessor := func(a any) any {
		b, ok := a.([]byte)
		if !ok {
			return a
		}

		return newJSONResponse(b)
	}

	c := builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
		builders.WithCustomTypeProcessor("jsonb", jsonProcessor),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("unable to reach vertica database: %w", err)
	}

	return &verticaDriver{
		c:   c,
		url: u,
	}, nil
}
