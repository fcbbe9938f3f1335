package core

import (
	"encoding/json"
	"fmt"
	nurl "net/url"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

type ConnectionID string

type ConnectionParams struct {
	ID   ConnectionID
	Name string
	Type string
	URL  string
}

// Expand returns a copy of the original parameters with expanded fields
func (p *ConnectionParams) Expand() *ConnectionParams {
	return &ConnectionParams{
		ID:   ConnectionID(expandOrDefault(string(p.ID))),
		Name: expandOrDefault(p.Name),
		Type: expandOrDefault(p.Type),
		URL:  expandOrDefault(p.URL),
	}
}

func (p *ConnectionParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
		URL  string `json:"url"`
	}{
		ID:   string(p.ID),
		Name: p.Name,
		Type: p.Type,
		URL:  p.URL,
	})
}

// Environment variables consulted when an invocation carries no
// connection reference.
const (
	EnvHost     = "VERTICA_HOST"
	EnvPort     = "VERTICA_PORT"
	EnvUser     = "VERTICA_USER"
	EnvPassword = "VERTICA_PASSWORD"
	EnvDatabase = "VERTICA_DB"
	EnvLabel    = "VERTICA_LABEL"
	EnvTimeout  = "VERTICA_TIMEOUT"
)

const (
	defaultPort           = "5433"
	defaultSessionLabel   = "vsql magic session"
	defaultTimeoutSeconds = 5
)

// MissingEnvError is a fatal configuration error: a mandatory
// connection variable is not set in the process environment.
type MissingEnvError struct {
	Variable string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("mandatory environment variable %q is not set", e.Variable)
}

// ParamsFromEnv resolves vertica connection parameters from the process
// environment. Host, user, password and database are mandatory; port,
// session label and connection timeout have defaults. SSL and
// server-side prepared statements are disabled.
func ParamsFromEnv(getenv func(string) string) (*ConnectionParams, error) {
	for _, mandatory := range []string{EnvHost, EnvUser, EnvPassword, EnvDatabase} {
		if getenv(mandatory) == "" {
			return nil, &MissingEnvError{Variable: mandatory}
		}
	}

	port := getenv(EnvPort)
	if port == "" {
		port = defaultPort
	}
	label := getenv(EnvLabel)
	if label == "" {
		label = defaultSessionLabel
	}
	timeout := defaultTimeoutSeconds
	if raw := getenv(EnvTimeout); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	u := &nurl.URL{
		Scheme: "vertica",
		User:   nurl.UserPassword(getenv(EnvUser), getenv(EnvPassword)),
		Host:   getenv(EnvHost) + ":" + port,
		Path:   "/" + getenv(EnvDatabase),
	}
	q := u.Query()
	q.Set("client_label", label)
	q.Set("tlsmode", "none")
	q.Set("use_prepared_statements", "0")
	q.Set("connect_timeout", strconv.Itoa(timeout)+"s")
	u.RawQuery = q.Encode()

	return &ConnectionParams{
		Name: getenv(EnvUser) + "@" + getenv(EnvDatabase),
		Type: "vertica",
		URL:  u.String(),
	}, nil
}

// ParamsFromURL derives connection parameters from a connection string.
// The adapter type is the url scheme; a "+driver" suffix in the scheme
// (e.g. "mysql+pymysql") is ignored.
func ParamsFromURL(raw string) (*ConnectionParams, error) {
	u, err := nurl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse connection string: %w", err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("connection string %q has no scheme", raw)
	}

	typ, _, _ := strings.Cut(u.Scheme, "+")
	u.Scheme = typ

	name := strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		name = u.User.Username() + "@" + name
	}

	return &ConnectionParams{
		Name: name,
		Type: typ,
		URL:  u.String(),
	}, nil
}

// ParamsFromDSNFile reads connection parameters from a named section of
// an INI DSN file. A section either carries a full "url" key or the
// component keys (type, host, port, user, password, database).
func ParamsFromDSNFile(path, section string) (*ConnectionParams, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not read DSN file %q: %w", path, err)
	}

	sec, err := file.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("DSN file %q has no section %q", path, section)
	}

	if rawURL := sec.Key("url").String(); rawURL != "" {
		params, err := ParamsFromURL(rawURL)
		if err != nil {
			return nil, err
		}
		params.Name = section
		return params, nil
	}

	typ := sec.Key("type").MustString("vertica")
	host := sec.Key("host").String()
	if host == "" {
		return nil, fmt.Errorf("DSN section %q is missing a host", section)
	}
	port := sec.Key("port").MustString(defaultPort)

	u := &nurl.URL{
		Scheme: typ,
		Host:   host + ":" + port,
		Path:   "/" + sec.Key("database").String(),
	}
	if user := sec.Key("user").String(); user != "" {
		u.User = nurl.UserPassword(user, sec.Key("password").String())
	}

	return &ConnectionParams{
		Name: section,
		Type: typ,
		URL:  u.String(),
	}, nil
}
