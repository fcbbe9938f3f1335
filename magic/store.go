package magic

import (
	"sort"

	"github.com/vsql-project/vsql/core"
)

// ConnectionStore remembers connection parameters under their aliases,
// so that "user@database" on a later invocation reuses them.
type ConnectionStore struct {
	params map[string]*core.ConnectionParams
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{
		params: make(map[string]*core.ConnectionParams),
	}
}

func (s *ConnectionStore) Set(alias string, params *core.ConnectionParams) {
	if alias == "" {
		return
	}
	s.params[alias] = params
}

func (s *ConnectionStore) Get(alias string) (*core.ConnectionParams, bool) {
	params, ok := s.params[alias]
	return params, ok
}

// Names returns the stored aliases in sorted order.
func (s *ConnectionStore) Names() []string {
	names := make([]string, 0, len(s.params))
	for name := range s.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
