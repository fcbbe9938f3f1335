package builders

import "strings"

type clientConfig struct {
	typeProcessors map[string]func(any) any
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor converts raw values of the named database
// type before they enter a result stream. Type names are matched
// case-insensitively and the first processor registered for a type
// wins.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		key := strings.ToLower(typ)
		if _, ok := cc.typeProcessors[key]; ok {
			return
		}

		cc.typeProcessors[key] = fn
	}
}
