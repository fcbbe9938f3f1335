package kernel

import (
	"errors"
	"fmt"
	"strings"
)

var errNoValidNames = errors.New("no valid magic names provided")

// Namespace is the mapping shared with the host runtime. Magics may
// read from it and bind results into it.
type Namespace map[string]any

// Magic is a command recognized by a fixed name, carrying a first line
// and an optional multi-line body.
type Magic interface {
	Execute(line, cell string, ns Namespace) (any, error)
}

// Registry holds the registered magics. A magic registered under a
// name responds to both the line ("%name") and cell ("%%name") forms.
type Registry struct {
	magics map[string]Magic
}

func NewRegistry() *Registry {
	return &Registry{
		magics: make(map[string]Magic),
	}
}

func (r *Registry) Register(magic Magic, names ...string) error {
	if len(names) < 1 {
		return errNoValidNames
	}

	invalidCount := 0
	for _, name := range names {
		if name == "" {
			invalidCount++
			continue
		}
		r.magics[name] = magic
	}

	if invalidCount == len(names) {
		return errNoValidNames
	}

	return nil
}

// Dispatch routes raw cell text to a registered magic. It returns the
// magic's result and whether the text was recognized as a magic at all.
// Text that doesn't start with "%" is not a magic and passes through
// untouched.
func (r *Registry) Dispatch(src string, ns Namespace) (result any, recognized bool, err error) {
	if !strings.HasPrefix(src, "%") {
		return nil, false, nil
	}

	first, body, _ := strings.Cut(src, "\n")

	var name, line, cell string
	if rest, ok := strings.CutPrefix(first, "%%"); ok {
		// cell form: the whole body is part of the invocation
		name, line, _ = strings.Cut(rest, " ")
		cell = body
	} else {
		// line form: a single line, any following text is not ours
		name, line, _ = strings.Cut(strings.TrimPrefix(first, "%"), " ")
	}

	magic, ok := r.magics[name]
	if !ok {
		return nil, true, fmt.Errorf("no magic registered under %q", name)
	}

	result, err = magic.Execute(line, cell, ns)
	return result, true, err
}
