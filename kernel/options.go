package kernel

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/vsql-project/vsql/core"
)

// optionSetters is the enumerated configuration surface. Option names
// are fixed; there is no open-ended string matching.
var optionSetters = map[string]func(cfg *core.Config, value string) error{
	"autolimit": func(cfg *core.Config, value string) error {
		return setInt(&cfg.AutoLimit, value)
	},
	"style": func(cfg *core.Config, value string) error {
		cfg.Style = value
		return nil
	},
	"short_errors": func(cfg *core.Config, value string) error {
		return setBool(&cfg.ShortErrors, value)
	},
	"displaylimit": func(cfg *core.Config, value string) error {
		return setInt(&cfg.DisplayLimit, value)
	},
	"autoframes": func(cfg *core.Config, value string) error {
		return setBool(&cfg.AutoFrames, value)
	},
	"column_local_vars": func(cfg *core.Config, value string) error {
		return setBool(&cfg.ColumnLocalVars, value)
	},
	"feedback": func(cfg *core.Config, value string) error {
		return setBool(&cfg.Feedback, value)
	},
	"dsn_filename": func(cfg *core.Config, value string) error {
		cfg.DSNFilename = value
		return nil
	},
	"autocommit": func(cfg *core.Config, value string) error {
		return setBool(&cfg.Autocommit, value)
	},
}

// SetOption sets a named configuration option from its string form.
func SetOption(cfg *core.Config, name, value string) error {
	setter, ok := optionSetters[name]
	if !ok {
		return fmt.Errorf("unknown option %q", name)
	}

	if err := setter(cfg, value); err != nil {
		return fmt.Errorf("invalid value %q for option %q: %w", value, name, err)
	}
	return nil
}

// OptionNames returns the settable option names in sorted order.
func OptionNames() []string {
	names := make([]string, 0, len(optionSetters))
	for name := range optionSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setInt(dst *int, value string) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func setBool(dst *bool, value string) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}
