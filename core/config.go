package core

// Config holds the options that influence parsing, execution and
// presentation of a single magic invocation. A Config value is passed
// explicitly to the parser and the controller - there is no ambient
// process-wide state.
type Config struct {
	// AutoLimit caps the number of rows retained from a result set.
	// Zero means unlimited.
	AutoLimit int
	// Style is the table printing style (DEFAULT, MSWORD_FRIENDLY,
	// PLAIN_COLUMNS or RANDOM).
	Style string
	// ShortErrors prints only the database error message instead of
	// returning the error to the host.
	ShortErrors bool
	// DisplayLimit caps the number of rows rendered for display.
	// The full result set is still retained. Zero means unset.
	DisplayLimit int
	// AutoFrames returns column-major frames instead of row sets.
	AutoFrames bool
	// ColumnLocalVars distributes result columns into the namespace
	// under their column names instead of returning the result.
	ColumnLocalVars bool
	// Feedback prints a line for namespace bindings.
	Feedback bool
	// DSNFilename is the path to an INI file with connection sections.
	// When set, a leading "[section]" token on the first line is
	// recognized as a connection reference.
	DSNFilename string
	// Autocommit controls the session autocommit mode.
	Autocommit bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		AutoLimit:       0,
		Style:           "DEFAULT",
		ShortErrors:     true,
		DisplayLimit:    0,
		AutoFrames:      false,
		ColumnLocalVars: false,
		Feedback:        true,
		DSNFilename:     "odbc.ini",
		Autocommit:      true,
	}
}
