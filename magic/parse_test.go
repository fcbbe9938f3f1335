package magic

import (
	"testing"

	"gotest.tools/assert"

	"github.com/vsql-project/vsql/core"
)

func TestParse(t *testing.T) {
	cfg := core.DefaultConfig()

	type testCase struct {
		name     string
		line     string
		cell     string
		cfg      *core.Config
		expected *ParsedInvocation
	}

	testCases := []testCase{
		{
			name: "plain sql round trips verbatim",
			line: "SELECT * FROM part",
			cell: "",
			expected: &ParsedInvocation{
				SQL: "SELECT * FROM part",
			},
		},
		{
			name: "line tail and body concatenate",
			line: "SELECT *",
			cell: "FROM part\nWHERE id = 1",
			expected: &ParsedInvocation{
				SQL: "SELECT *\nFROM part\nWHERE id = 1",
			},
		},
		{
			name: "cell only",
			line: "",
			cell: "SELECT 1",
			expected: &ParsedInvocation{
				SQL: "SELECT 1",
			},
		},
		{
			name: "url connection reference",
			line: "postgres://me:pw@localhost/db SELECT 1",
			expected: &ParsedInvocation{
				SQL:           "SELECT 1",
				ConnectionRef: "postgres://me:pw@localhost/db",
			},
		},
		{
			name: "alias connection reference",
			line: "dbadmin@warehouse SELECT 1",
			expected: &ParsedInvocation{
				SQL:           "SELECT 1",
				ConnectionRef: "dbadmin@warehouse",
			},
		},
		{
			name: "dsn section reference",
			line: "[reporting] SELECT 1",
			expected: &ParsedInvocation{
				SQL:           "SELECT 1",
				ConnectionRef: "[reporting]",
			},
		},
		{
			name: "dsn section ignored without dsn file",
			line: "[reporting] SELECT 1",
			cfg:  &core.Config{},
			expected: &ParsedInvocation{
				SQL: "[reporting] SELECT 1",
			},
		},
		{
			name: "result variable flag",
			line: "result << SELECT * FROM part",
			expected: &ParsedInvocation{
				SQL:       "SELECT * FROM part",
				ResultVar: "result",
			},
		},
		{
			name: "result variable without space",
			line: "r<< SELECT 1",
			expected: &ParsedInvocation{
				SQL:       "SELECT 1",
				ResultVar: "r",
			},
		},
		{
			name: "connection and result variable together",
			line: "dbadmin@warehouse r << SELECT 1",
			cell: "UNION SELECT 2",
			expected: &ParsedInvocation{
				SQL:           "SELECT 1\nUNION SELECT 2",
				ResultVar:     "r",
				ConnectionRef: "dbadmin@warehouse",
			},
		},
		{
			name: "bare shift operator passes through as sql",
			line: "<< SELECT 1",
			expected: &ParsedInvocation{
				SQL: "<< SELECT 1",
			},
		},
		{
			name: "illegal identifier passes through as sql",
			line: "my-var << SELECT 1",
			expected: &ParsedInvocation{
				SQL: "my-var << SELECT 1",
			},
		},
		{
			name: "shift deeper in the statement is untouched",
			line: "SELECT 1 << 2",
			expected: &ParsedInvocation{
				SQL: "SELECT 1 << 2",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.cfg
			if c == nil {
				c = cfg
			}

			parsed := Parse(tc.line, tc.cell, c)
			assert.DeepEqual(t, parsed, tc.expected)
		})
	}
}
