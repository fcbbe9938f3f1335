package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsql-project/vsql/core"
	"github.com/vsql-project/vsql/core/format"
	"github.com/vsql-project/vsql/kernel"
	"github.com/vsql-project/vsql/magic"
	"github.com/vsql-project/vsql/plugin"
)

const usage = `commands:
  %vsql [conn] [var <<] <sql>   run sql on one line
  %%vsql [conn] [var <<]        run the following lines as one statement
  \set <option> <value>         set a configuration option
  \vars                         list namespace variables
  \conns                        list stored connection aliases
  \structure [conn]             list tables and views by schema
  \databases [conn]             list databases
  \columns [conn] schema.table  describe a table
  \q                            quit`

func main() {
	historyPath := flag.String("history", filepath.Join(os.TempDir(), "vsql", "history.json"), "invocation history file")
	dsnPath := flag.String("dsn", "", "override the DSN file path")
	flag.Parse()

	if err := run(*historyPath, *dsnPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(historyPath, dsnPath string) error {
	cfg := core.DefaultConfig()
	if dsnPath != "" {
		cfg.DSNFilename = dsnPath
	}

	logger := plugin.NewLogger()
	defer logger.Close()

	history := magic.NewHistory(historyPath)
	// a missing history file on first run is fine
	_ = history.Restore()
	defer func() {
		_ = history.Store()
	}()

	m := magic.New(cfg,
		magic.WithLogger(logger),
		magic.WithHistory(history),
	)

	reg := kernel.NewRegistry()
	if err := reg.Register(m, "vsql", "sql"); err != nil {
		return fmt.Errorf("reg.Register: %w", err)
	}

	ns := kernel.Namespace{}
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("vsql> ")
	for scanner.Scan() {
		src := strings.TrimRight(scanner.Text(), " \t")

		switch {
		case src == "":

		case src == `\q`:
			return nil

		case src == `\help`:
			fmt.Printf("%s\n", usage)

		case src == `\vars`:
			for name := range ns {
				fmt.Println(name)
			}

		case src == `\conns`:
			for _, name := range m.Store().Names() {
				fmt.Println(name)
			}

		case strings.HasPrefix(src, `\set`):
			handleSet(cfg, src)

		case strings.HasPrefix(src, `\structure`):
			handleStructure(m, src)

		case strings.HasPrefix(src, `\databases`):
			handleDatabases(m, src)

		case strings.HasPrefix(src, `\columns`):
			handleColumns(m, src)

		case strings.HasPrefix(src, "%%"):
			// cell form: read until an empty line
			cell := readCell(scanner)
			dispatch(reg, src+"\n"+cell, ns, cfg)

		default:
			if !strings.HasPrefix(src, "%") {
				// bare sql is a shorthand for the line magic
				src = "%vsql " + src
			}
			dispatch(reg, src, ns, cfg)
		}

		fmt.Print("vsql> ")
	}

	return scanner.Err()
}

// readCell collects the body of a cell invocation up to an empty line.
func readCell(scanner *bufio.Scanner) string {
	var lines []string
	for {
		fmt.Print("....> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func handleSet(cfg *core.Config, src string) {
	fields := strings.Fields(src)
	if len(fields) != 3 {
		fmt.Printf("usage: \\set <option> <value> (options: %s)\n", strings.Join(kernel.OptionNames(), ", "))
		return
	}

	if err := kernel.SetOption(cfg, fields[1], fields[2]); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func handleStructure(m *magic.Magic, src string) {
	structure, err := m.Structure(refArg(src, 1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	for _, schema := range structure {
		fmt.Println(schema.Name)
		for _, child := range schema.Children {
			fmt.Printf("  %s (%s)\n", child.Name, child.Type)
		}
	}
}

func handleDatabases(m *magic.Magic, src string) {
	current, available, err := m.Databases(refArg(src, 1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	fmt.Printf("* %s\n", current)
	for _, name := range available {
		fmt.Printf("  %s\n", name)
	}
}

func handleColumns(m *magic.Magic, src string) {
	fields := strings.Fields(src)
	if len(fields) < 2 {
		fmt.Println(`usage: \columns [conn] schema.table`)
		return
	}

	ref := ""
	target := fields[1]
	if len(fields) > 2 {
		ref = fields[1]
		target = fields[2]
	}

	schema, table, found := strings.Cut(target, ".")
	if !found {
		schema, table = "", target
	}

	columns, err := m.Columns(ref, schema, table)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	for _, column := range columns {
		fmt.Printf("%s\t%s\n", column.Name, column.Type)
	}
}

// refArg returns the optional connection reference argument of a
// backslash command.
func refArg(src string, index int) string {
	fields := strings.Fields(src)
	if len(fields) > index {
		return fields[index]
	}
	return ""
}

func dispatch(reg *kernel.Registry, src string, ns kernel.Namespace, cfg *core.Config) {
	result, recognized, err := reg.Dispatch(src, ns)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if !recognized {
		fmt.Println("not a magic invocation, try \\help")
		return
	}

	render(os.Stdout, result, cfg)
}

func render(out io.Writer, result any, cfg *core.Config) {
	switch res := result.(type) {
	case nil:

	case *core.Result:
		to := -1
		if cfg.DisplayLimit > 0 && cfg.DisplayLimit < res.Len() {
			to = cfg.DisplayLimit
		}

		b, err := res.Format(format.NewTable(cfg.Style), 0, to)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Fprintln(out, string(b))

		if res.Truncated() {
			fmt.Fprintln(out, "(result truncated by autolimit)")
		}

	case *core.Frame:
		fmt.Fprintf(out, "frame with %d rows, columns [%s]\n", res.Len(), strings.Join(res.Keys(), ", "))

	default:
		fmt.Fprintln(out, res)
	}
}
