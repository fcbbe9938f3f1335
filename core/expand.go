package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

// Connection parameter fields may embed template actions so that
// secrets stay out of the stored parameters:
//
//	{{ env "VERTICA_PASSWORD" }}
//	{{ exec "pass show db/vertica" }}
//
// Actions resolve once, at connect time.
var expandFuncs = template.FuncMap{
	"env":  os.Getenv,
	"exec": runCommand,
}

// runCommand executes a command line and returns its trimmed output.
// A line containing a pipe runs through the shell, everything else is
// invoked directly.
func runCommand(line string) (string, error) {
	if strings.Contains(line, " | ") {
		out, err := exec.Command("sh", "-c", line).Output()
		return strings.TrimSpace(string(out)), err
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", errors.New("no command provided")
	}

	out, err := exec.Command(fields[0], fields[1:]...).Output()
	return strings.TrimSpace(string(out)), err
}

// expand renders the template actions embedded in a parameter value.
func expand(value string) (string, error) {
	tmpl, err := template.New("params").Funcs(expandFuncs).Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault falls back to the raw value when expansion fails.
func expandOrDefault(value string) string {
	expanded, err := expand(value)
	if err != nil {
		return value
	}
	return expanded
}
