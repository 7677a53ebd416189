package output

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/dotenv/packages/core/env"
	"gopkg.in/yaml.v3"
)

// Format selects how list output is rendered.
type Format string

const (
	FormatSimple Format = "simple"
	FormatJSON   Format = "json"
	FormatShell  Format = "shell"
	FormatExport Format = "export"
	FormatYAML   Format = "yaml"
)

// Formats lists every supported format in help order.
var Formats = []Format{FormatSimple, FormatJSON, FormatShell, FormatExport, FormatYAML}

// ParseFormat converts a flag or config value into a Format. An empty
// string selects FormatSimple.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return FormatSimple, nil
	}
	for _, f := range Formats {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (want %s)", s, formatNames())
}

func formatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// WriteEntries renders entries to w. Line formats keep every entry in file
// order; json and yaml collapse duplicates with later entries winning.
func WriteEntries(w io.Writer, entries []env.Entry, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(collapse(entries))

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(collapse(entries)); err != nil {
			return err
		}
		return enc.Close()

	case FormatShell, FormatExport:
		prefix := ""
		if format == FormatExport {
			prefix = "export "
		}
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s%s=%s\n", prefix, e.Key, ShellQuote(e.Value)); err != nil {
				return err
			}
		}
		return nil

	default:
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s=%s\n", e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	}
}

func collapse(entries []env.Entry) map[string]string {
	values := make(map[string]string, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	return values
}

var shellSafe = regexp.MustCompile(`^[\w@%+=:,./-]+$`)

// ShellQuote quotes s for a POSIX shell, leaving it bare when it is safe.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
