package env

import (
	"fmt"
	"strings"
	"unicode"
)

// QuoteMode controls how Set writes values.
type QuoteMode string

const (
	// QuoteAlways wraps every value in double quotes.
	QuoteAlways QuoteMode = "always"
	// QuoteNever writes values bare unless they contain a line break.
	QuoteNever QuoteMode = "never"
	// QuoteAuto quotes values containing anything but letters and digits.
	QuoteAuto QuoteMode = "auto"
)

// ParseQuoteMode converts a flag or config value into a QuoteMode.
// An empty string selects QuoteAlways.
func ParseQuoteMode(s string) (QuoteMode, error) {
	switch mode := QuoteMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return QuoteAlways, nil
	case QuoteAlways, QuoteNever, QuoteAuto:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid quote mode %q (want always, never or auto)", s)
	}
}

// FormatOptions describe how an assignment line is written.
type FormatOptions struct {
	Quote  QuoteMode
	Export bool
}

var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// FormatAssignment renders key and value as a single .env line that parses
// back to the same value.
func FormatAssignment(key, value string, opts FormatOptions) string {
	var b strings.Builder
	if opts.Export {
		b.WriteString(exportPrefix)
	}
	b.WriteString(key)
	b.WriteByte('=')

	if needsQuotes(value, opts.Quote) {
		b.WriteByte('"')
		b.WriteString(doubleQuoteEscaper.Replace(value))
		b.WriteByte('"')
	} else {
		b.WriteString(strings.ReplaceAll(value, "#", `\#`))
	}

	return b.String()
}

func needsQuotes(value string, mode QuoteMode) bool {
	if strings.ContainsAny(value, "\r\n") {
		return true
	}

	switch mode {
	case QuoteNever:
		return false
	case QuoteAuto:
		if value == "" {
			return true
		}
		for _, r := range value {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// stripQuotes drops a stray leading quote and its matching trailing quote,
// so `"WORLD` and `"WORLD"` are both stored as WORLD.
func stripQuotes(value string) string {
	if value == "" || (value[0] != '"' && value[0] != '\'') {
		return value
	}
	q := value[0]
	value = value[1:]
	return strings.TrimSuffix(value, string(q))
}
