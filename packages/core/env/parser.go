package env

import (
	"strings"
)

const exportPrefix = "export "

// Parse splits data into lines and classifies each one. It never fails:
// anything that is not a comment, blank or assignment becomes an opaque line.
// Lines may end in \n or \r\n; serializing the result writes \n.
func Parse(data []byte) *Document {
	doc := &Document{}
	text := string(data)
	if text == "" {
		return doc
	}

	if strings.HasSuffix(text, "\n") {
		doc.trailingNewline = true
		text = text[:len(text)-1]
	}

	for _, raw := range strings.Split(text, "\n") {
		doc.lines = append(doc.lines, parseLine(strings.TrimSuffix(raw, "\r")))
	}

	return doc
}

func parseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Line{Kind: LineBlank, Raw: raw}
	case strings.HasPrefix(trimmed, "#"):
		return Line{Kind: LineComment, Raw: raw}
	}

	line := Line{Kind: LineOpaque, Raw: raw}

	body := trimmed
	exported := false
	// "export = x" assigns to a key named export
	if rest, ok := strings.CutPrefix(body, exportPrefix); ok {
		if rest = strings.TrimLeft(rest, " \t"); !strings.HasPrefix(rest, "=") {
			body = rest
			exported = true
		}
	}

	key, value, found := strings.Cut(body, "=")
	if !found {
		return line
	}

	key = strings.TrimSpace(key)
	if !ValidKey(key) {
		return line
	}

	line.Kind = LineAssignment
	line.Key = key
	line.Exported = exported
	line.Value, line.Quote = parseValue(strings.TrimLeft(value, " \t"))
	return line
}

// ValidKey reports whether key can be written as the left side of an
// assignment.
func ValidKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, " \t\r\n=#\"'")
}

// parseValue decodes the text after '='. An unterminated quote is dropped
// and the rest of the line is taken as the value.
func parseValue(s string) (string, byte) {
	if s == "" {
		return "", 0
	}

	switch q := s[0]; q {
	case '"', '\'':
		if value, ok := scanQuoted(s[1:], q); ok {
			return value, q
		}
		return strings.TrimRight(s[1:], " \t"), q
	}

	return scanUnquoted(s), 0
}

func scanQuoted(s string, quote byte) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == quote {
			return b.String(), true
		}
		if c == '\\' && i+1 < len(s) {
			if r, ok := unescape(s[i+1], quote); ok {
				b.WriteByte(r)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return "", false
}

func unescape(c, quote byte) (byte, bool) {
	if c == '\\' || c == quote {
		return c, true
	}
	if quote != '"' {
		return 0, false
	}
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// scanUnquoted stops at the first unescaped '#'.
func scanUnquoted(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '#' {
			break
		}
		if c == '\\' && i+1 < len(s) && s[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return strings.TrimRight(b.String(), " \t")
}
