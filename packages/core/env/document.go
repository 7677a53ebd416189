package env

import (
	"fmt"
	"strings"
)

// Document is the parsed form of a .env file. Serializing a Document that
// was not mutated reproduces its input, with line endings normalized to \n.
type Document struct {
	lines           []Line
	trailingNewline bool
}

// Lines returns a copy of every line in file order.
func (d *Document) Lines() []Line {
	return append([]Line(nil), d.lines...)
}

// Get returns the value of the last assignment to key.
func (d *Document) Get(key string) (string, bool) {
	if i := d.lastIndex(key); i >= 0 {
		return d.lines[i].Value, true
	}
	return "", false
}

// Has reports whether key is assigned anywhere in the document.
func (d *Document) Has(key string) bool {
	return d.lastIndex(key) >= 0
}

// Set replaces the last assignment to key in place, or appends one at the end
// of the document. A stray surrounding quote in value is dropped. It returns
// the value actually stored.
func (d *Document) Set(key, value string, opts FormatOptions) (string, error) {
	if !ValidKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	value = stripQuotes(value)

	i := d.lastIndex(key)
	if i >= 0 {
		opts.Export = opts.Export || d.lines[i].Exported
		d.lines[i] = parseLine(FormatAssignment(key, value, opts))
		return value, nil
	}

	d.lines = append(d.lines, parseLine(FormatAssignment(key, value, opts)))
	d.trailingNewline = true
	return value, nil
}

// Unset removes every assignment to key and returns how many were removed.
func (d *Document) Unset(key string) int {
	kept := d.lines[:0]
	removed := 0
	for _, l := range d.lines {
		if l.Kind == LineAssignment && l.Key == key {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	d.lines = kept
	return removed
}

// Entries returns every assignment in file order, duplicates included.
func (d *Document) Entries() []Entry {
	var entries []Entry
	for _, l := range d.lines {
		if l.Kind == LineAssignment {
			entries = append(entries, Entry{Key: l.Key, Value: l.Value})
		}
	}
	return entries
}

// Values collapses the assignments into a map where later lines win.
func (d *Document) Values() map[string]string {
	values := make(map[string]string)
	for _, l := range d.lines {
		if l.Kind == LineAssignment {
			values[l.Key] = l.Value
		}
	}
	return values
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Raw)
	}
	if d.trailingNewline && len(d.lines) > 0 {
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (d *Document) lastIndex(key string) int {
	for i := len(d.lines) - 1; i >= 0; i-- {
		if d.lines[i].Kind == LineAssignment && d.lines[i].Key == key {
			return i
		}
	}
	return -1
}

// Truthy coerces a stored string to a boolean the way shells and most .env
// consumers do. Matching is case-insensitive: 1, t, true, y, yes and on are
// true, everything else is false.
func Truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
