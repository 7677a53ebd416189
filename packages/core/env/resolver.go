package env

import (
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\$\{([^}:]*)(?::-([^}]*))?\}`)

// Resolver expands ${NAME} and ${NAME:-default} references in values.
// Without override the environment is consulted before earlier file values;
// with override the file wins.
type Resolver struct {
	environ  Environ
	override bool
	warnFunc WarnFunc
}

func NewResolver(environ Environ, override bool) *Resolver {
	if environ == nil {
		environ = MapEnviron{}
	}
	return &Resolver{
		environ:  environ,
		override: override,
	}
}

// SetWarnFunc sets a function to be called for references that resolve to
// nothing and have no default.
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.warnFunc = fn
}

func (r *Resolver) warn(format string, args ...any) {
	if r.warnFunc != nil {
		r.warnFunc(format, args...)
	}
}

// ResolveLines expands each assignment in order, so a value can refer to keys
// assigned above it. Single-quoted values are taken literally.
func (r *Resolver) ResolveLines(lines []Line) map[string]string {
	values := make(map[string]string)
	for _, l := range lines {
		if l.Kind != LineAssignment {
			continue
		}
		if l.Quote == '\'' {
			values[l.Key] = l.Value
			continue
		}
		values[l.Key] = r.Resolve(l.Value, values)
	}
	return values
}

// Resolve expands references in input using file as the values read so far.
func (r *Resolver) Resolve(input string, file map[string]string) string {
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := variablePattern.FindStringSubmatch(match)
		name, def := groups[1], groups[2]

		if val, ok := r.lookup(name, file); ok {
			return val
		}
		if !strings.Contains(match, ":-") {
			r.warn("unresolved variable: ${%s}", name)
		}
		return def
	})
}

func (r *Resolver) lookup(name string, file map[string]string) (string, bool) {
	if r.override {
		if val, ok := file[name]; ok {
			return val, true
		}
		return r.environ.Lookup(name)
	}
	if val, ok := r.environ.Lookup(name); ok {
		return val, true
	}
	val, ok := file[name]
	return val, ok
}
