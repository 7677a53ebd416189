package env

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Environ is a variable table that Load can read and write.
type Environ interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

type osEnviron struct{}

func (osEnviron) Lookup(key string) (string, bool) { return os.LookupEnv(key) }
func (osEnviron) Set(key, value string) error      { return os.Setenv(key, value) }

// OSEnviron is the environment of the current process.
var OSEnviron Environ = osEnviron{}

// MapEnviron is an in-memory Environ.
type MapEnviron map[string]string

// NewMapEnviron builds a MapEnviron from KEY=VALUE pairs such as os.Environ().
func NewMapEnviron(list []string) MapEnviron {
	m := make(MapEnviron, len(list))
	for _, kv := range list {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		m[key] = value
	}
	return m
}

func (m MapEnviron) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnviron) Set(key, value string) error {
	m[key] = value
	return nil
}

// List returns the variables as sorted KEY=VALUE pairs, the shape
// exec.Cmd.Env expects.
func (m MapEnviron) List() []string {
	list := make([]string, 0, len(m))
	for k, v := range m {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}

// Values reads path and returns its assignments with later lines winning.
// ${VAR} references are expanded unless WithInterpolation(false) is given.
// Nothing is written to the environment.
func Values(path string, opts ...Option) (map[string]string, error) {
	o := newOptions(opts)

	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !o.interpolate {
		return doc.Values(), nil
	}

	r := NewResolver(o.environ, o.override)
	r.SetWarnFunc(o.warnFunc)
	return r.ResolveLines(doc.lines), nil
}

// Load reads path and sets every entry in the environment (the process
// environment unless WithEnviron is given). Variables that are already set
// are kept unless WithOverride(true) is given. It returns the values read.
func Load(path string, opts ...Option) (map[string]string, error) {
	o := newOptions(opts)

	vars, err := Values(path, opts...)
	if err != nil {
		return nil, err
	}

	for k, v := range vars {
		if _, ok := o.environ.Lookup(k); ok && !o.override {
			continue
		}
		if err := o.environ.Set(k, v); err != nil {
			return nil, fmt.Errorf("setting %s: %w", k, err)
		}
	}

	return vars, nil
}
