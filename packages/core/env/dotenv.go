package env

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ReadFile parses the .env file at path. A missing file yields
// ErrFileNotFound; any other I/O failure is returned wrapped.
func ReadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("cannot open env file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	return Parse(data), nil
}

// Editor performs single-key operations on one .env file. Every call reads
// the file afresh; mutating calls rewrite it atomically.
type Editor struct {
	path string
	opts *options
}

func NewEditor(path string, opts ...Option) *Editor {
	return &Editor{
		path: path,
		opts: newOptions(opts),
	}
}

// Path returns the file the editor operates on.
func (e *Editor) Path() string {
	return e.path
}

// Read parses the file.
func (e *Editor) Read() (*Document, error) {
	return ReadFile(e.path)
}

// Get returns the value of the last assignment to key. A missing file or key
// is reported as absent with a warning, not as an error.
func (e *Editor) Get(key string) (string, bool, error) {
	doc, err := e.Read()
	if errors.Is(err, ErrFileNotFound) {
		e.opts.warn("file %s doesn't exist.", e.path)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	value, ok := doc.Get(key)
	if !ok {
		e.opts.warn("key %s not found in %s.", key, e.path)
	}
	return value, ok, nil
}

// Set writes key=value and returns the key and value actually stored. It
// never creates a missing file: that case returns ErrFileNotFound.
func (e *Editor) Set(key, value string) (string, string, error) {
	doc, err := e.Read()
	if err != nil {
		return "", "", err
	}

	stored, err := doc.Set(key, value, e.opts.format)
	if err != nil {
		return "", "", err
	}

	if err := WriteFileAtomic(e.path, doc.Bytes()); err != nil {
		return "", "", err
	}
	return key, stored, nil
}

// Unset removes every assignment to key. A missing file or key returns false
// with a warning; only I/O failures are errors.
func (e *Editor) Unset(key string) (bool, error) {
	doc, err := e.Read()
	if errors.Is(err, ErrFileNotFound) {
		e.opts.warn("can't delete from %s - it doesn't exist.", e.path)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if doc.Unset(key) == 0 {
		e.opts.warn("key %s not removed from %s - key doesn't exist.", key, e.path)
		return false, nil
	}

	if err := WriteFileAtomic(e.path, doc.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

// List returns every assignment in file order, duplicates included.
func (e *Editor) List() ([]Entry, error) {
	doc, err := e.Read()
	if err != nil {
		return nil, err
	}
	return doc.Entries(), nil
}
