package sidechannel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadFile reads a side-channel table from path into an in-memory provider.
func LoadFile(path string) (*Memory, error) {
	t, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryFromTable(t), nil
}

// ReadFile reads and validates a side-channel table.
func ReadFile(path string) (*Table, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	t, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}

// WriteFile writes t to path, creating parent directories as needed.
func WriteFile(path string, t *Table, compress bool) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	data, err := Encode(t, compress)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write table to %s: %w", path, err)
	}
	return nil
}

// File is a Memory backend persisted to a side-channel file. Put updates the
// in-memory table; Flush writes it back.
type File struct {
	*Memory
	path     string
	compress bool
}

// OpenFile loads path into a File backend. A missing file yields an empty
// table that Flush will create.
func OpenFile(path string, compress bool) (*File, error) {
	f := &File{Memory: NewMemory(), path: path, compress: compress}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}

	m, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	f.Memory = m
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Flush writes the table to the backing file.
func (f *File) Flush() error {
	return WriteFile(f.path, f.Memory.Table(), f.compress)
}
