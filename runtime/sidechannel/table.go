package sidechannel

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jymfony/scriba/runtime/reflection"
)

// TableVersion is the side-channel table format version written by this package.
const TableVersion = "1"

var (
	// ErrClassNotFound is returned when a backend has no data for a class id.
	ErrClassNotFound = errors.New("class not found")

	// ErrInvalidTable is returned for malformed side-channel tables.
	ErrInvalidTable = errors.New("invalid side-channel table")

	// ErrUnsupportedDriver is returned by Open for unknown provider drivers.
	ErrUnsupportedDriver = errors.New("unsupported provider driver")
)

var gzipMagic = []byte{0x1f, 0x8b}

// Table is the serialized form of a provider's contents.
type Table struct {
	Version   string                                       `json:"version"`
	Generated time.Time                                    `json:"generated"`
	Classes   map[reflection.ClassID]*reflection.ClassData `json:"classes"`
}

// NewTable creates an empty table stamped with the current time.
func NewTable() *Table {
	return &Table{
		Version:   TableVersion,
		Generated: time.Now().UTC().Truncate(time.Second),
		Classes:   make(map[reflection.ClassID]*reflection.ClassData),
	}
}

// ClassIDs returns the table's class ids in sorted order.
func (t *Table) ClassIDs() []reflection.ClassID {
	ids := make([]reflection.ClassID, 0, len(t.Classes))
	for id := range t.Classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Validate checks the table version and every entry.
func (t *Table) Validate() error {
	if t.Version != TableVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidTable, t.Version)
	}
	for id, data := range t.Classes {
		if err := ValidateClassID(id); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
		if data == nil {
			return fmt.Errorf("%w: class %s has no data", ErrInvalidTable, id)
		}
		if data.ClassName == "" {
			return fmt.Errorf("%w: class %s has no name", ErrInvalidTable, id)
		}
	}
	return nil
}

// ValidateClassID checks that id is a UUID.
func ValidateClassID(id reflection.ClassID) error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("class id %q: %w", id, err)
	}
	return nil
}

// Encode serializes the table as indented JSON, gzip-compressed when
// compress is set. The output is deterministic for a given table.
func Encode(t *Table, compress bool) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize table: %w", err)
	}
	if !compress {
		return data, nil
	}

	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to compress table: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a table, transparently decompressing gzip input.
func Decode(data []byte) (*Table, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = r.Close()
		}()

		if data, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("failed to decompress table: %w", err)
		}
	}

	var t Table
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if t.Classes == nil {
		t.Classes = make(map[reflection.ClassID]*reflection.ClassData)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeClass(data *reflection.ClassData) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize class data: %w", err)
	}
	return b, nil
}

func decodeClass(b []byte) (*reflection.ClassData, error) {
	var data reflection.ClassData
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode class data: %w", err)
	}
	return &data, nil
}
