// Package jsonstore implements durable CRUD over a named collection of
// records kept in a single JSON file, e.g. expenses/expense_forms.json
// holding {"schema_version": 1, "forms": [...]}.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// SchemaVersion is written into every collection envelope. The original
// files had no version field; readers treat a missing field as version 1.
const SchemaVersion = 1

// Collection is a JSON-file-backed list of records of type T, keyed by a
// string ID. All mutation goes through a per-collection mutex and an
// atomic temp-file + backup + rename write.
type Collection[T any] struct {
	path     string
	arrayKey string
	idOf     func(*T) string
	setID    func(*T, string)
	// newID derives an identifier for a record that has none yet. It
	// receives the current contents of the collection so ID schemes
	// with running numbers can scan for collisions.
	newID func(existing []T, rec *T) string

	mu sync.Mutex
}

// Options configure a Collection.
type Options[T any] struct {
	// Path is the full path of the collection file.
	Path string
	// ArrayKey is the name of the envelope's single array field.
	ArrayKey string
	// ID returns the record's identifier.
	ID func(*T) string
	// SetID stores a generated identifier on the record.
	SetID func(*T, string)
	// NewID generates an identifier for records saved without one.
	NewID func(existing []T, rec *T) string
}

func New[T any](opts Options[T]) *Collection[T] {
	return &Collection[T]{
		path:     opts.Path,
		arrayKey: opts.ArrayKey,
		idOf:     opts.ID,
		setID:    opts.SetID,
		newID:    opts.NewID,
	}
}

// LoadAll returns every record in the collection. An absent, empty or
// unparseable file degrades to an empty collection: the failure is
// logged, not returned, so history views stay usable.
func (c *Collection[T]) LoadAll() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadLocked()
}

func (c *Collection[T]) loadLocked() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("reading collection, treating as empty", "path", c.path, "error", err)
		}

		return nil
	}

	if len(data) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		slog.Warn("parsing collection, treating as empty", "path", c.path, "error", err)
		return nil
	}

	raw, ok := envelope[c.arrayKey]
	if !ok {
		return nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.Warn("parsing collection records, treating as empty", "path", c.path, "error", err)
		return nil
	}

	return records
}

// Save writes the record into the collection and returns its ID. A record
// without an ID gets one assigned; a record whose ID already exists
// replaces the first match in place, otherwise it is appended.
func (c *Collection[T]) Save(rec *T) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.loadLocked()

	id := c.idOf(rec)
	if id == "" {
		if c.newID == nil {
			return "", fmt.Errorf("record has no ID and collection %s has no ID generator", c.arrayKey)
		}

		id = c.newID(records, rec)
		c.setID(rec, id)
	}

	replaced := false

	for i := range records {
		if c.idOf(&records[i]) == id {
			records[i] = *rec
			replaced = true

			break
		}
	}

	if !replaced {
		records = append(records, *rec)
	}

	if err := c.writeLocked(records); err != nil {
		return "", err
	}

	return id, nil
}

// Delete removes every record with the given ID and reports whether any
// record was removed. Deleting an unknown ID leaves the file untouched.
func (c *Collection[T]) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.loadLocked()

	kept := records[:0]
	for i := range records {
		if c.idOf(&records[i]) != id {
			kept = append(kept, records[i])
		}
	}

	if len(kept) == len(records) {
		return false, nil
	}

	if err := c.writeLocked(kept); err != nil {
		return false, err
	}

	return true, nil
}

// GetByID returns the first record with the given ID, or false.
func (c *Collection[T]) GetByID(id string) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.loadLocked()
	for i := range records {
		if c.idOf(&records[i]) == id {
			rec := records[i]
			return &rec, true
		}
	}

	return nil, false
}

// ReplaceAll overwrites the whole collection with the given records.
func (c *Collection[T]) ReplaceAll(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writeLocked(records)
}

// writeLocked serializes the full collection through a temp file, keeps a
// .bak copy of the previous file, then atomically renames into place.
func (c *Collection[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}

	envelope := map[string]any{
		"schema_version": SchemaVersion,
		c.arrayKey:       records,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", c.arrayKey, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating collection directory: %w", err)
	}

	// Unique temp name so a second process mid-write cannot clobber ours.
	tmp := fmt.Sprintf("%s.%s.tmp", c.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if prev, err := os.ReadFile(c.path); err == nil {
		if err := os.WriteFile(c.path+".bak", prev, 0o644); err != nil {
			slog.Warn("writing backup file", "path", c.path+".bak", "error", err)
		}
	}

	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing collection file: %w", err)
	}

	return nil
}
