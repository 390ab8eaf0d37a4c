// Package storage persists each resource collection as one full snapshot.
// Every read returns the whole collection and every write replaces it.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

var (
	// ErrNoSnapshot is returned by a SnapshotStore when nothing was saved under a name yet.
	ErrNoSnapshot = errors.New("snapshot not found")
	// ErrUnavailable means the backend is short-circuited and the call was not attempted.
	ErrUnavailable = errors.New("storage unavailable")
)

// Collection reads and writes the complete, ordered contents of one named collection.
type Collection[T any] interface {
	Name() string
	// ReadAll returns an empty slice, not an error, when the collection was never written.
	ReadAll(ctx context.Context) ([]T, error)
	WriteAll(ctx context.Context, records []T) error
}

// SnapshotStore keeps raw JSON snapshots by name.
type SnapshotStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// JSONCollection encodes a collection as a pretty-printed JSON array and
// hands the bytes to a SnapshotStore.
type JSONCollection[T any] struct {
	store SnapshotStore
	name  string
}

// NewJSONCollection returns the collection called name, kept in store.
func NewJSONCollection[T any](store SnapshotStore, name string) *JSONCollection[T] {
	return &JSONCollection[T]{store: store, name: name}
}

func (c *JSONCollection[T]) Name() string { return c.name }

func (c *JSONCollection[T]) ReadAll(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.name)
	if errors.Is(err, ErrNoSnapshot) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.name, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *JSONCollection[T]) WriteAll(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := encodeSnapshot(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.name, err)
	}
	return nil
}

// encodeSnapshot indents with two spaces and leaves <, > and & unescaped,
// without the newline the encoder appends.
func encodeSnapshot(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
