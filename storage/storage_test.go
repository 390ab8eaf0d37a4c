package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

func sampleItems() []item {
	return []item{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
}

func snapshotStores(t *testing.T) map[string]SnapshotStore {
	t.Helper()
	files, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	db, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]SnapshotStore{
		"file":   files,
		"memory": NewMemoryStore(),
		"sqlite": db,
	}
}

func TestReadAbsentCollectionIsEmpty(t *testing.T) {
	for name, store := range snapshotStores(t) {
		t.Run(name, func(t *testing.T) {
			records, err := NewJSONCollection[item](store, "people").ReadAll(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestWriteReadRoundTripPreservesOrder(t *testing.T) {
	for name, store := range snapshotStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := NewJSONCollection[item](store, "people")

			require.NoError(t, coll.WriteAll(ctx, sampleItems()))
			records, err := coll.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleItems(), records)

			require.NoError(t, coll.WriteAll(ctx, []item{{ID: 9, Name: "z"}}))
			records, err = coll.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []item{{ID: 9, Name: "z"}}, records)
		})
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	for name, store := range snapshotStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			people := NewJSONCollection[item](store, "people")
			tasks := NewJSONCollection[item](store, "tasks")

			require.NoError(t, people.WriteAll(ctx, sampleItems()))
			records, err := tasks.ReadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestWriteNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	coll := NewJSONCollection[item](store, "people")

	require.NoError(t, coll.WriteAll(ctx, nil))

	data, err := store.Load(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStoreLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	coll := NewJSONCollection[item](store, "projects")
	require.NoError(t, coll.WriteAll(ctx, []item{{ID: 1, Name: "a"}}))

	data, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"name\": \"a\"\n  }\n]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreEmptyFileIsEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), nil, 0o644))
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	records, err := NewJSONCollection[item](store, "tasks").ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[{"), 0o644))
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = NewJSONCollection[item](store, "tasks").ReadAll(context.Background())
	assert.Error(t, err)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	data := []byte("[]")
	require.NoError(t, store.Save(ctx, "people", data))
	data[0] = 'x'

	loaded, err := store.Load(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(loaded))
}

func TestMemoryStoreMissing(t *testing.T) {
	_, err := NewMemoryStore().Load(context.Background(), "people")
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []Options{
		{Kind: BackendFile, DataDir: filepath.Join(dir, "data")},
		{Kind: BackendMemory},
		{Kind: BackendSQLite, SQLitePath: filepath.Join(dir, "api.db"), Breaker: true},
	}

	for _, opts := range tests {
		t.Run(opts.Kind, func(t *testing.T) {
			backend, err := Open(ctx, opts)
			require.NoError(t, err)
			defer backend.Close(ctx)
			assert.Equal(t, opts.Kind, backend.Kind())

			coll := Named[item](backend, "people")
			assert.Equal(t, "people", coll.Name())
			require.NoError(t, coll.WriteAll(ctx, sampleItems()))

			records, err := coll.ReadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleItems(), records)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Kind: "redis"})
	assert.Error(t, err)
}

func TestSQLiteStoreCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing", "x.db")

	backend, err := Open(ctx, Options{Kind: BackendSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer backend.Close(ctx)

	coll := Named[item](backend, "people")
	require.NoError(t, coll.WriteAll(ctx, sampleItems()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSQLiteStoreInMemory(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	coll := NewJSONCollection[item](store, "tasks")
	require.NoError(t, coll.WriteAll(ctx, sampleItems()))
	records, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), records)
}

func TestSnapshotKeepsHTMLCharacters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	coll := NewJSONCollection[item](store, "people")
	require.NoError(t, coll.WriteAll(ctx, []item{{ID: 1, Name: "<b>&é"}}))

	data, err := os.ReadFile(filepath.Join(dir, "people.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"name\": \"<b>&é\"\n  }\n]", string(data))

	records, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<b>&é", records[0].Name)
}
