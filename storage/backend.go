package storage

import (
	"context"
	"fmt"
	"time"

	"actividad-clase/api-service/logging"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Options selects the backend and carries the settings of each kind.
type Options struct {
	Kind       string
	DataDir    string
	SQLitePath string
	MongoURI   string
	MongoDB    string
	Breaker    bool
}

// Backend hands out named collections for the configured storage kind.
type Backend struct {
	kind      string
	snapshots SnapshotStore
	mongoColl *mongo.Collection
	breaker   bool
	closers   []func(context.Context) error
}

// Open prepares the backend named by opts.Kind. For mongo it connects and
// pings the server before returning.
func Open(ctx context.Context, opts Options) (*Backend, error) {
	b := &Backend{kind: opts.Kind, breaker: opts.Breaker}

	switch opts.Kind {
	case BackendFile:
		store, err := NewFileStore(opts.DataDir)
		if err != nil {
			return nil, err
		}
		b.snapshots = store
		logging.Logger.Infof("Event ID: STORAGE_READY, Description: Using JSON files in %s", opts.DataDir)

	case BackendMemory:
		b.snapshots = NewMemoryStore()
		logging.Logger.Warn("Event ID: STORAGE_READY, Description: Using in-memory storage, data will not survive a restart")

	case BackendSQLite:
		store, err := NewSQLiteStore(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.snapshots = store
		b.closers = append(b.closers, func(context.Context) error { return store.Close() })
		logging.Logger.Infof("Event ID: STORAGE_READY, Description: Using SQLite database %s", opts.SQLitePath)

	case BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("database connection for MongoDB failed: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			client.Disconnect(ctx)
			return nil, fmt.Errorf("MongoDB connection ping error: %w", err)
		}
		b.mongoColl = client.Database(opts.MongoDB).Collection(MongoSnapshotsCollection)
		b.closers = append(b.closers, client.Disconnect)
		logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB, using %s/%s", opts.MongoDB, MongoSnapshotsCollection)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}

	return b, nil
}

// NewFromStore wraps an already built SnapshotStore, mostly for tests.
func NewFromStore(store SnapshotStore) *Backend {
	return &Backend{kind: BackendMemory, snapshots: store}
}

func (b *Backend) Kind() string { return b.kind }

// Close releases database connections; it returns the first error seen.
func (b *Backend) Close(ctx context.Context) error {
	var firstErr error
	for _, closeFn := range b.closers {
		if err := closeFn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Named returns the collection called name on backend b.
func Named[T any](b *Backend, name string) Collection[T] {
	var coll Collection[T]
	if b.mongoColl != nil {
		coll = NewMongoCollection[T](b.mongoColl, name)
	} else {
		coll = NewJSONCollection[T](b.snapshots, name)
	}

	if b.breaker {
		coll = NewBreakerCollection(coll, NewBreaker(name+"-storage-cb"))
	}
	return coll
}

var (
	_ Collection[struct{}] = (*JSONCollection[struct{}])(nil)
	_ Collection[struct{}] = (*MongoCollection[struct{}])(nil)
	_ Collection[struct{}] = (*BreakerCollection[struct{}])(nil)
)
