package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on top of BadgerDB. Posts live under
// "post:<id>" and comments under "comment:<post id>:<id>" so a post's
// comments can be listed with a single prefix scan.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool

	// writeMu serializes read-write transactions issued through this store.
	// Every insert touches a shared sequence key, so concurrent writers
	// would otherwise abort each other with badger.ErrConflict.
	writeMu sync.Mutex
}

// maxConflictRetries bounds how often update reruns a transaction that lost
// a conflict to a writer outside this store.
const maxConflictRetries = 16

var _ Store = (*BadgerStore)(nil)

// OpenBadger opens (or creates) a Badger database at path. An empty path
// opens an in-memory database.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create badger dir: %w", err)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// DB exposes the underlying database for maintenance tasks such as backups.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func (s *BadgerStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// view and update run fn in a transaction unless ctx is already done.
// update may run fn more than once, so fn must not keep state across calls.
func (s *BadgerStore) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}
