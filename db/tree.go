package db

import (
	"github.com/boltdb/bolt"

	"github.com/itsknk/matrix-server/util"
)

// Tree is a handle on one named, independently ordered key-value
// namespace. All handles for the same name observe the same committed
// state.
type Tree struct {
	engine   *Engine
	name     []byte
	watchers *Watchers
}

// Name returns the tree's namespace name.
func (t *Tree) Name() string {
	return string(t.name)
}

// Get returns the value stored at key, or nil when the key is absent.
// The returned slice is a copy valid beyond the read transaction.
func (t *Tree) Get(key []byte) ([]byte, error) {
	var value []byte
	err := t.engine.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(t.name).Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, &TransactionError{Op: "get", Err: err}
	}
	return value, nil
}

// Insert stores value at key and, once the transaction has committed,
// wakes every watcher whose prefix matches key. No wake happens when the
// transaction fails.
func (t *Tree) Insert(key, value []byte) error {
	err := t.engine.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(t.name).Put(key, value)
	})
	if err != nil {
		return &StorageIOError{Op: "put", Err: err}
	}
	t.watchers.Wake(key)
	return nil
}

// Remove deletes key, a no-op when it is absent. Deletions do not wake
// watchers: the sync streams built on WatchPrefix only advance on inserts.
func (t *Tree) Remove(key []byte) error {
	err := t.engine.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(t.name).Delete(key)
	})
	if err != nil {
		return &StorageIOError{Op: "delete", Err: err}
	}
	return nil
}

// Increment bumps the counter stored at key and returns its new 8-byte
// big-endian encoding, starting from 1 when the key was absent. Ordering
// between concurrent calls is guaranteed by the store's single-writer
// serialization, not by retries.
func (t *Tree) Increment(key []byte) ([]byte, error) {
	var value []byte
	err := t.engine.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(t.name)
		value = util.Increment(bucket.Get(key))
		return bucket.Put(key, value)
	})
	if err != nil {
		return nil, &TransactionError{Op: "increment", Err: err}
	}
	return value, nil
}

// WatchPrefix returns a channel closed by the next insert whose key
// starts with prefix. Writes committed before the call never fire it.
func (t *Tree) WatchPrefix(prefix []byte) <-chan struct{} {
	return t.watchers.WatchPrefix(prefix)
}
