// Package db exposes named ordered key-value trees on top of a bolt
// environment, with atomic counters, streaming range scans and prefix
// change notification.
package db

import (
	"sync"
	"time"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"
)

// Version is the current release of the storage layer.
const Version = "0.1.0"

// Default environment bounds.
const (
	DefaultMapSize  = 1 << 40 // 1 TiB virtual size cap
	DefaultMaxTrees = 128
	DefaultWorkers  = 10
)

// Config describes a storage environment.
type Config struct {
	Path     string
	MapSize  int
	MaxTrees int
	Workers  int
}

func (c Config) withDefaults() Config {
	if c.MapSize == 0 {
		c.MapSize = DefaultMapSize
	}
	if c.MaxTrees == 0 {
		c.MaxTrees = DefaultMaxTrees
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// Engine is the open handle to one storage environment. It owns the
// bolt database and the worker pool shared by every tree opened from it.
type Engine struct {
	db   *bolt.DB
	pool *WorkerPool

	mu       sync.Mutex
	watchers map[string]*Watchers
	maxTrees int
}

// Open opens or creates the storage environment at cfg.Path.
func Open(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	database, err := bolt.Open(cfg.Path, 0600, &bolt.Options{
		Timeout:         time.Second,
		InitialMmapSize: cfg.MapSize,
	})
	if err != nil {
		return nil, &StorageOpenError{Path: cfg.Path, Err: err}
	}

	logrus.WithField("path", cfg.Path).Debug("storage environment opened")

	return &Engine{
		db:       database,
		pool:     NewWorkerPool(cfg.Workers),
		watchers: make(map[string]*Watchers),
		maxTrees: cfg.MaxTrees,
	}, nil
}

// OpenTree opens the named tree, creating it on first use. Handles
// returned for the same name share the underlying namespace, its watcher
// registry and the engine's worker pool.
func (e *Engine) OpenTree(name string) (*Tree, error) {
	e.mu.Lock()
	watchers, known := e.watchers[name]
	if !known {
		if len(e.watchers) >= e.maxTrees {
			e.mu.Unlock()
			return nil, &StorageOpenError{Path: name, Err: ErrTreeLimit}
		}
		watchers = NewWatchers()
		e.watchers[name] = watchers
	}
	e.mu.Unlock()

	err := e.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		if !known {
			e.mu.Lock()
			delete(e.watchers, name)
			e.mu.Unlock()
		}
		return nil, &StorageOpenError{Path: name, Err: err}
	}

	return &Tree{
		engine:   e,
		name:     []byte(name),
		watchers: watchers,
	}, nil
}

// Flush forces a durable sync of all committed writes to disk and blocks
// until it completes. Commits are already durable on their own; Flush is
// an explicit barrier on top of that.
func (e *Engine) Flush() error {
	if err := e.db.Sync(); err != nil {
		return &StorageIOError{Op: "sync", Err: err}
	}
	return nil
}

// Path returns the location of the environment on disk.
func (e *Engine) Path() string {
	return e.db.Path()
}

// Close stops the worker pool and closes the environment. Trees opened
// from the engine must not be used afterwards.
func (e *Engine) Close() error {
	e.pool.Close()
	return e.db.Close()
}
