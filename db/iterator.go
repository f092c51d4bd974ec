package db

import (
	"bytes"
	"sync"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"
)

// iterBufferSize bounds how far a scan may run ahead of its consumer.
// A full channel blocks the scanning goroutine until the consumer drains
// entries, which is the whole flow-control mechanism.
const iterBufferSize = 100

type entry struct {
	key, value []byte
}

// Iterator drains a background range scan. It is finite, pull-based and
// not restartable; entries must be consumed from a single goroutine,
// though Release may be called from any. Release must be called when
// abandoning an iterator before exhaustion so the backing scan can stop
// instead of enumerating the rest of the range.
type Iterator struct {
	entries <-chan entry
	done    chan struct{}
	errc    chan error
	prefix  []byte
	current entry
	err     error
	release sync.Once
}

// Next advances to the following pair. It returns false once the scan is
// exhausted, has failed, has left its prefix, or was released.
func (it *Iterator) Next() bool {
	select {
	case <-it.done:
		return false
	default:
	}
	e, ok := <-it.entries
	if !ok {
		return false
	}
	if it.prefix != nil && !bytes.HasPrefix(e.key, it.prefix) {
		it.Release()
		return false
	}
	it.current = e
	return true
}

// Key returns the key of the current pair. Only valid after a successful
// Next.
func (it *Iterator) Key() []byte {
	return it.current.key
}

// Value returns the value of the current pair.
func (it *Iterator) Value() []byte {
	return it.current.value
}

// Err reports a scan failure that terminated the stream early. It never
// returns anything for streams stopped by Release or prefix truncation.
func (it *Iterator) Err() error {
	select {
	case err := <-it.errc:
		it.err = err
	default:
	}
	return it.err
}

// Release stops the backing scan. Safe to call repeatedly, after
// exhaustion, and from another goroutine.
func (it *Iterator) Release() {
	it.release.Do(func() {
		close(it.done)
	})
}

// Iter scans the whole tree in ascending key order.
func (t *Tree) Iter() *Iterator {
	return t.IterFrom(nil, false)
}

// IterFrom starts an ascending scan at the first key >= from, or a
// descending scan at the last key <= from when backwards is set. An
// empty from scans the whole tree ascending; backwards it yields
// nothing, since no key sorts at or before the empty key.
func (t *Tree) IterFrom(from []byte, backwards bool) *Iterator {
	entries := make(chan entry, iterBufferSize)
	it := &Iterator{
		entries: entries,
		done:    make(chan struct{}),
		errc:    make(chan error, 1),
	}

	start := append([]byte(nil), from...)

	// The closure keeps the tree and engine reachable for the whole
	// scan, whatever the caller does with its own handles.
	t.engine.pool.Run(func() {
		t.scan(start, backwards, entries, it.done, it.errc)
	})

	return it
}

// ScanPrefix scans ascending over exactly the keys starting with prefix,
// stopping at the first key past it.
func (t *Tree) ScanPrefix(prefix []byte) *Iterator {
	it := t.IterFrom(prefix, false)
	it.prefix = append([]byte(nil), prefix...)
	return it
}

// scan runs on a pooled worker or an ephemeral goroutine. It opens its
// own read transaction, copies each pair out of the cursor, and blocks on
// the entries channel whenever the consumer lags. A closed done channel
// aborts the scan mid-range.
func (t *Tree) scan(from []byte, backwards bool, entries chan<- entry, done <-chan struct{}, errc chan<- error) {
	err := t.engine.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket(t.name).Cursor()

		var k, v []byte
		switch {
		case backwards:
			k, v = cursor.Seek(from)
			switch {
			case k == nil:
				// from is past the last key
				k, v = cursor.Last()
			case !bytes.Equal(k, from):
				k, v = cursor.Prev()
			}
		case len(from) == 0:
			k, v = cursor.First()
		default:
			k, v = cursor.Seek(from)
		}

		for k != nil {
			e := entry{
				key:   append([]byte(nil), k...),
				value: append([]byte(nil), v...),
			}
			select {
			case entries <- e:
			case <-done:
				return nil
			}
			if backwards {
				k, v = cursor.Prev()
			} else {
				k, v = cursor.Next()
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).WithField("tree", string(t.name)).Error("background scan failed")
		errc <- &TransactionError{Op: "scan", Err: err}
	}
	close(entries)
}
