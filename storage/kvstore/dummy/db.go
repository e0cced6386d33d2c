package dummykv

import (
	"sync"

	"github.com/trezcool/classbook/core"
)

type (
	// DB is an in-memory slot store.
	DB struct {
		sync.RWMutex
		table map[string]string

		// fault injection (tests)
		LoadErr error
		SaveErr error
		saves   int
	}
)

var _ core.KVStore = (*DB)(nil) // interface compliance check

func Open(seed ...map[string]string) (*DB, error) {
	db := &DB{table: make(map[string]string)}
	for _, s := range seed {
		for k, v := range s {
			db.table[k] = v
		}
	}
	return db, nil
}

func (db *DB) Load(key string) (string, bool, error) {
	db.RLock()
	defer db.RUnlock()

	if db.LoadErr != nil {
		return "", false, db.LoadErr
	}
	v, ok := db.table[key]
	return v, ok, nil
}

func (db *DB) Save(key, value string) error {
	db.Lock()
	defer db.Unlock()

	if db.SaveErr != nil {
		return db.SaveErr
	}
	db.table[key] = value
	db.saves++
	return nil
}

// Saves returns the number of successful writes.
func (db *DB) Saves() int {
	db.RLock()
	defer db.RUnlock()
	return db.saves
}

// Dump returns a copy of every stored slot.
func (db *DB) Dump() map[string]string {
	db.RLock()
	defer db.RUnlock()

	out := make(map[string]string, len(db.table))
	for k, v := range db.table {
		out[k] = v
	}
	return out
}

func (db *DB) Close() error {
	return nil
}
