// Package kvstore opens the slot store selected by the configuration.
package kvstore

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	badgerkv "github.com/trezcool/classbook/storage/kvstore/badger"
	dummykv "github.com/trezcool/classbook/storage/kvstore/dummy"
)

// Store is a slot store owning resources.
type Store interface {
	core.KVStore
	Close() error
}

var (
	_ Store = (*badgerkv.DB)(nil)
	_ Store = (*dummykv.DB)(nil)

	maxAttempts = 5
	openBadger  = badgerkv.Open // mockable
)

// Open returns the store of conf.Storage.Engine. dbLogger receives the engine's own logs.
func Open(conf *core.Config, dbLogger core.Logger) (Store, error) {
	switch conf.Storage.Engine {
	case core.StorageMemory:
		return dummykv.Open()
	case core.StorageBadger:
		return openWithRetry(badgerkv.Config{Path: conf.Storage.Path, SyncWrites: true, Logger: dbLogger})
	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.Storage.Engine)
	}
}

// openWithRetry waits for the database directory lock, held while another instance shuts down.
// Waits 100ms longer between each attempt.
func openWithRetry(cfg badgerkv.Config) (Store, error) {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		var db *badgerkv.DB
		if db, err = openBadger(cfg); err == nil {
			return db, nil
		}
		if attempts < maxAttempts {
			time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
		}
	}
	return nil, errors.Wrap(err, "database open timeout")
}
