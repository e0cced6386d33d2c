package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classbook/core"
	badgerkv "github.com/trezcool/classbook/storage/kvstore/badger"
	dummykv "github.com/trezcool/classbook/storage/kvstore/dummy"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		want    interface{}
		wantErr bool
	}{
		{name: "memory", engine: core.StorageMemory, want: &dummykv.DB{}},
		{name: "badger", engine: core.StorageBadger, want: &badgerkv.DB{}},
		{name: "unknown", engine: "sqlite", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{Storage: core.StorageConfig{Engine: tt.engine, Path: filepath.Join(t.TempDir(), "db")}}
			store, err := Open(conf, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)

			require.NoError(t, store.Save("k", "v"))
			v, ok, err := store.Load("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", v)
		})
	}
}

func TestOpen_retriesLockedDatabase(t *testing.T) {
	orig, origAttempts := openBadger, maxAttempts
	t.Cleanup(func() { openBadger, maxAttempts = orig, origAttempts })
	maxAttempts = 3

	var calls int
	openBadger = func(cfg badgerkv.Config) (*badgerkv.DB, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("cannot acquire directory lock")
		}
		return orig(badgerkv.Config{InMemory: true})
	}
	store, err := Open(&core.Config{Storage: core.StorageConfig{Engine: core.StorageBadger, Path: "unused"}}, nil)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, 3, calls)

	calls = -10
	_, err = Open(&core.Config{Storage: core.StorageConfig{Engine: core.StorageBadger, Path: "unused"}}, nil)
	assert.EqualError(t, err, "database open timeout: cannot acquire directory lock")
	assert.Equal(t, -7, calls)
}
