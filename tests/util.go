package testutil

import (
	"log"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classbook/core"
	logsvc "github.com/trezcool/classbook/services/logger"
	dummykv "github.com/trezcool/classbook/storage/kvstore/dummy"
)

var (
	valOnce    sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

// NewLogger returns a disabled Rollbar logger printing through t.Log.
func NewLogger(t *testing.T) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(testWriter{t}, "TEST : ", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)
	return logger
}

// Validator returns the shared validator with custom validations registered.
func Validator() (*validator.Validate, ut.Translator) {
	valOnce.Do(func() {
		translator = core.NewTranslator()
		validate = core.NewValidator(translator)
	})
	return validate, translator
}

// OpenKV opens an in-memory slot store pre-filled with seed (raw slot key -> JSON).
func OpenKV(t *testing.T, seed ...map[string]string) *dummykv.DB {
	db, err := dummykv.Open(seed...)
	if err != nil {
		t.Fatalf("OpenKV() failed: %v", err)
	}
	return db
}

// NewSlots returns a persistence hub backed by kv (a fresh in-memory store when nil), without key prefix.
func NewSlots(t *testing.T, kv core.KVStore) *core.Slots {
	if kv == nil {
		kv = OpenKV(t)
	}
	return core.NewSlots(kv, NewLogger(t), "")
}
