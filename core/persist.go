package core

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// Slot names one persisted store snapshot.
type Slot string

const (
	SlotRoster      Slot = "roster"
	SlotAttendance  Slot = "attendance"
	SlotSubjects    Slot = "subjects"
	SlotAssignments Slot = "assignments"
	SlotProgress    Slot = "assignment-status"
	SlotCounseling  Slot = "counseling"
)

var AllSlots = []Slot{SlotRoster, SlotAttendance, SlotSubjects, SlotAssignments, SlotProgress, SlotCounseling}

type (
	// KVStore is a string-keyed slot store. Every Save overwrites the whole value.
	KVStore interface {
		// Load returns ok=false when nothing was saved under key.
		Load(key string) (value string, ok bool, err error)
		Save(key, value string) error
	}

	// Downloader hands generated content over to the host environment.
	Downloader interface {
		TriggerDownload(filename, mimeType string, content []byte) error
	}

	// ChangeFunc is called after a slot has been updated in memory and written through.
	ChangeFunc func(slot Slot)
)

// Slots (de)serializes store snapshots into a KVStore and fans out change notifications.
// Storage failures never reach the stores: they are logged and the in-memory snapshot stays authoritative.
type Slots struct {
	kv        KVStore
	logger    Logger
	keyPrefix string

	mu        sync.RWMutex
	listeners []ChangeFunc
}

func NewSlots(kv KVStore, logger Logger, keyPrefix string) *Slots {
	return &Slots{kv: kv, logger: logger, keyPrefix: keyPrefix}
}

func (s *Slots) key(slot Slot) string {
	return s.keyPrefix + string(slot)
}

// Load decodes the slot into v. It returns false when the slot is missing, unreadable or corrupt;
// the caller is then expected to fall back to its seed data.
func (s *Slots) Load(slot Slot, v interface{}) bool {
	raw, ok, err := s.kv.Load(s.key(slot))
	if err != nil {
		s.logger.Error("loading slot failed; using seed data", errors.Wrapf(err, "loading %s", slot), slot)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("corrupt slot; using seed data", errors.Wrapf(err, "decoding %s", slot), slot)
		return false
	}
	return true
}

// Save writes the whole snapshot v under slot.
func (s *Slots) Save(slot Slot, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encoding slot failed", errors.Wrapf(err, "encoding %s", slot), slot)
		return
	}
	if err := s.kv.Save(s.key(slot), string(data)); err != nil {
		// not retried, not surfaced
		s.logger.Error("saving slot failed", errors.Wrapf(err, "saving %s", slot), slot)
	}
}

// Subscribe registers fn to be called on every change. Listeners must not mutate stores.
func (s *Slots) Subscribe(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Notify fires the change listeners for the given slots, in order.
func (s *Slots) Notify(slots ...Slot) {
	s.mu.RLock()
	listeners := make([]ChangeFunc, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, slot := range slots {
		for _, fn := range listeners {
			fn(slot)
		}
	}
}
