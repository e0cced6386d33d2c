package progress

import (
	"sync"

	"github.com/trezcool/classbook/core"
)

type Store struct {
	mu    sync.RWMutex
	table Table

	slots *core.Slots
}

func NewStore(slots *core.Slots) *Store {
	s := &Store{slots: slots}
	tbl := make(Table)
	if !slots.Load(core.SlotProgress, &tbl) {
		tbl = make(Table)
	}
	s.table = tbl
	return s
}

func (s *Store) update(key Key, fn func(*Entry)) Entry {
	s.mu.Lock()
	e := s.table[key]
	fn(&e)
	if e.empty() {
		delete(s.table, key)
	} else {
		s.table[key] = e
	}
	s.slots.Save(core.SlotProgress, s.table)
	s.mu.Unlock()

	s.slots.Notify(core.SlotProgress)
	return e
}

// SetStatus overwrites the level; LevelNone clears it. No history is kept.
func (s *Store) SetStatus(date core.DateKey, studentID, assignmentID string, level Level) (Entry, error) {
	if !level.Valid() {
		return Entry{}, core.NewArgumentError("invalid achievement level %q", level)
	}
	return s.update(Key{date, studentID, assignmentID}, func(e *Entry) {
		e.Level = level
	}), nil
}

// SetTaskMemo sets the free-text memo independently of the level.
func (s *Store) SetTaskMemo(date core.DateKey, studentID, assignmentID, text string) Entry {
	return s.update(Key{date, studentID, assignmentID}, func(e *Entry) {
		e.Memo = text
	})
}

// BulkSetDone sets VERY_GOOD for every given student, overwriting whatever was there.
func (s *Store) BulkSetDone(date core.DateKey, assignmentID string, studentIDs []string) {
	s.mu.Lock()
	for _, sid := range studentIDs {
		key := Key{date, sid, assignmentID}
		e := s.table[key]
		e.Level = LevelVeryGood
		s.table[key] = e
	}
	s.slots.Save(core.SlotProgress, s.table)
	s.mu.Unlock()

	s.slots.Notify(core.SlotProgress)
}

func (s *Store) Get(date core.DateKey, studentID, assignmentID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Get(date, studentID, assignmentID)
}

func (s *Store) Snapshot() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}
