package attendance

import (
	"sync"

	"github.com/trezcool/classbook/core"
)

type Store struct {
	mu    sync.RWMutex
	table Table

	slots *core.Slots
}

// NewStore loads the attendance slot; the seed is an empty table.
func NewStore(slots *core.Slots) *Store {
	s := &Store{slots: slots}
	tbl := make(Table)
	if !slots.Load(core.SlotAttendance, &tbl) {
		tbl = make(Table)
	}
	s.table = tbl
	return s
}

// update applies fn to the (date, studentID) record, creating it from the default first.
func (s *Store) update(date core.DateKey, studentID string, fn func(*Record)) Record {
	s.mu.Lock()
	rec, _ := s.table.Get(date, studentID)
	fn(&rec)
	s.table[Key{date, studentID}] = rec
	s.slots.Save(core.SlotAttendance, s.table)
	s.mu.Unlock()

	s.slots.Notify(core.SlotAttendance)
	return rec
}

// TogglePresence flips `present`. The first toggle of an unseen pair yields present=true.
func (s *Store) TogglePresence(date core.DateKey, studentID string) Record {
	return s.update(date, studentID, func(rec *Record) {
		rec.Present = !rec.Present
	})
}

func (s *Store) SetMood(date core.DateKey, studentID string, mood Mood) (Record, error) {
	if !mood.Valid() {
		return Record{}, core.NewArgumentError("invalid mood %q", mood)
	}
	return s.update(date, studentID, func(rec *Record) {
		rec.Mood = mood
	}), nil
}

func (s *Store) SetMemo(date core.DateKey, studentID, text string) Record {
	return s.update(date, studentID, func(rec *Record) {
		rec.Memo = text
	})
}

// MarkAllPresent sets present=true on date for every given student, keeping existing mood & memo.
func (s *Store) MarkAllPresent(date core.DateKey, studentIDs []string) {
	s.mu.Lock()
	for _, sid := range studentIDs {
		rec, _ := s.table.Get(date, sid)
		rec.Present = true
		s.table[Key{date, sid}] = rec
	}
	s.slots.Save(core.SlotAttendance, s.table)
	s.mu.Unlock()

	s.slots.Notify(core.SlotAttendance)
}

func (s *Store) Get(date core.DateKey, studentID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Get(date, studentID)
}

// Day returns the materialized records of date keyed by student id.
func (s *Store) Day(date core.DateKey) map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := make(map[string]Record)
	for k, v := range s.table {
		if k.Date == date {
			day[k.StudentID] = v
		}
	}
	return day
}

// Snapshot returns a copy of the whole table.
func (s *Store) Snapshot() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}
