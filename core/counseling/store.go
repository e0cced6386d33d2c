package counseling

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/classbook/core"
)

var newID = func() string { return uuid.New().String() } // mockable

type Store struct {
	mu   sync.RWMutex
	book Book

	slots *core.Slots
}

func NewStore(slots *core.Slots) *Store {
	s := &Store{slots: slots}
	book := make(Book)
	if !slots.Load(core.SlotCounseling, &book) {
		book = make(Book)
	}
	s.book = book
	return s
}

func (s *Store) commit() {
	s.slots.Save(core.SlotCounseling, s.book)
}

func (s *Store) indexOf(date core.DateKey, id string) int {
	for i, r := range s.book[date] {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// AddRecord prepends an empty, unresolved record to date's list.
func (s *Store) AddRecord(date core.DateKey) Record {
	rec := Record{ID: newID()}

	s.mu.Lock()
	s.book[date] = append([]Record{rec}, s.book[date]...)
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotCounseling)
	return rec
}

// UpdateField patches one field. `resolved` takes strconv.ParseBool values.
func (s *Store) UpdateField(date core.DateKey, id string, field Field, value string) (Record, error) {
	if !field.Valid() {
		return Record{}, core.NewArgumentError("unknown counseling field %q", field)
	}
	var resolved bool
	if field == FieldResolved {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Record{}, core.NewValidationError(err, core.FieldError{Field: string(FieldResolved), Error: "must be true or false"})
		}
		resolved = b
	}

	s.mu.Lock()
	i := s.indexOf(date, id)
	if i < 0 {
		s.mu.Unlock()
		return Record{}, core.ErrNotFound
	}
	rec := &s.book[date][i]
	switch field {
	case FieldRecorder:
		rec.Recorder = value
	case FieldStudentID:
		rec.StudentID = value
	case FieldContent:
		rec.Content = value
	case FieldResult:
		rec.Result = value
	case FieldResolved:
		rec.Resolved = resolved
	}
	out := *rec
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotCounseling)
	return out, nil
}

func (s *Store) DeleteRecord(date core.DateKey, id string) error {
	s.mu.Lock()
	i := s.indexOf(date, id)
	if i < 0 {
		s.mu.Unlock()
		return core.ErrNotFound
	}
	recs := s.book[date]
	recs = append(recs[:i], recs[i+1:]...)
	if len(recs) == 0 {
		delete(s.book, date)
	} else {
		s.book[date] = recs
	}
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotCounseling)
	return nil
}

// Find looks a record up by id across every date.
func (s *Store) Find(id string) (core.DateKey, Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for date, recs := range s.book {
		for _, r := range recs {
			if r.ID == id {
				return date, r, true
			}
		}
	}
	return "", Record{}, false
}

// Records returns date's records, newest first.
func (s *Store) Records(date core.DateKey) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Records(date)
}

func (s *Store) Snapshot() Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Clone()
}
