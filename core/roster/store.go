package roster

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/classbook/core"
)

var newID = func() string { return uuid.New().String() } // mockable

// Store owns the class roster, always kept sorted by numeric student number.
type Store struct {
	mu       sync.RWMutex
	students []Student

	slots    *core.Slots
	validate *validator.Validate
}

// NewStore loads the roster slot, falling back to the seed roster.
func NewStore(slots *core.Slots, validate *validator.Validate) *Store {
	s := &Store{slots: slots, validate: validate}
	var students []Student
	if !slots.Load(core.SlotRoster, &students) {
		students = seed()
	}
	s.students = students
	sortStudents(s.students)
	return s
}

// sortStudents sorts ascending by numeric number; ties and non-numeric numbers keep insertion order.
func sortStudents(students []Student) {
	sort.SliceStable(students, func(i, j int) bool {
		ni, iok := students[i].NumericNumber()
		nj, jok := students[j].NumericNumber()
		switch {
		case iok && jok:
			return ni < nj
		case iok:
			return true
		default:
			return false
		}
	})
}

// commit persists the roster; s.mu must be held.
func (s *Store) commit() {
	s.slots.Save(core.SlotRoster, s.students)
}

func (s *Store) indexOf(id string) int {
	for i, st := range s.students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Add(ns NewStudent) (Student, error) {
	if err := ns.Validate(s.validate); err != nil {
		return Student{}, err
	}

	st := Student{ID: newID(), Number: ns.Number, Name: ns.Name, Memo: ns.Memo}
	s.mu.Lock()
	s.students = append(s.students, st)
	sortStudents(s.students)
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotRoster)
	return st, nil
}

func (s *Store) Update(id string, us UpdateStudent) (Student, error) {
	if err := us.Validate(s.validate); err != nil {
		return Student{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Student{}, core.ErrNotFound
	}
	st := Student{ID: id, Number: us.Number, Name: us.Name, Memo: us.Memo}
	s.students[i] = st
	sortStudents(s.students)
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotRoster)
	return st, nil
}

// UpdateMemo changes the memo only; the order is left untouched.
func (s *Store) UpdateMemo(id, memo string) (Student, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return Student{}, core.ErrNotFound
	}
	s.students[i].Memo = memo
	st := s.students[i]
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotRoster)
	return st, nil
}

// Delete removes the student unconditionally. Per-day records referencing it are kept.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return core.ErrNotFound
	}
	s.students = append(s.students[:i], s.students[i+1:]...)
	s.commit()
	s.mu.Unlock()

	s.slots.Notify(core.SlotRoster)
	return nil
}

// List returns a copy of the roster in display order.
func (s *Store) List() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Student, len(s.students))
	copy(out, s.students)
	return out
}

func (s *Store) Get(id string) (Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.students[i], true
	}
	return Student{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}

// SuggestNumber returns the number to pre-fill in a fresh add form: max numeric number + 1, two digits wide.
// It is empty when the max number has no successor.
func (s *Store) SuggestNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := 0
	for _, st := range s.students {
		if n, ok := st.NumericNumber(); ok && n > max {
			max = n
		}
	}
	if max == math.MaxInt {
		return ""
	}
	return fmt.Sprintf("%02d", max+1)
}
