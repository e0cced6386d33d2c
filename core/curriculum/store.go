package curriculum

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/classbook/core"
)

var newID = func() string { return uuid.New().String() } // mockable

// Store owns subjects and assignments. Both live under one lock so that
// the subject cascade is seen atomically.
type Store struct {
	mu          sync.RWMutex
	subjects    []Subject
	assignments []Assignment

	slots    *core.Slots
	validate *validator.Validate
}

func NewStore(slots *core.Slots, validate *validator.Validate) *Store {
	s := &Store{slots: slots, validate: validate}

	var subjects []Subject
	if !slots.Load(core.SlotSubjects, &subjects) {
		subjects = seedSubjects()
	}
	var assignments []Assignment
	if !slots.Load(core.SlotAssignments, &assignments) {
		assignments = []Assignment{}
	}
	s.subjects = subjects
	s.assignments = assignments
	return s
}

func (s *Store) subjectIndex(id string) int {
	for i, sub := range s.subjects {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) assignmentIndex(id string) int {
	for i, a := range s.assignments {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Subjects

func (s *Store) AddSubject(ns NewSubject) (Subject, error) {
	if err := ns.Validate(s.validate); err != nil {
		return Subject{}, err
	}

	sub := Subject{ID: newID(), Title: ns.Title}
	s.mu.Lock()
	s.subjects = append(s.subjects, sub)
	s.slots.Save(core.SlotSubjects, s.subjects)
	s.mu.Unlock()

	s.slots.Notify(core.SlotSubjects)
	return sub, nil
}

func (s *Store) UpdateSubject(id string, ns NewSubject) (Subject, error) {
	if err := ns.Validate(s.validate); err != nil {
		return Subject{}, err
	}

	s.mu.Lock()
	i := s.subjectIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return Subject{}, core.ErrNotFound
	}
	s.subjects[i].Title = ns.Title
	sub := s.subjects[i]
	s.slots.Save(core.SlotSubjects, s.subjects)
	s.mu.Unlock()

	s.slots.Notify(core.SlotSubjects)
	return sub, nil
}

// DeleteSubject removes the subject and every assignment referencing it.
// Both collections are updated and written before any listener runs.
// It returns the ids of the cascaded assignments.
func (s *Store) DeleteSubject(id string) ([]string, error) {
	s.mu.Lock()
	i := s.subjectIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, core.ErrNotFound
	}
	s.subjects = append(s.subjects[:i], s.subjects[i+1:]...)

	removed := make([]string, 0)
	kept := make([]Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		if a.SubjectID == id {
			removed = append(removed, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	s.assignments = kept

	s.slots.Save(core.SlotSubjects, s.subjects)
	s.slots.Save(core.SlotAssignments, s.assignments)
	s.mu.Unlock()

	s.slots.Notify(core.SlotSubjects, core.SlotAssignments)
	return removed, nil
}

func (s *Store) Subjects() []Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Subject, len(s.subjects))
	copy(out, s.subjects)
	return out
}

func (s *Store) Subject(id string) (Subject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.subjectIndex(id); i >= 0 {
		return s.subjects[i], true
	}
	return Subject{}, false
}

// Assignments

func (s *Store) AddAssignment(na NewAssignment) (Assignment, error) {
	if err := na.Validate(s.validate); err != nil {
		return Assignment{}, err
	}

	a := Assignment{ID: newID(), SubjectID: na.SubjectID, Title: na.Title, DueDate: core.DateKey(na.DueDate)}
	s.mu.Lock()
	s.assignments = append(s.assignments, a)
	s.slots.Save(core.SlotAssignments, s.assignments)
	s.mu.Unlock()

	s.slots.Notify(core.SlotAssignments)
	return a, nil
}

func (s *Store) UpdateAssignment(id string, na NewAssignment) (Assignment, error) {
	if err := na.Validate(s.validate); err != nil {
		return Assignment{}, err
	}

	s.mu.Lock()
	i := s.assignmentIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return Assignment{}, core.ErrNotFound
	}
	a := Assignment{ID: id, SubjectID: na.SubjectID, Title: na.Title, DueDate: core.DateKey(na.DueDate)}
	s.assignments[i] = a
	s.slots.Save(core.SlotAssignments, s.assignments)
	s.mu.Unlock()

	s.slots.Notify(core.SlotAssignments)
	return a, nil
}

// DeleteAssignment removes the assignment only; status records stay behind, unreachable.
func (s *Store) DeleteAssignment(id string) error {
	s.mu.Lock()
	i := s.assignmentIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return core.ErrNotFound
	}
	s.assignments = append(s.assignments[:i], s.assignments[i+1:]...)
	s.slots.Save(core.SlotAssignments, s.assignments)
	s.mu.Unlock()

	s.slots.Notify(core.SlotAssignments)
	return nil
}

func (s *Store) Assignments() []Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

func (s *Store) Assignment(id string) (Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.assignmentIndex(id); i >= 0 {
		return s.assignments[i], true
	}
	return Assignment{}, false
}

// AssignmentsDue returns the assignments due on date, in creation order.
func (s *Store) AssignmentsDue(date core.DateKey) []Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DueOn(s.assignments, date)
}

// DueOn filters assignments by due date, keeping their order.
func DueOn(assignments []Assignment, date core.DateKey) []Assignment {
	due := make([]Assignment, 0)
	for _, a := range assignments {
		if a.DueDate == date {
			due = append(due, a)
		}
	}
	return due
}
