// Package snapshot holds a read-only copy of every store, the input of the derived views.
package snapshot

import (
	"github.com/trezcool/classbook/core/attendance"
	"github.com/trezcool/classbook/core/counseling"
	"github.com/trezcool/classbook/core/curriculum"
	"github.com/trezcool/classbook/core/progress"
	"github.com/trezcool/classbook/core/roster"
)

type Snapshot struct {
	Students    []roster.Student
	Attendance  attendance.Table
	Subjects    []curriculum.Subject
	Assignments []curriculum.Assignment
	Progress    progress.Table
	Counseling  counseling.Book
}

// Student looks a student up by id.
func (s Snapshot) Student(id string) (roster.Student, bool) {
	for _, st := range s.Students {
		if st.ID == id {
			return st, true
		}
	}
	return roster.Student{}, false
}

// Subject looks a subject up by id.
func (s Snapshot) Subject(id string) (curriculum.Subject, bool) {
	for _, sub := range s.Subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return curriculum.Subject{}, false
}
