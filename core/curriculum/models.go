package curriculum

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classbook/core"
)

type Subject struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Assignment references its Subject by id. The reference is not checked and may dangle.
type Assignment struct {
	ID        string       `json:"id"`
	SubjectID string       `json:"subjectId"`
	Title     string       `json:"title"`
	DueDate   core.DateKey `json:"dueDate"`
}

type NewSubject struct {
	Title string `json:"title" validate:"notblank"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Title = core.CleanString(ns.Title)
	return validate.Struct(ns)
}

// NewAssignment is used both to create and to replace an Assignment.
type NewAssignment struct {
	SubjectID string `json:"subjectId"`
	Title     string `json:"title" validate:"notblank"`
	DueDate   string `json:"dueDate" validate:"datekey"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.DueDate = core.CleanString(na.DueDate)
	return validate.Struct(na)
}

func seedSubjects() []Subject {
	return []Subject{
		{ID: "s1", Title: "국어"},
		{ID: "s2", Title: "수학"},
	}
}
