package progress

import (
	"encoding/json"

	"github.com/trezcool/classbook/core"
)

// Level is a student's achievement on an assignment.
type Level string

const (
	LevelVeryGood Level = "VERY_GOOD"
	LevelGood     Level = "GOOD"
	LevelPoor     Level = "POOR"
	LevelNone     Level = "" // never stored: NONE is the absence of a level
)

var Levels = []Level{LevelVeryGood, LevelGood, LevelPoor}

// Valid accepts every stored level plus LevelNone.
func (l Level) Valid() bool {
	if l == LevelNone {
		return true
	}
	for _, level := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Complete reports whether the level counts as done: VERY_GOOD and GOOD do, POOR and NONE don't.
func (l Level) Complete() bool {
	return l == LevelVeryGood || l == LevelGood
}

// Entry is the status and memo of one (date, student, assignment) triple.
type Entry struct {
	Level Level  `json:"level,omitempty"`
	Memo  string `json:"memo,omitempty"`
}

func (e Entry) empty() bool { return e.Level == LevelNone && e.Memo == "" }

type Key struct {
	Date         core.DateKey
	StudentID    string
	AssignmentID string
}

// Table is the sparse status table.
type Table map[Key]Entry

func (t Table) Get(date core.DateKey, studentID, assignmentID string) (Entry, bool) {
	e, ok := t[Key{date, studentID, assignmentID}]
	return e, ok
}

// HasDate reports whether any status or memo was recorded on date.
func (t Table) HasDate(date core.DateKey) bool {
	for k := range t {
		if k.Date == date {
			return true
		}
	}
	return false
}

func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the table as {date: {studentId: {assignmentId: entry}}}.
func (t Table) MarshalJSON() ([]byte, error) {
	nested := make(map[core.DateKey]map[string]map[string]Entry)
	for k, v := range t {
		day, ok := nested[k.Date]
		if !ok {
			day = make(map[string]map[string]Entry)
			nested[k.Date] = day
		}
		st, ok := day[k.StudentID]
		if !ok {
			st = make(map[string]Entry)
			day[k.StudentID] = st
		}
		st[k.AssignmentID] = v
	}
	return json.Marshal(nested)
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var nested map[core.DateKey]map[string]map[string]Entry
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	tbl := make(Table)
	for date, day := range nested {
		for sid, st := range day {
			for aid, e := range st {
				if !e.empty() {
					tbl[Key{date, sid, aid}] = e
				}
			}
		}
	}
	*t = tbl
	return nil
}
