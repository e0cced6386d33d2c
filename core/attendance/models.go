package attendance

import (
	"encoding/json"

	"github.com/trezcool/classbook/core"
)

// Mood is one of a fixed set of eight values.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodTired   Mood = "tired"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodSick    Mood = "sick"

	DefaultMood = MoodNeutral
)

var Moods = []Mood{MoodHappy, MoodExcited, MoodCalm, MoodNeutral, MoodTired, MoodSad, MoodAngry, MoodSick}

// Valid returns true when the mood is one of Moods.
func (m Mood) Valid() bool {
	for _, mood := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

type Record struct {
	Present bool   `json:"present"`
	Mood    Mood   `json:"mood"`
	Memo    string `json:"memo"`
}

// DefaultRecord is what a missing (date, student) pair means.
func DefaultRecord() Record {
	return Record{Present: false, Mood: DefaultMood}
}

type Key struct {
	Date      core.DateKey
	StudentID string
}

// Table is the sparse attendance table; only touched (date, student) pairs are materialized.
type Table map[Key]Record

// Get returns the record for (date, studentID), or the default record when absent.
func (t Table) Get(date core.DateKey, studentID string) (Record, bool) {
	rec, ok := t[Key{date, studentID}]
	if !ok {
		return DefaultRecord(), false
	}
	return rec, true
}

// HasDate reports whether any record exists for date.
func (t Table) HasDate(date core.DateKey) bool {
	for k := range t {
		if k.Date == date {
			return true
		}
	}
	return false
}

// Dates returns every date holding at least one record (unordered).
func (t Table) Dates() []core.DateKey {
	seen := make(map[core.DateKey]struct{})
	dates := make([]core.DateKey, 0)
	for k := range t {
		if _, ok := seen[k.Date]; !ok {
			seen[k.Date] = struct{}{}
			dates = append(dates, k.Date)
		}
	}
	return dates
}

func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the table as {date: {studentId: record}}.
func (t Table) MarshalJSON() ([]byte, error) {
	nested := make(map[core.DateKey]map[string]Record)
	for k, v := range t {
		day, ok := nested[k.Date]
		if !ok {
			day = make(map[string]Record)
			nested[k.Date] = day
		}
		day[k.StudentID] = v
	}
	return json.Marshal(nested)
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var nested map[core.DateKey]map[string]Record
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	tbl := make(Table)
	for date, day := range nested {
		for sid, rec := range day {
			tbl[Key{date, sid}] = rec
		}
	}
	*t = tbl
	return nil
}
