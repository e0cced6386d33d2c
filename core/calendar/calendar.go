// Package calendar derives the per-day completion dot shown on the calendar.
package calendar

import (
	"time"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/curriculum"
	"github.com/trezcool/classbook/core/snapshot"
)

type Color string

const (
	ColorNone           Color = "none"
	ColorAllComplete    Color = "allComplete"
	ColorSomeIncomplete Color = "someIncomplete"
)

// Mode selects which tracked category a dot summarizes.
type Mode string

const (
	ModeAttendance Mode = "attendance"
	ModeAssignment Mode = "assignment"
	ModeCounseling Mode = "counseling"
)

var Modes = []Mode{ModeAttendance, ModeAssignment, ModeCounseling}

func (m Mode) Valid() bool {
	for _, mode := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Day is the dot of one calendar day.
type Day struct {
	Date  core.DateKey `json:"date"`
	Color Color        `json:"color"`
}

// Dot computes the dot color of date. Completion is always checked against the current roster.
func Dot(date core.DateKey, mode Mode, snap snapshot.Snapshot) (Color, error) {
	switch mode {
	case ModeAttendance:
		return attendanceDot(date, snap), nil
	case ModeAssignment:
		return assignmentDot(date, snap), nil
	case ModeCounseling:
		return counselingDot(date, snap), nil
	default:
		return ColorNone, core.NewArgumentError("invalid calendar mode %q", mode)
	}
}

func attendanceDot(date core.DateKey, snap snapshot.Snapshot) Color {
	if !snap.Attendance.HasDate(date) {
		return ColorNone
	}
	for _, st := range snap.Students {
		// students never marked that day count as absent
		if rec, _ := snap.Attendance.Get(date, st.ID); !rec.Present {
			return ColorSomeIncomplete
		}
	}
	return ColorAllComplete
}

func assignmentDot(date core.DateKey, snap snapshot.Snapshot) Color {
	due := curriculum.DueOn(snap.Assignments, date)
	if len(due) == 0 {
		return ColorNone
	}
	// due work with nothing recorded is failing, not neutral
	if !snap.Progress.HasDate(date) {
		return ColorSomeIncomplete
	}
	for _, st := range snap.Students {
		for _, a := range due {
			if e, _ := snap.Progress.Get(date, st.ID, a.ID); !e.Level.Complete() {
				return ColorSomeIncomplete
			}
		}
	}
	return ColorAllComplete
}

func counselingDot(date core.DateKey, snap snapshot.Snapshot) Color {
	records := snap.Counseling.Records(date)
	if len(records) == 0 {
		return ColorNone
	}
	for _, rec := range records {
		if !rec.Resolved {
			return ColorSomeIncomplete
		}
	}
	return ColorAllComplete
}

// Month returns the dot of every day of the given month, first day first.
func Month(year int, month time.Month, mode Mode, snap snapshot.Snapshot) ([]Day, error) {
	if month < time.January || month > time.December {
		return nil, core.NewArgumentError("invalid month %d", month)
	}
	if !mode.Valid() {
		return nil, core.NewArgumentError("invalid calendar mode %q", mode)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := make([]Day, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		date := core.DateKeyOf(d)
		color, _ := Dot(date, mode, snap)
		days = append(days, Day{Date: date, Color: color})
	}
	return days, nil
}
