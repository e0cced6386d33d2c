// Package report flattens every store into the ordered rows of the downloadable report.
package report

import (
	"sort"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/attendance"
	"github.com/trezcool/classbook/core/curriculum"
	"github.com/trezcool/classbook/core/progress"
	"github.com/trezcool/classbook/core/snapshot"
)

type Category string

const (
	CategoryAttendance Category = "attendance"
	CategoryAssignment Category = "assignment"
	CategoryCounseling Category = "counseling"
)

// labels
const (
	LabelPresent     = "present"
	LabelAbsent      = "absent"
	LabelVeryGood    = "very good"
	LabelGood        = "good"
	LabelNeedsEffort = "needs effort"
	LabelIncomplete  = "incomplete"
	LabelResolved    = "resolved"
	LabelUnresolved  = "unresolved"

	NoValue          = "-"
	OtherSubject     = "other"
	OtherStudentName = "other (cross-class etc.)"
)

type Row struct {
	Date          core.DateKey `json:"date"`
	Category      Category     `json:"category"`
	StudentNumber string       `json:"studentNumber"`
	StudentName   string       `json:"studentName"`
	Item          string       `json:"item"`
	Status        string       `json:"status"`
	Mood          string       `json:"mood"`
	Memo          string       `json:"memo"`
}

// Strings returns the row cells in header order.
func (r Row) Strings() []string {
	return []string{
		string(r.Date), string(r.Category), r.StudentNumber, r.StudentName,
		r.Item, r.Status, r.Mood, r.Memo,
	}
}

type Options struct {
	IncludeCounseling bool
}

// LevelLabel returns the human label of an achievement level; no level reads "incomplete".
func LevelLabel(l progress.Level) string {
	switch l {
	case progress.LevelVeryGood:
		return LabelVeryGood
	case progress.LevelGood:
		return LabelGood
	case progress.LevelPoor:
		return LabelNeedsEffort
	default:
		return LabelIncomplete
	}
}

func presenceLabel(rec attendance.Record) string {
	if rec.Present {
		return LabelPresent
	}
	return LabelAbsent
}

func resolvedLabel(resolved bool) string {
	if resolved {
		return LabelResolved
	}
	return LabelUnresolved
}

// dates returns the sorted union of attendance dates, due dates and (optionally) counseling dates.
func dates(snap snapshot.Snapshot, opts Options) []core.DateKey {
	set := make(map[core.DateKey]struct{})
	for _, d := range snap.Attendance.Dates() {
		set[d] = struct{}{}
	}
	for _, a := range snap.Assignments {
		set[a.DueDate] = struct{}{}
	}
	if opts.IncludeCounseling {
		for d, records := range snap.Counseling {
			if len(records) > 0 {
				set[d] = struct{}{}
			}
		}
	}

	out := make([]core.DateKey, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type builder struct {
	snap snapshot.Snapshot
	rows []Row
}

func (b *builder) assignmentItem(a curriculum.Assignment) string {
	subject := OtherSubject
	if sub, ok := b.snap.Subject(a.SubjectID); ok {
		subject = sub.Title
	}
	return subject + " - " + a.Title
}

// Build produces the report rows: per date (ascending), per student in roster order,
// the attendance row then one row per assignment due that date, followed by the date's counseling rows.
func Build(snap snapshot.Snapshot, opts Options) []Row {
	b := &builder{snap: snap, rows: make([]Row, 0)}
	for _, date := range dates(snap, opts) {
		due := curriculum.DueOn(snap.Assignments, date)

		for _, st := range snap.Students {
			if rec, ok := snap.Attendance.Get(date, st.ID); ok {
				b.rows = append(b.rows, Row{
					Date:          date,
					Category:      CategoryAttendance,
					StudentNumber: st.Number,
					StudentName:   st.Name,
					Item:          NoValue,
					Status:        presenceLabel(rec),
					Mood:          string(rec.Mood),
					Memo:          rec.Memo,
				})
			}
			for _, a := range due {
				e, _ := snap.Progress.Get(date, st.ID, a.ID)
				b.rows = append(b.rows, Row{
					Date:          date,
					Category:      CategoryAssignment,
					StudentNumber: st.Number,
					StudentName:   st.Name,
					Item:          b.assignmentItem(a),
					Status:        LevelLabel(e.Level),
					Memo:          e.Memo,
				})
			}
		}

		if opts.IncludeCounseling {
			for _, rec := range snap.Counseling.Records(date) {
				number, name := NoValue, OtherStudentName
				if st, ok := snap.Student(rec.StudentID); ok {
					number, name = st.Number, st.Name
				}
				item := rec.Content
				if rec.Recorder != "" {
					item = "[" + rec.Recorder + "] " + rec.Content
				}
				b.rows = append(b.rows, Row{
					Date:          date,
					Category:      CategoryCounseling,
					StudentNumber: number,
					StudentName:   name,
					Item:          item,
					Status:        resolvedLabel(rec.Resolved),
					Memo:          rec.Result,
				})
			}
		}
	}
	return b.rows
}
