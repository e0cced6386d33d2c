// Package classroom wires the five stores over one persistence hub and exposes the cross-store operations.
package classroom

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/attendance"
	"github.com/trezcool/classbook/core/calendar"
	"github.com/trezcool/classbook/core/counseling"
	"github.com/trezcool/classbook/core/curriculum"
	"github.com/trezcool/classbook/core/progress"
	"github.com/trezcool/classbook/core/report"
	"github.com/trezcool/classbook/core/roster"
	"github.com/trezcool/classbook/core/snapshot"
)

type (
	Deps struct {
		KV        core.KVStore
		Logger    core.Logger
		Validator *validator.Validate // optional
		KeyPrefix string
		Export    core.ExportConfig
	}

	Classroom struct {
		Roster     *roster.Store
		Attendance *attendance.Store
		Curriculum *curriculum.Store
		Progress   *progress.Store
		Counseling *counseling.Store

		slots  *core.Slots
		logger core.Logger
		export core.ExportConfig

		mu        sync.Mutex
		pending   map[string]pendingDeletion
		committed map[string]struct{}
		tokens    []string // issue order of the tokens in pending or committed
	}
)

// New loads every store from d.KV; a missing, unreadable or corrupt slot falls back to its seed data.
func New(d Deps) *Classroom {
	validate := d.Validator
	if validate == nil {
		validate = core.NewValidator(core.NewTranslator())
	}
	slots := core.NewSlots(d.KV, d.Logger, d.KeyPrefix)

	return &Classroom{
		Roster:     roster.NewStore(slots, validate),
		Attendance: attendance.NewStore(slots),
		Curriculum: curriculum.NewStore(slots, validate),
		Progress:   progress.NewStore(slots),
		Counseling: counseling.NewStore(slots),
		slots:      slots,
		logger:     d.Logger,
		export:     d.Export,
		pending:    make(map[string]pendingDeletion),
		committed:  make(map[string]struct{}),
	}
}

// Subscribe registers fn to run after every change, once the change has been written through.
func (c *Classroom) Subscribe(fn core.ChangeFunc) {
	c.slots.Subscribe(fn)
}

func (c *Classroom) Snapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Students:    c.Roster.List(),
		Attendance:  c.Attendance.Snapshot(),
		Subjects:    c.Curriculum.Subjects(),
		Assignments: c.Curriculum.Assignments(),
		Progress:    c.Progress.Snapshot(),
		Counseling:  c.Counseling.Snapshot(),
	}
}

func (c *Classroom) Dot(date core.DateKey, mode calendar.Mode) (calendar.Color, error) {
	return calendar.Dot(date, mode, c.Snapshot())
}

func (c *Classroom) Month(year int, month time.Month, mode calendar.Mode) ([]calendar.Day, error) {
	return calendar.Month(year, month, mode, c.Snapshot())
}

func (c *Classroom) Report() []report.Row {
	return report.Build(c.Snapshot(), report.Options{IncludeCounseling: c.export.IncludeCounseling})
}

func (c *Classroom) studentIDs() []string {
	students := c.Roster.List()
	ids := make([]string, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	return ids
}

// MarkAllPresent marks every current student present on date.
func (c *Classroom) MarkAllPresent(date core.DateKey) {
	c.Attendance.MarkAllPresent(date, c.studentIDs())
}

func (c *Classroom) assignment(id string) (curriculum.Assignment, error) {
	a, ok := c.Curriculum.Assignment(id)
	if !ok {
		return curriculum.Assignment{}, core.ErrNotFound
	}
	return a, nil
}

// SetAssignmentStatus records the level of a student's work, keyed by the assignment's due date.
func (c *Classroom) SetAssignmentStatus(studentID, assignmentID string, level progress.Level) (progress.Entry, error) {
	a, err := c.assignment(assignmentID)
	if err != nil {
		return progress.Entry{}, err
	}
	return c.Progress.SetStatus(a.DueDate, studentID, assignmentID, level)
}

// SetAssignmentMemo records a memo on a student's work, keyed by the assignment's due date.
func (c *Classroom) SetAssignmentMemo(studentID, assignmentID, text string) (progress.Entry, error) {
	a, err := c.assignment(assignmentID)
	if err != nil {
		return progress.Entry{}, err
	}
	return c.Progress.SetTaskMemo(a.DueDate, studentID, assignmentID, text), nil
}

// BulkSetDone overwrites every current student's level on the assignment with VERY_GOOD.
func (c *Classroom) BulkSetDone(assignmentID string) error {
	a, err := c.assignment(assignmentID)
	if err != nil {
		return err
	}
	c.Progress.BulkSetDone(a.DueDate, assignmentID, c.studentIDs())
	return nil
}

// DownloadReport renders the current report and hands it to dl. It returns the download filename.
func (c *Classroom) DownloadReport(dl core.Downloader, format report.Format) (string, error) {
	content, err := report.Encode(c.Report(), format)
	if err != nil {
		return "", err
	}
	filename := report.Filename(c.export.FilePrefix, core.Today(), format.Ext())
	if err := dl.TriggerDownload(filename, format.MimeType(), content); err != nil {
		return "", errors.Wrapf(err, "downloading %s", filename)
	}
	c.logger.Info("report downloaded", map[string]interface{}{"filename": filename, "bytes": len(content)})
	return filename, nil
}
