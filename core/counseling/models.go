package counseling

import "github.com/trezcool/classbook/core"

const (
	// StudentOther marks a counselee outside the roster (e.g. a child from another class).
	StudentOther = "other"
	// StudentUnset marks a record whose counselee was not chosen yet.
	StudentUnset = ""
)

type Record struct {
	ID        string `json:"id"`
	Recorder  string `json:"recorder"`
	StudentID string `json:"studentId"`
	Content   string `json:"content"`
	Result    string `json:"result"`
	Resolved  bool   `json:"resolved"`
}

// Field names a single patchable Record field.
type Field string

const (
	FieldRecorder  Field = "recorder"
	FieldStudentID Field = "studentId"
	FieldContent   Field = "content"
	FieldResult    Field = "result"
	FieldResolved  Field = "resolved"
)

func (f Field) Valid() bool {
	switch f {
	case FieldRecorder, FieldStudentID, FieldContent, FieldResult, FieldResolved:
		return true
	default:
		return false
	}
}

// Book holds every date's records, newest first.
type Book map[core.DateKey][]Record

func (b Book) Records(date core.DateKey) []Record {
	recs := b[date]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

func (b Book) Clone() Book {
	out := make(Book, len(b))
	for date := range b {
		out[date] = b.Records(date)
	}
	return out
}
