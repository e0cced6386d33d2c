package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/classbook/apps/api/echo"
	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/classroom"
	"github.com/trezcool/classbook/core/curriculum"
	"github.com/trezcool/classbook/core/report"
	"github.com/trezcool/classbook/tests"
)

const day = "2024-03-04"

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func setup(t *testing.T) (*Server, *classroom.Classroom) {
	validate, translator := testutil.Validator()
	logger := testutil.NewLogger(t)
	class := classroom.New(classroom.Deps{
		KV:        testutil.OpenKV(t),
		Logger:    logger,
		Validator: validate,
		Export:    core.ExportConfig{FilePrefix: "classbook_report_", IncludeCounseling: true},
	})
	app := NewServer(ServerDeps{
		Conf:           &core.Config{AppName: "Classbook", TestMode: true},
		Logger:         logger,
		Classroom:      class,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return app, class
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func do(app *Server, method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func TestServer_home(t *testing.T) {
	app, _ := setup(t)
	rec := do(app, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Classbook!", rec.Body.String())
}

func TestServer_students(t *testing.T) {
	app, class := setup(t)

	tests := []httpTest{
		{
			name:     "blank name",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"num": "4", "name": " "}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name": "this field cannot be blank"}`),
		},
		{
			name:     "non numeric number",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"num": "4b", "name": "Choi"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"num": "student number must contain digits only"}`),
		},
		{
			name:     "suggested number",
			method:   http.MethodGet,
			path:     "/v1/students/next-number",
			wantCode: http.StatusOK,
			wantData: []byte(`{"num": "04"}`),
		},
		{
			name:     "continuous add number",
			method:   http.MethodGet,
			path:     "/v1/students/next-number?after=09",
			wantCode: http.StatusOK,
			wantData: []byte(`{"num": "10"}`),
		},
		{
			name:     "memo of unknown student",
			method:   http.MethodPut,
			path:     "/v1/students/nobody/memo",
			body:     []byte(`{"memo": "x"}`),
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "memo",
			method:   http.MethodPut,
			path:     "/v1/students/2/memo",
			body:     []byte(`{"memo": "quiet"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"id": "2", "num": "02", "name": "이학생", "memo": "quiet"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, do(app, tt.method, tt.path, tt.body))
		})
	}

	rec := do(app, http.MethodPost, "/v1/students", []byte(`{"num": "0", "name": "Choi"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4, class.Roster.Len())
	assert.Equal(t, "Choi", class.Roster.List()[0].Name, "sorted by number")
}

func TestServer_attendance(t *testing.T) {
	app, class := setup(t)

	tests := []httpTest{
		{
			name:     "bad date",
			method:   http.MethodPost,
			path:     "/v1/attendance/2024-3-4/1/toggle",
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: `invalid date "2024-3-4": expected YYYY-MM-DD`}),
		},
		{
			name:     "toggle unseen student",
			method:   http.MethodPost,
			path:     "/v1/attendance/" + day + "/1/toggle",
			wantCode: http.StatusOK,
			wantData: []byte(`{"present": true, "mood": "neutral", "memo": ""}`),
		},
		{
			name:     "invalid mood",
			method:   http.MethodPut,
			path:     "/v1/attendance/" + day + "/1/mood",
			body:     []byte(`{"mood": "bored"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: `invalid mood "bored"`}),
		},
		{
			name:     "mood",
			method:   http.MethodPut,
			path:     "/v1/attendance/" + day + "/1/mood",
			body:     []byte(`{"mood": "happy"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"present": true, "mood": "happy", "memo": ""}`),
		},
		{
			name:     "memo",
			method:   http.MethodPut,
			path:     "/v1/attendance/" + day + "/2/memo",
			body:     []byte(`{"memo": "late"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"present": false, "mood": "neutral", "memo": "late"}`),
		},
		{
			name:     "dot before mark-all",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=attendance",
			wantCode: http.StatusOK,
			wantData: []byte(`{"date": "2024-03-04", "mode": "attendance", "color": "someIncomplete"}`),
		},
		{
			name:     "mark all",
			method:   http.MethodPost,
			path:     "/v1/attendance/" + day + "/mark-all",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "dot after mark-all",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=attendance",
			wantCode: http.StatusOK,
			wantData: []byte(`{"date": "2024-03-04", "mode": "attendance", "color": "allComplete"}`),
		},
		{
			name:     "unknown calendar mode",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=grades",
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, do(app, tt.method, tt.path, tt.body))
		})
	}

	rec, _ := class.Attendance.Get(day, "2")
	assert.True(t, rec.Present)
	assert.Equal(t, "late", rec.Memo)

	res := do(app, http.MethodGet, "/v1/calendar?year=2024&month=3&mode=attendance")
	require.Equal(t, http.StatusOK, res.Code)
	var days []struct {
		Date  string `json:"date"`
		Color string `json:"color"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &days))
	require.Len(t, days, 31)
	assert.Equal(t, "allComplete", days[3].Color)
	assert.Equal(t, "none", days[4].Color)

	res = do(app, http.MethodGet, "/v1/calendar?year=2024&month=13&mode=attendance")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestServer_assignments(t *testing.T) {
	app, class := setup(t)

	rec := do(app, http.MethodPost, "/v1/assignments", []byte(`{"subjectId": "s2", "title": "", "dueDate": "2024-03-04"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(app, http.MethodPost, "/v1/assignments", []byte(`{"subjectId": "s2", "title": "drill", "dueDate": "04/03/2024"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(app, http.MethodPost, "/v1/assignments", []byte(`{"subjectId": "s2", "title": "drill", "dueDate": "2024-03-04"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var a curriculum.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))

	tests := []httpTest{
		{
			name:     "due filter",
			method:   http.MethodGet,
			path:     "/v1/assignments?due=2024-03-05",
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
		{
			name:     "dot without status",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=assignment",
			wantCode: http.StatusOK,
			wantData: []byte(`{"date": "2024-03-04", "mode": "assignment", "color": "someIncomplete"}`),
		},
		{
			name:     "poor",
			method:   http.MethodPut,
			path:     "/v1/assignments/" + a.ID + "/status/1",
			body:     []byte(`{"level": "POOR"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"level": "POOR"}`),
		},
		{
			name:     "invalid level",
			method:   http.MethodPut,
			path:     "/v1/assignments/" + a.ID + "/status/1",
			body:     []byte(`{"level": "PERFECT"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "memo",
			method:   http.MethodPut,
			path:     "/v1/assignments/" + a.ID + "/memo/1",
			body:     []byte(`{"memo": "retry"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"level": "POOR", "memo": "retry"}`),
		},
		{
			name:     "unknown assignment",
			method:   http.MethodPost,
			path:     "/v1/assignments/nope/done",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "bulk done",
			method:   http.MethodPost,
			path:     "/v1/assignments/" + a.ID + "/done",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "status list",
			method:   http.MethodGet,
			path:     "/v1/assignments/" + a.ID + "/status",
			wantCode: http.StatusOK,
			wantData: []byte(`[
				{"studentId": "1", "level": "VERY_GOOD", "memo": "retry"},
				{"studentId": "2", "level": "VERY_GOOD", "memo": ""},
				{"studentId": "3", "level": "VERY_GOOD", "memo": ""}
			]`),
		},
		{
			name:     "dot after bulk done",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=assignment",
			wantCode: http.StatusOK,
			wantData: []byte(`{"date": "2024-03-04", "mode": "assignment", "color": "allComplete"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, do(app, tt.method, tt.path, tt.body))
		})
	}

	e, ok := class.Progress.Get(day, "1", a.ID)
	require.True(t, ok)
	assert.Equal(t, "retry", e.Memo)
}

func TestServer_counseling(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodPost, "/v1/counseling/"+day)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/v1/counseling/" + day + "/" + created.ID

	tests := []httpTest{
		{
			name:     "open record dot",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=counseling",
			wantCode: http.StatusOK,
			wantData: []byte(`{"date": "2024-03-04", "mode": "counseling", "color": "someIncomplete"}`),
		},
		{
			name:     "unknown field",
			method:   http.MethodPatch,
			path:     path,
			body:     []byte(`{"field": "mood", "value": "sad"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad bool",
			method:   http.MethodPatch,
			path:     path,
			body:     []byte(`{"field": "resolved", "value": "maybe"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"resolved": "must be true or false"}`),
		},
		{
			name:     "unknown record",
			method:   http.MethodPatch,
			path:     "/v1/counseling/" + day + "/nope",
			body:     []byte(`{"field": "result", "value": "x"}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "resolve",
			method:   http.MethodPatch,
			path:     path,
			body:     []byte(`{"field": "resolved", "value": "true"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "resolved dot",
			method:   http.MethodGet,
			path:     "/v1/calendar/" + day + "?mode=counseling",
			wantCode: http.StatusOK,
			wantData: []byte(`{"date": "2024-03-04", "mode": "counseling", "color": "allComplete"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, do(app, tt.method, tt.path, tt.body))
		})
	}
}

func TestServer_deletions(t *testing.T) {
	app, class := setup(t)

	rec := do(app, http.MethodPost, "/v1/deletions", []byte(`{"kind": "subject", "id": "s1"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var conf classroom.Confirmation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conf))
	assert.Equal(t, "Delete subject 국어 and its 0 assignment(s)?", conf.Prompt)
	_, ok := class.Curriculum.Subject("s1")
	assert.True(t, ok, "not deleted before commit")

	tests := []httpTest{
		{name: "commit", method: http.MethodPost, path: "/v1/deletions/" + conf.Token, wantCode: http.StatusNoContent},
		{name: "commit again", method: http.MethodPost, path: "/v1/deletions/" + conf.Token, wantCode: http.StatusNoContent},
		{name: "unknown token", method: http.MethodPost, path: "/v1/deletions/nope", wantCode: http.StatusNotFound},
		{
			name:     "unknown kind",
			method:   http.MethodPost,
			path:     "/v1/deletions",
			body:     []byte(`{"kind": "school", "id": "1"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: `invalid deletion kind "school"`}),
		},
		{
			name:     "already gone",
			method:   http.MethodPost,
			path:     "/v1/deletions",
			body:     []byte(`{"kind": "subject", "id": "s1"}`),
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, do(app, tt.method, tt.path, tt.body))
		})
	}

	_, ok = class.Curriculum.Subject("s1")
	assert.False(t, ok)
}

func TestServer_reportDownload(t *testing.T) {
	app, class := setup(t)
	class.Attendance.TogglePresence(day, "1")

	rec := do(app, http.MethodGet, "/v1/report.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.MimeCSV, rec.Header().Get("Content-Type"))
	assert.Equal(t,
		`attachment; filename="classbook_report_`+string(core.Today())+`.csv"`,
		rec.Header().Get("Content-Disposition"),
	)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFFdate,category,studentNumber,studentName,item,status,mood,memo\n"))
	assert.Contains(t, body, `"2024-03-04","attendance","01","김학생","-","present","neutral",""`)

	rec = do(app, http.MethodGet, "/v1/report.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.MimeXLSX, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = do(app, http.MethodGet, "/v1/report")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []report.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, report.LabelPresent, rows[0].Status)
}

func TestServer_versions(t *testing.T) {
	app, _ := setup(t)

	do(app, http.MethodPost, "/v1/attendance/"+day+"/1/toggle")
	do(app, http.MethodPost, "/v1/attendance/"+day+"/2/toggle")
	do(app, http.MethodPost, "/v1/subjects", []byte(`{"title": "과학"}`))

	tt := httpTest{
		method:   http.MethodGet,
		path:     "/v1/versions",
		wantCode: http.StatusOK,
		wantData: []byte(`{
			"roster": 0, "attendance": 2, "subjects": 1,
			"assignments": 0, "assignment-status": 0, "counseling": 0
		}`),
	}
	checkCodeAndData(t, tt, do(app, tt.method, tt.path))
}
