package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/revision"
	"github.com/trezcool/darasa/core/user"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

type testLogger struct{}

func (testLogger) Enable(bool)                      {}
func (testLogger) Debug(string, ...interface{})     {}
func (testLogger) Info(string, ...interface{})      {}
func (testLogger) Warn(string, ...interface{})      {}
func (testLogger) Error(string, ...interface{})     {}
func (testLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

type testApp struct {
	server  *Server
	db      *dummydb.DB
	student user.User
	courses []course.Course
}

func setup(t *testing.T) *testApp {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	userRepo := dummydb.NewUserRepository(db)
	courseRepo := dummydb.NewCourseRepository(db)

	conf := &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Darasa",
		Revision: core.RevisionConfig{DefaultHorizonDays: 84},
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	revision.InitValidators(validate, translator)

	revisionSvc := revision.NewService(
		nil,
		dummydb.NewScheduleRepository(db),
		dummydb.NewSessionRepository(db),
		courseRepo,
		userRepo,
		dummydb.NewTrackRepository(db),
		nil,
		testLogger{},
		conf,
	)

	server := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      testLogger{},
		CourseSvc:   course.NewService(courseRepo),
		RevisionSvc: revisionSvc,
		Validate:    validate,
		Translator:  translator,
	})

	student := testutil.CreateUser(t, userRepo, "Jane", "jane@test.test", user.RoleStudent, true)
	courses := []course.Course{
		testutil.CreateCourse(t, courseRepo, "Algebra I", "Mathematics", 100),
		testutil.CreateCourse(t, courseRepo, "Mechanics", "Physics", 200),
		testutil.CreateCourse(t, courseRepo, "Organic Chemistry", "Chemistry", 300, "dummy-prereq"),
	}
	for _, crs := range courses {
		testutil.CreatePurchase(t, courseRepo, student.ID, crs.ID)
	}

	return &testApp{server: server, db: db, student: student, courses: courses}
}

// do runs a request against the server; userID is forwarded like the auth
// gateway would, empty means anonymous.
func (app *testApp) do(t *testing.T, method, path, userID string, data interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&body).Encode(data); err != nil {
			t.Fatalf("do() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decoding response %q failed: %v", rec.Body.String(), err)
	}
}
