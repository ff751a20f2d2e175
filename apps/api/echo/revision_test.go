package echoapi

import (
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/revision"
)

func validSetup() map[string]interface{} {
	return map[string]interface{}{
		"name":              "Exam prep",
		"weekly_hours":      5,
		"selected_days":     []string{"monday", "wednesday"},
		"selected_subjects": []string{"Mathematics", "Physics", "Chemistry"},
		"start_date":        "2026-01-05",
		"end_date":          "2026-01-07",
		"study_technique":   "60_10_rule",
	}
}

func Test_revisionApi_create(t *testing.T) {
	app := setup(t)

	t.Run("anonymous rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/revision/schedules", "", validSetup())
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		data := validSetup()
		data["weekly_hours"] = 0
		data["selected_days"] = []string{"monday", "funday"}
		rec := app.do(t, http.MethodPost, "/v1/revision/schedules", app.student.ID, data)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}

		var fldErrs map[string]string
		decode(t, rec, &fldErrs)
		if _, ok := fldErrs["weekly_hours"]; !ok {
			t.Errorf("missing weekly_hours field error: %v", fldErrs)
		}
		if _, ok := fldErrs["selected_days"]; !ok {
			t.Errorf("missing selected_days field error: %v", fldErrs)
		}
	})

	t.Run("creates schedule with sessions", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/revision/schedules", app.student.ID, validSetup())
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var resp ScheduleResponse
		decode(t, rec, &resp)
		if resp.Schedule.Status != revision.ScheduleActive {
			t.Errorf("Status = %q, want %q", resp.Schedule.Status, revision.ScheduleActive)
		}
		if len(resp.Sessions) != 12 {
			t.Errorf("got %d sessions, want 12", len(resp.Sessions))
		}
	})

	t.Run("second active schedule rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/revision/schedules", app.student.ID, validSetup())
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})
}

func Test_revisionApi_activeAndReset(t *testing.T) {
	app := setup(t)

	t.Run("no active schedule", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/v1/revision/schedules/active", app.student.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	rec := app.do(t, http.MethodPost, "/v1/revision/schedules", app.student.ID, validSetup())
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created ScheduleResponse
	decode(t, rec, &created)

	t.Run("active schedule", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/v1/revision/schedules/active", app.student.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var sched revision.Schedule
		decode(t, rec, &sched)
		if sched.ID != created.Schedule.ID {
			t.Errorf("ID = %q, want %q", sched.ID, created.Schedule.ID)
		}
	})

	t.Run("reset", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, "/v1/revision/schedules/active", app.student.ID, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		rec = app.do(t, http.MethodGet, "/v1/revision/schedules/active", app.student.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code after reset = %d, want %d", rec.Code, http.StatusNotFound)
		}

		// resetting with nothing active stays a no-op
		rec = app.do(t, http.MethodDelete, "/v1/revision/schedules/active", app.student.ID, nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})
}

func Test_revisionApi_sessions(t *testing.T) {
	app := setup(t)

	t.Run("no active schedule", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/v1/revision/sessions", app.student.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	rec := app.do(t, http.MethodPost, "/v1/revision/schedules", app.student.ID, validSetup())
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	t.Run("all sessions", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/v1/revision/sessions", app.student.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var sessions []revision.Session
		decode(t, rec, &sessions)
		if len(sessions) != 12 {
			t.Errorf("got %d sessions, want 12", len(sessions))
		}
	})

	t.Run("date range", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/v1/revision/sessions?from=2026-01-07&to=2026-01-07", app.student.ID, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var sessions []revision.Session
		decode(t, rec, &sessions)
		if len(sessions) != 6 {
			t.Errorf("got %d sessions, want 6", len(sessions))
		}
	})

	t.Run("bad date", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/v1/revision/sessions?from=lol", app.student.ID, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func Test_revisionApi_complete(t *testing.T) {
	app := setup(t)

	rec := app.do(t, http.MethodPost, "/v1/revision/schedules", app.student.ID, validSetup())
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created ScheduleResponse
	decode(t, rec, &created)

	t.Run("marks session done", func(t *testing.T) {
		target := created.Sessions[0]
		rec := app.do(t, http.MethodPatch, "/v1/revision/sessions/"+target.ID, app.student.ID,
			map[string]interface{}{"notes": "nailed it"},
		)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var sess revision.Session
		decode(t, rec, &sess)
		if sess.Status != revision.SessionCompleted {
			t.Errorf("Status = %q, want %q", sess.Status, revision.SessionCompleted)
		}
		if sess.CompletionNotes.String != "nailed it" {
			t.Errorf("CompletionNotes = %q, want %q", sess.CompletionNotes.String, "nailed it")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := app.do(t, http.MethodPatch, "/v1/revision/sessions/nope", app.student.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d: %s", rec.Code, http.StatusNotFound, rec.Body.String())
		}
	})
}
