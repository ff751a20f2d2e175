package echoapi

import (
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/learnpath"
)

func Test_learnPathApi_layout(t *testing.T) {
	app := setup(t)

	t.Run("anonymous rejected", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/learning-path/layout", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("missing container dimensions", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/learning-path/layout", app.student.ID, map[string]interface{}{
			"path_type": "linear",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})

	t.Run("unknown path type", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/learning-path/layout", app.student.ID, map[string]interface{}{
			"path_type":        "fractal",
			"container_width":  800,
			"container_height": 600,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})

	t.Run("linear layout", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/learning-path/layout", app.student.ID, map[string]interface{}{
			"path_type":         "linear",
			"spacing":           120,
			"container_width":   800,
			"container_height":  600,
			"progress":          map[string]float64{app.courses[0].ID: 100, app.courses[1].ID: 40},
			"completed_courses": []string{app.courses[0].ID},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var layout learnpath.Layout
		decode(t, rec, &layout)

		if len(layout.Waypoints) != 3 {
			t.Fatalf("got %d waypoints, want 3", len(layout.Waypoints))
		}
		wantStatuses := []learnpath.WaypointStatus{
			learnpath.StatusCompleted,  // completed set
			learnpath.StatusInProgress, // progress 40
			learnpath.StatusLocked,     // unmet prerequisite
		}
		for i, want := range wantStatuses {
			if got := layout.Waypoints[i].Status; got != want {
				t.Errorf("waypoints[%d].Status = %q, want %q", i, got, want)
			}
		}
		for i, wp := range layout.Waypoints {
			if wp.Position.X != 400 {
				t.Errorf("waypoints[%d].Position.X = %v, want 400", i, wp.Position.X)
			}
		}
		if layout.Path == "" {
			t.Error("Path is empty")
		}
		if layout.Viewport.Zoom <= 0 || layout.Viewport.Zoom > 1 {
			t.Errorf("Zoom = %v, want in (0, 1]", layout.Viewport.Zoom)
		}
	})

	t.Run("subject filter", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/v1/learning-path/layout", app.student.ID, map[string]interface{}{
			"subjects":         []string{"Physics"},
			"container_width":  800,
			"container_height": 600,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var layout learnpath.Layout
		decode(t, rec, &layout)
		if len(layout.Waypoints) != 1 {
			t.Fatalf("got %d waypoints, want 1", len(layout.Waypoints))
		}
		if got := layout.Waypoints[0].Course.Subject; got != "Physics" {
			t.Errorf("subject = %q, want Physics", got)
		}
	})
}
