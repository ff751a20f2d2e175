package learnpath

import (
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
)

func TestIsWaypointUnlocked(t *testing.T) {
	tests := []struct {
		name      string
		crs       course.Course
		completed map[string]bool
		progress  map[string]float64
		want      bool
	}{
		{
			name: "first tier always unlocked",
			crs:  course.Course{ID: "a", PathPosition: 100, Prerequisites: []string{"z"}},
			want: true,
		},
		{
			name: "unmet prerequisite",
			crs:  course.Course{ID: "b", PathPosition: 200, Prerequisites: []string{"a"}},
			want: false,
		},
		{
			name:      "met prerequisites",
			crs:       course.Course{ID: "c", PathPosition: 200, Prerequisites: []string{"a", "b"}},
			completed: map[string]bool{"a": true, "b": true},
			want:      true,
		},
		{
			name:     "min progress unmet",
			crs:      course.Course{ID: "d", PathPosition: 200, UnlockMinProgress: null.Float64From(50)},
			progress: map[string]float64{"a": 20, "b": 40},
			want:     false,
		},
		{
			name:     "min progress met",
			crs:      course.Course{ID: "e", PathPosition: 200, UnlockMinProgress: null.Float64From(50)},
			progress: map[string]float64{"a": 60, "b": 40},
			want:     true,
		},
		{
			name: "required course missing",
			crs: course.Course{
				ID: "f", PathPosition: 200,
				UnlockRequiredCourses: []string{"a", "b"},
			},
			completed: map[string]bool{"a": true},
			want:      false,
		},
		{
			name: "all conditions met",
			crs: course.Course{
				ID: "g", PathPosition: 200,
				Prerequisites:         []string{"a"},
				UnlockMinProgress:     null.Float64From(30),
				UnlockRequiredCourses: []string{"b"},
			},
			completed: map[string]bool{"a": true, "b": true},
			progress:  map[string]float64{"a": 100, "b": 100, "g": 0},
			want:      true,
		},
		{
			name: "no progress recorded fails min progress",
			crs:  course.Course{ID: "h", PathPosition: 200, UnlockMinProgress: null.Float64From(10)},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWaypointUnlocked(tt.crs, tt.completed, tt.progress); got != tt.want {
				t.Errorf("IsWaypointUnlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateWaypointStatus(t *testing.T) {
	locked := course.Course{ID: "x", PathPosition: 500, Prerequisites: []string{"missing"}}
	open := course.Course{ID: "y", PathPosition: 50}

	tests := []struct {
		name      string
		crs       course.Course
		progress  map[string]float64
		completed map[string]bool
		want      WaypointStatus
	}{
		{name: "in completed set", crs: open, completed: map[string]bool{"y": true}, want: StatusCompleted},
		{name: "progress at 100", crs: open, progress: map[string]float64{"y": 100}, want: StatusCompleted},
		{name: "partial progress", crs: open, progress: map[string]float64{"y": 30}, want: StatusInProgress},
		{name: "locked despite own progress", crs: locked, progress: map[string]float64{"x": 30}, want: StatusLocked},
		{name: "locked despite progress elsewhere", crs: locked, progress: map[string]float64{"y": 30}, want: StatusLocked},
		{name: "unlocked untouched", crs: open, want: StatusAvailable},
		{name: "locked", crs: locked, want: StatusLocked},
		{name: "completion overrides lock", crs: locked, completed: map[string]bool{"x": true}, want: StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateWaypointStatus(tt.crs, tt.progress, tt.completed); got != tt.want {
				t.Errorf("CalculateWaypointStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextAvailableCourse(t *testing.T) {
	done := course.Course{ID: "a", PathPosition: 100}
	current := course.Course{ID: "b", PathPosition: 200}
	blocked := course.Course{ID: "c", PathPosition: 300, Prerequisites: []string{"b"}}
	completed := map[string]bool{"a": true}
	progress := map[string]float64{"a": 100, "b": 40}

	// out of order on purpose
	got, ok := NextAvailableCourse([]course.Course{blocked, done, current}, progress, completed)
	if !ok || got.ID != "b" {
		t.Errorf("NextAvailableCourse() = (%v, %v), want (b, true)", got.ID, ok)
	}

	_, ok = NextAvailableCourse([]course.Course{{ID: "z", PathPosition: 999, Prerequisites: []string{"nope"}}}, nil, nil)
	if ok {
		t.Error("NextAvailableCourse() found a course, want none")
	}
}

func TestPathCompletion(t *testing.T) {
	crs := courses(4)
	if got := PathCompletion(crs, map[string]bool{"a": true, "b": true}); got != 50 {
		t.Errorf("PathCompletion() = %v, want 50", got)
	}
	if got := PathCompletion(nil, nil); got != 0 {
		t.Errorf("PathCompletion() = %v, want 0", got)
	}
}

func TestBuildLayout(t *testing.T) {
	crs := []course.Course{
		{ID: "b", PathPosition: 200, Prerequisites: []string{"a"}},
		{ID: "a", PathPosition: 100},
	}
	progress := map[string]float64{"a": 130, "b": -5}

	layout := BuildLayout(crs, DefaultPathConfig(), 800, 600, progress, nil)

	if len(layout.Waypoints) != 2 {
		t.Fatalf("got %d waypoints, want 2", len(layout.Waypoints))
	}
	if layout.Waypoints[0].ID != "a" {
		t.Errorf("waypoints[0].ID = %q, want a (path order)", layout.Waypoints[0].ID)
	}
	if got := layout.Waypoints[0].Progress; got != 100 {
		t.Errorf("progress clamped = %v, want 100", got)
	}
	if got := layout.Waypoints[1].Progress; got != 0 {
		t.Errorf("progress clamped = %v, want 0", got)
	}
	if layout.Path == "" {
		t.Error("Path is empty")
	}
	if layout.Viewport.Zoom <= 0 || layout.Viewport.Zoom > 1 {
		t.Errorf("Zoom = %v, want in (0, 1]", layout.Viewport.Zoom)
	}
}
