package learnpath

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/trezcool/darasa/core/course"
)

func courses(n int) []course.Course {
	crs := make([]course.Course, 0, n)
	for i := 0; i < n; i++ {
		crs = append(crs, course.Course{
			ID:           string(rune('a' + i)),
			PathPosition: float64((i + 1) * 100),
		})
	}
	return crs
}

func TestGenerateWaypointPositions(t *testing.T) {
	t.Run("no courses", func(t *testing.T) {
		got := GenerateWaypointPositions(nil, DefaultPathConfig(), 800, 600)
		if len(got) != 0 {
			t.Errorf("GenerateWaypointPositions() = %v, want empty", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		crs := courses(7)
		first := GenerateWaypointPositions(crs, DefaultPathConfig(), 800, 600)
		second := GenerateWaypointPositions(crs, DefaultPathConfig(), 800, 600)
		if !reflect.DeepEqual(first, second) {
			t.Error("GenerateWaypointPositions() not deterministic")
		}
	})

	t.Run("linear column", func(t *testing.T) {
		cfg := PathConfig{PathType: PathLinear, Spacing: 120}
		got := GenerateWaypointPositions(courses(3), cfg, 800, 600)

		wantY := []float64{180, 300, 420}
		for i, pos := range got {
			if pos.X != 400 {
				t.Errorf("position[%d].X = %v, want 400", i, pos.X)
			}
			if pos.Y != wantY[i] {
				t.Errorf("position[%d].Y = %v, want %v", i, pos.Y, wantY[i])
			}
		}
	})

	t.Run("spiral radius grows", func(t *testing.T) {
		cfg := PathConfig{PathType: PathSpiral, Spacing: 100, Curvature: 0.5}
		got := GenerateWaypointPositions(courses(8), cfg, 1000, 1000)

		prev := 0.0
		for i, pos := range got {
			radius := math.Hypot(pos.X-500, pos.Y-500)
			if radius <= prev {
				t.Errorf("position[%d] radius = %v, want > %v", i, radius, prev)
			}
			prev = radius
		}
	})

	t.Run("zigzag oscillates within amplitude", func(t *testing.T) {
		cfg := PathConfig{PathType: PathZigzag, Spacing: 100}
		got := GenerateWaypointPositions(courses(9), cfg, 800, 600)

		amplitude := zigzagAmplitudeRatio * cfg.Spacing
		for i, pos := range got {
			if off := math.Abs(pos.X - 400); off > amplitude+1e-9 {
				t.Errorf("position[%d] X offset = %v, want <= %v", i, off, amplitude)
			}
			if i > 0 && pos.Y <= got[i-1].Y {
				t.Errorf("position[%d].Y = %v, want > %v", i, pos.Y, got[i-1].Y)
			}
		}
	})

	t.Run("input order ignored", func(t *testing.T) {
		sorted := courses(5)
		shuffled := []course.Course{sorted[3], sorted[0], sorted[4], sorted[2], sorted[1]}
		got := GenerateWaypointPositions(shuffled, DefaultPathConfig(), 800, 600)
		want := GenerateWaypointPositions(sorted, DefaultPathConfig(), 800, 600)
		if !reflect.DeepEqual(got, want) {
			t.Error("positions depend on input order")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		got := GenerateWaypointPositions(courses(4), PathConfig{}, 800, 600)
		want := GenerateWaypointPositions(courses(4), DefaultPathConfig(), 800, 600)
		if !reflect.DeepEqual(got, want) {
			t.Error("zero config does not match defaults")
		}
	})
}

func TestGeneratePathLines(t *testing.T) {
	tests := []struct {
		name      string
		positions []WaypointPosition
		want      string
	}{
		{name: "empty"},
		{name: "single point", positions: []WaypointPosition{{X: 1, Y: 2}}},
		{
			name:      "horizontal segment",
			positions: []WaypointPosition{{X: 0, Y: 0}, {X: 100, Y: 0}},
			want:      "M 0.0 0.0 Q 50.0 20.0 100.0 0.0",
		},
		{
			name:      "degenerate segment falls back to line",
			positions: []WaypointPosition{{X: 10, Y: 10}, {X: 10, Y: 10}},
			want:      "M 10.0 10.0 L 10.0 10.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeneratePathLines(tt.positions); got != tt.want {
				t.Errorf("GeneratePathLines() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("one curve per segment", func(t *testing.T) {
		positions := GenerateWaypointPositions(courses(5), DefaultPathConfig(), 800, 600)
		path := GeneratePathLines(positions)
		if !strings.HasPrefix(path, "M ") {
			t.Errorf("GeneratePathLines() = %q, want M prefix", path)
		}
		if n := strings.Count(path, " Q ") + strings.Count(path, " L "); n != len(positions)-1 {
			t.Errorf("GeneratePathLines() has %d segments, want %d", n, len(positions)-1)
		}
	})
}

func TestCalculateViewport(t *testing.T) {
	t.Run("no positions", func(t *testing.T) {
		got := CalculateViewport(nil, 800, 600)
		want := Viewport{CenterX: 400, CenterY: 300, Zoom: 1, Width: 800, Height: 600}
		if got != want {
			t.Errorf("CalculateViewport() = %+v, want %+v", got, want)
		}
	})

	t.Run("fits bounding box", func(t *testing.T) {
		positions := []WaypointPosition{{X: -200, Y: 0}, {X: 1500, Y: 900}}
		got := CalculateViewport(positions, 800, 600)

		if got.Zoom > 1 {
			t.Errorf("Zoom = %v, want <= 1", got.Zoom)
		}
		if w := got.Width * got.Zoom; w > 800+1e-9 {
			t.Errorf("scaled width = %v, want <= 800", w)
		}
		if h := got.Height * got.Zoom; h > 600+1e-9 {
			t.Errorf("scaled height = %v, want <= 600", h)
		}
		if got.CenterX != 650 || got.CenterY != 450 {
			t.Errorf("center = (%v, %v), want (650, 450)", got.CenterX, got.CenterY)
		}
	})

	t.Run("never zooms in", func(t *testing.T) {
		positions := []WaypointPosition{{X: 390, Y: 290}, {X: 410, Y: 310}}
		if got := CalculateViewport(positions, 800, 600); got.Zoom != 1 {
			t.Errorf("Zoom = %v, want 1", got.Zoom)
		}
	})

	t.Run("custom padding", func(t *testing.T) {
		positions := []WaypointPosition{{X: 0, Y: 0}, {X: 100, Y: 100}}
		got := CalculateViewport(positions, 800, 600, 50)
		if got.Width != 200 || got.Height != 200 {
			t.Errorf("box = %vx%v, want 200x200", got.Width, got.Height)
		}
	})
}
