package learnpath

import (
	"github.com/trezcool/darasa/core/course"
)

// WaypointStatus is derived on every evaluation, never stored.
type WaypointStatus string

const (
	StatusLocked     WaypointStatus = "locked"
	StatusAvailable  WaypointStatus = "available"
	StatusInProgress WaypointStatus = "in_progress"
	StatusCompleted  WaypointStatus = "completed"
)

// firstTierThreshold unconditionally unlocks courses at the start of a path.
// Product rule carried over as-is from the original path design.
const firstTierThreshold = 100

// Waypoint is the render model for one course on the learning path.
type Waypoint struct {
	ID         string           `json:"id"`
	Course     course.Course    `json:"course"`
	Position   WaypointPosition `json:"position"`
	Status     WaypointStatus   `json:"status"`
	IsUnlocked bool             `json:"is_unlocked"`
	Progress   float64          `json:"progress"` // 0..100
}

// Layout bundles everything a path screen needs for one render.
type Layout struct {
	Waypoints []Waypoint `json:"waypoints"`
	Path      string     `json:"path"`
	Viewport  Viewport   `json:"viewport"`
}

// IsWaypointUnlocked applies the unlock rules with AND semantics, failing on
// the first unmet condition:
//   - first-tier courses (PathPosition <= 100) are always unlocked;
//   - all prerequisites must be completed;
//   - the mean of all recorded progress must reach UnlockMinProgress, if set;
//   - all UnlockRequiredCourses must be completed, if set.
func IsWaypointUnlocked(crs course.Course, completed map[string]bool, progress map[string]float64) bool {
	if crs.PathPosition <= firstTierThreshold {
		return true
	}

	for _, prereq := range crs.Prerequisites {
		if !completed[prereq] {
			return false
		}
	}

	req := crs.UnlockRequirements()
	if req.MinProgress != nil && meanProgress(progress) < *req.MinProgress {
		return false
	}
	for _, id := range req.RequiredCourses {
		if !completed[id] {
			return false
		}
	}
	return true
}

func meanProgress(progress map[string]float64) float64 {
	if len(progress) == 0 {
		return 0
	}
	var sum float64
	for _, pct := range progress {
		sum += pct
	}
	return sum / float64(len(progress))
}

// CalculateWaypointStatus derives a course's status from the progress map
// and completed set. A course with unmet unlock conditions is locked no
// matter its recorded progress; only completion overrides the lock.
func CalculateWaypointStatus(crs course.Course, progress map[string]float64, completed map[string]bool) WaypointStatus {
	switch {
	case completed[crs.ID] || progress[crs.ID] >= 100:
		return StatusCompleted
	case !IsWaypointUnlocked(crs, completed, progress):
		return StatusLocked
	case progress[crs.ID] > 0:
		return StatusInProgress
	default:
		return StatusAvailable
	}
}

// NextAvailableCourse returns the first course in path order the user can
// act on: available or already in progress.
func NextAvailableCourse(courses []course.Course, progress map[string]float64, completed map[string]bool) (course.Course, bool) {
	for _, crs := range sortByPathPosition(courses) {
		switch CalculateWaypointStatus(crs, progress, completed) {
		case StatusAvailable, StatusInProgress:
			return crs, true
		}
	}
	return course.Course{}, false
}

// PathCompletion returns the percentage of courses in the completed set.
func PathCompletion(courses []course.Course, completed map[string]bool) float64 {
	if len(courses) == 0 {
		return 0
	}
	var done int
	for _, crs := range courses {
		if completed[crs.ID] {
			done++
		}
	}
	return float64(done) / float64(len(courses)) * 100
}

// BuildLayout assembles waypoints, the connecting path and a fitting
// viewport for one path screen render. Pure; safe to call on every render.
func BuildLayout(
	courses []course.Course,
	cfg PathConfig,
	containerWidth, containerHeight float64,
	progress map[string]float64,
	completed map[string]bool,
) Layout {
	sorted := sortByPathPosition(courses)
	positions := GenerateWaypointPositions(sorted, cfg, containerWidth, containerHeight)

	waypoints := make([]Waypoint, 0, len(sorted))
	for i, crs := range sorted {
		pct := progress[crs.ID]
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		waypoints = append(waypoints, Waypoint{
			ID:         crs.ID,
			Course:     crs,
			Position:   positions[i],
			Status:     CalculateWaypointStatus(crs, progress, completed),
			IsUnlocked: IsWaypointUnlocked(crs, completed, progress),
			Progress:   pct,
		})
	}

	return Layout{
		Waypoints: waypoints,
		Path:      GeneratePathLines(positions),
		Viewport:  CalculateViewport(positions, containerWidth, containerHeight),
	}
}
