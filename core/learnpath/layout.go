package learnpath

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core/course"
)

// Path types
const (
	PathSpiral  = "spiral"
	PathZigzag  = "zigzag"
	PathLinear  = "linear"
	PathOrganic = "organic"
)

const (
	zigzagAmplitudeRatio = 0.8
	zigzagFrequency      = 0.5

	organicAmplitudeRatio = 0.8
	organicLiftRatio      = 0.2

	// control point offset of the connecting curve, in layout units
	pathControlOffset = 20.0

	defaultViewportPadding = 100.0
)

type (
	// PathConfig selects the geometric family used to lay out waypoints.
	PathConfig struct {
		PathType  string  `json:"path_type" validate:"omitempty,oneof=spiral zigzag linear organic"`
		Spacing   float64 `json:"spacing" validate:"omitempty,gt=0"`
		Curvature float64 `json:"curvature"`
	}

	// WaypointPosition is a computed 2D position; never persisted.
	WaypointPosition struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Angle float64 `json:"angle"` // degrees
	}

	Viewport struct {
		CenterX float64 `json:"center_x"`
		CenterY float64 `json:"center_y"`
		Zoom    float64 `json:"zoom"`
		Width   float64 `json:"width"`
		Height  float64 `json:"height"`
	}
)

func DefaultPathConfig() PathConfig {
	return PathConfig{PathType: PathOrganic, Spacing: 120, Curvature: 0.5}
}

func (cfg PathConfig) withDefaults() PathConfig {
	def := DefaultPathConfig()
	if cfg.PathType == "" {
		cfg.PathType = def.PathType
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = def.Spacing
	}
	if cfg.Curvature == 0 {
		cfg.Curvature = def.Curvature
	}
	return cfg
}

// sortByPathPosition returns a copy of courses ordered by PathPosition
// ascending. The stable sort preserves catalog order between equals.
func sortByPathPosition(courses []course.Course) []course.Course {
	sorted := make([]course.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PathPosition < sorted[j].PathPosition })
	return sorted
}

// GenerateWaypointPositions computes one position per course along the
// configured curve family, centered on the container. Courses are re-sorted
// by PathPosition internally; position i corresponds to the i-th course in
// that order regardless of input order. Pure and deterministic.
func GenerateWaypointPositions(courses []course.Course, cfg PathConfig, containerWidth, containerHeight float64) []WaypointPosition {
	cfg = cfg.withDefaults()
	courses = sortByPathPosition(courses)
	count := len(courses)
	if count == 0 {
		return []WaypointPosition{}
	}

	centerX := containerWidth / 2
	centerY := containerHeight / 2

	switch cfg.PathType {
	case PathSpiral:
		return spiralPositions(count, centerX, centerY, cfg.Spacing, cfg.Curvature)
	case PathZigzag:
		return zigzagPositions(count, centerX, centerY, cfg.Spacing)
	case PathLinear:
		return linearPositions(count, centerX, centerY, cfg.Spacing)
	default:
		return organicPositions(count, centerX, centerY, cfg.Spacing)
	}
}

// spiralPositions places waypoints on an Archimedean-like spiral whose
// radius grows with sqrt(i+1), guaranteeing monotonically increasing radius.
// The facing angle is the tangent: position angle + 90 degrees.
func spiralPositions(count int, centerX, centerY, spacing, curvature float64) []WaypointPosition {
	positions := make([]WaypointPosition, 0, count)
	for i := 0; i < count; i++ {
		theta := float64(i) * curvature * math.Pi
		radius := 0.5 * spacing * math.Sqrt(float64(i+1))
		positions = append(positions, WaypointPosition{
			X:     centerX + radius*math.Cos(theta),
			Y:     centerY + radius*math.Sin(theta),
			Angle: normalizeAngle(theta*180/math.Pi + 90),
		})
	}
	return positions
}

// zigzagPositions progresses vertically with a sinusoidal horizontal offset.
func zigzagPositions(count int, centerX, centerY, spacing float64) []WaypointPosition {
	positions := make([]WaypointPosition, 0, count)
	halfSpan := float64(count-1) * spacing / 2
	amplitude := zigzagAmplitudeRatio * spacing
	for i := 0; i < count; i++ {
		positions = append(positions, WaypointPosition{
			X: centerX + amplitude*math.Sin(float64(i)*zigzagFrequency*math.Pi),
			Y: centerY - halfSpan + float64(i)*spacing,
		})
	}
	return positions
}

// linearPositions is a straight vertical column centered on centerY.
func linearPositions(count int, centerX, centerY, spacing float64) []WaypointPosition {
	positions := make([]WaypointPosition, 0, count)
	halfSpan := float64(count-1) * spacing / 2
	for i := 0; i < count; i++ {
		positions = append(positions, WaypointPosition{
			X: centerX,
			Y: centerY - halfSpan + float64(i)*spacing,
		})
	}
	return positions
}

// organicPositions superimposes a slow sine perturbation on the vertical
// progression; the number of full cycles grows with the course count. The
// facing angle follows the local derivative of the perturbed curve, with 0
// pointing straight down the path.
func organicPositions(count int, centerX, centerY, spacing float64) []WaypointPosition {
	positions := make([]WaypointPosition, 0, count)
	halfSpan := float64(count-1) * spacing / 2
	amplitude := organicAmplitudeRatio * spacing
	lift := organicLiftRatio * spacing

	curves := float64(count/4 + 1)
	denom := float64(count - 1)
	if denom < 1 {
		denom = 1
	}
	dWave := curves * 2 * math.Pi / denom

	for i := 0; i < count; i++ {
		wave := float64(i) / denom * curves * 2 * math.Pi
		dx := amplitude * math.Cos(wave) * dWave
		dy := spacing - lift*math.Sin(wave)*dWave
		positions = append(positions, WaypointPosition{
			X:     centerX + amplitude*math.Sin(wave),
			Y:     centerY - halfSpan + float64(i)*spacing + lift*math.Cos(wave),
			Angle: normalizeAngle(math.Atan2(dy, dx)*180/math.Pi - 90),
		})
	}
	return positions
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// GeneratePathLines renders the connecting path as an SVG path string.
// Consecutive waypoints are joined by quadratic curves whose control point
// is offset perpendicular to the segment, producing a gentle S-curve;
// degenerate zero-length segments fall back to a straight line.
func GeneratePathLines(positions []WaypointPosition) string {
	if len(positions) < 2 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %.1f %.1f", positions[0].X, positions[0].Y)

	for i := 1; i < len(positions); i++ {
		prev, curr := positions[i-1], positions[i]
		dx := curr.X - prev.X
		dy := curr.Y - prev.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			fmt.Fprintf(&b, " L %.1f %.1f", curr.X, curr.Y)
			continue
		}

		// control point: segment midpoint pushed out along the 90° CCW normal
		midX := (prev.X + curr.X) / 2
		midY := (prev.Y + curr.Y) / 2
		ctrlX := midX + (-dy/dist)*pathControlOffset
		ctrlY := midY + (dx/dist)*pathControlOffset
		fmt.Fprintf(&b, " Q %.1f %.1f %.1f %.1f", ctrlX, ctrlY, curr.X, curr.Y)
	}
	return b.String()
}

// CalculateViewport fits all positions into the container: the bounding box
// is expanded by padding on each side and zoomed out as needed, never in
// (zoom caps at 1).
func CalculateViewport(positions []WaypointPosition, containerWidth, containerHeight float64, padding ...float64) Viewport {
	pad := defaultViewportPadding
	if len(padding) > 0 {
		pad = padding[0]
	}

	if len(positions) == 0 {
		return Viewport{
			CenterX: containerWidth / 2,
			CenterY: containerHeight / 2,
			Zoom:    1,
			Width:   containerWidth,
			Height:  containerHeight,
		}
	}

	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, pos := range positions[1:] {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}
	minX -= pad
	maxX += pad
	minY -= pad
	maxY += pad

	boxWidth := maxX - minX
	boxHeight := maxY - minY
	zoom := 1.0
	if boxWidth > 0 {
		zoom = math.Min(zoom, containerWidth/boxWidth)
	}
	if boxHeight > 0 {
		zoom = math.Min(zoom, containerHeight/boxHeight)
	}

	return Viewport{
		CenterX: (minX + maxX) / 2,
		CenterY: (minY + maxY) / 2,
		Zoom:    zoom,
		Width:   boxWidth,
		Height:  boxHeight,
	}
}
