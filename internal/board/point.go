package board

// Axis bounds for the board. Charts render this fixed window and random
// placement draws from it; points themselves may lie outside.
const (
	AxisMin = 0.0
	AxisMax = 10.0
)

// Point is a labeled position on the board. A Point is immutable once
// constructed; the grouping functions only read it.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Group is an ordered run of points considered vertically adjacent and
// displayed together.
type Group []Point

// Grouping is the full ordered partition of the board into groups,
// top group first.
type Grouping []Group

// Span returns the vertical extent of the group: max(y) - min(y).
// Empty and single-point groups have span 0.
func (g Group) Span() float64 {
	if len(g) == 0 {
		return 0
	}
	minY, maxY := g[0].Y, g[0].Y
	for _, p := range g[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxY - minY
}

// Flatten concatenates the groups in order into a single point sequence.
func (gr Grouping) Flatten() []Point {
	n := 0
	for _, g := range gr {
		n += len(g)
	}
	out := make([]Point, 0, n)
	for _, g := range gr {
		out = append(out, g...)
	}
	return out
}
