package board

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidTolerance reports a grouping tolerance that is negative, NaN,
// or infinite.
var ErrInvalidTolerance = errors.New("tolerance must be a finite non-negative number")

// DefaultTolerance is the vertical grouping tolerance used when no override
// is configured. Matches the board's 0-10 axis scale.
const DefaultTolerance = 1.0

// GroupByTolerance partitions points into vertical bands and orders them for
// display: groups run top to bottom, points within a group left to right.
// Every multi-point group satisfies Span() < tolerance (strict, so a
// tolerance of 0 produces only singleton groups).
//
// The function is pure: it never mutates its input and retains no state
// between calls. Ties in y keep insertion order, so the output is
// deterministic and re-grouping a flattened result reproduces the same
// partition.
//
// The overflow repair is a local single-pass heuristic (see splitOverflow);
// it does not promise a minimum number of groups or minimum spans. Worst
// case, when every point triggers a repair, the cost is O(n²).
func GroupByTolerance(points []Point, tolerance float64) (Grouping, error) {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance < 0 {
		return nil, fmt.Errorf("%w (got %v)", ErrInvalidTolerance, tolerance)
	}
	if len(points) == 0 {
		return Grouping{}, nil
	}

	// Phase 1: walk order is top to bottom. The sort must be stable so
	// equal-y points keep their insertion order.
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	// Phase 2: grow the current group while the *whole* group stays under
	// tolerance. Distance to the previous point alone is not enough; a
	// chain of close neighbours can still drift past the band height.
	var groups Grouping
	current := Group{sorted[0]}
	for _, p := range sorted[1:] {
		if spanWith(current, p) < tolerance {
			current = append(current, p)
			continue
		}
		closed, next := splitOverflow(current, p, tolerance)
		groups = append(groups, closed)
		current = next
	}
	groups = append(groups, current)

	// Phase 3: order each band left to right.
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].X < g[j].X })
	}

	return groups, nil
}

// spanWith returns the group's vertical extent if p were appended.
func spanWith(g Group, p Point) float64 {
	minY, maxY := p.Y, p.Y
	for _, q := range g {
		if q.Y < minY {
			minY = q.Y
		}
		if q.Y > maxY {
			maxY = q.Y
		}
	}
	return maxY - minY
}

// splitOverflow re-partitions a group that the incoming point would push to
// or past tolerance. The incoming point seeds a candidate group; the held
// points are walked top to bottom and each one is assigned to whichever side
// it widens less. Ties, and moves that would themselves break tolerance,
// keep the point with the existing group. The topmost point always stays
// (an empty side has span 0), so the closed group is never empty, and both
// returned groups come out y-sorted.
func splitOverflow(current Group, incoming Point, tolerance float64) (closed, next Group) {
	closed = make(Group, 0, len(current))
	var moved Group
	stayLo, stayHi := math.Inf(1), math.Inf(-1)
	moveLo, moveHi := incoming.Y, incoming.Y

	for _, p := range current {
		staySpan := spanAfter(stayLo, stayHi, p.Y)
		moveSpan := spanAfter(moveLo, moveHi, p.Y)
		if moveSpan < staySpan && moveSpan < tolerance {
			moved = append(moved, p)
			moveLo = math.Min(moveLo, p.Y)
			moveHi = math.Max(moveHi, p.Y)
		} else {
			closed = append(closed, p)
			stayLo = math.Min(stayLo, p.Y)
			stayHi = math.Max(stayHi, p.Y)
		}
	}

	next = append(moved, incoming)
	return closed, next
}

// spanAfter is the extent of the [lo, hi] band after admitting y.
func spanAfter(lo, hi, y float64) float64 {
	return math.Max(hi, y) - math.Min(lo, y)
}
