package board

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PointLog persists board mutations. Appends happen in call order and
// RemoveLastPoint undoes the most recent surviving append. A nil log keeps
// the board purely in memory.
type PointLog interface {
	AppendPoint(p Point) error
	RemoveLastPoint() error
	ListPoints() ([]Point, error)
}

// Board owns the point collection, label bookkeeping, and the random
// coordinate stream for one session. All shared state lives here rather than
// in package globals; the grouping functions stay pure.
//
// Methods are safe for concurrent use by HTTP handlers.
type Board struct {
	mu     sync.Mutex
	id     string
	points []Point
	labels *LabelAllocator
	rng    *rand.Rand
	log    PointLog
}

// New creates an empty in-memory board. seed fixes the random coordinate
// stream for tests; pass 0 to seed from the clock.
func New(seed int64) *Board {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Board{
		id:     uuid.New().String(),
		labels: NewLabelAllocator(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// NewWithLog restores a board from the log's surviving points and writes
// through all subsequent mutations.
func NewWithLog(log PointLog, seed int64) (*Board, error) {
	b := New(seed)
	b.log = log
	if log == nil {
		return b, nil
	}
	points, err := log.ListPoints()
	if err != nil {
		return nil, fmt.Errorf("restore board: %w", err)
	}
	b.points = points
	b.labels = restoreAllocator(points)
	return b, nil
}

// restoreAllocator rebuilds label state from persisted points: everything up
// to the highest minted index counts as minted, and gaps below it go back to
// the free pool.
func restoreAllocator(points []Point) *LabelAllocator {
	used := make(map[string]bool, len(points))
	next := 0
	for _, p := range points {
		used[p.Label] = true
		if idx := mintIndex(p.Label); idx >= next {
			next = idx + 1
		}
	}
	a := &LabelAllocator{next: next}
	for i := 0; i < next; i++ {
		if label := mintLabel(i); !used[label] {
			a.Release(label)
		}
	}
	return a
}

// ID returns the board's session identifier.
func (b *Board) ID() string {
	return b.id
}

// Add places a point. A nil coordinate is replaced by a uniform random value
// in [AxisMin, AxisMax) for that axis, matching the add-without-coordinates
// button behaviour.
func (b *Board) Add(x, y *float64) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := Point{
		X:     b.fillCoord(x),
		Y:     b.fillCoord(y),
		Label: b.labels.Next(),
	}
	if b.log != nil {
		if err := b.log.AppendPoint(p); err != nil {
			b.labels.Release(p.Label)
			return Point{}, fmt.Errorf("append point: %w", err)
		}
	}
	b.points = append(b.points, p)
	return p, nil
}

// RemoveLast removes the most recently added point and frees its label for
// reuse. Removing from an empty board is a no-op, reported via ok, not an
// error.
func (b *Board) RemoveLast() (label string, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.points) == 0 {
		return "", false, nil
	}
	last := b.points[len(b.points)-1]
	if b.log != nil {
		if err := b.log.RemoveLastPoint(); err != nil {
			return "", false, fmt.Errorf("remove point: %w", err)
		}
	}
	b.points = b.points[:len(b.points)-1]
	b.labels.Release(last.Label)
	return last.Label, true, nil
}

// Points returns a copy of the board's points in insertion order.
func (b *Board) Points() []Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

// Len returns the number of points on the board.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.points)
}

// Grouped partitions the current points with GroupByTolerance.
func (b *Board) Grouped(tolerance float64) (Grouping, error) {
	return GroupByTolerance(b.Points(), tolerance)
}

func (b *Board) fillCoord(v *float64) float64 {
	if v != nil {
		return *v
	}
	return AxisMin + b.rng.Float64()*(AxisMax-AxisMin)
}
