package board

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func labelsOf(gr Grouping) [][]string {
	out := make([][]string, len(gr))
	for i, g := range gr {
		out[i] = make([]string, len(g))
		for j, p := range g {
			out[i][j] = p.Label
		}
	}
	return out
}

func TestGroupByTolerance_EmptyInput(t *testing.T) {
	gr, err := GroupByTolerance(nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gr) != 0 {
		t.Errorf("expected empty grouping, got %d groups", len(gr))
	}
}

func TestGroupByTolerance_SinglePoint(t *testing.T) {
	gr, err := GroupByTolerance([]Point{{X: 4, Y: 4, Label: "a"}}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a"}}
	if diff := cmp.Diff(want, labelsOf(gr)); diff != "" {
		t.Errorf("grouping mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTolerance_ReferenceScenario(t *testing.T) {
	points := []Point{
		{X: 1, Y: 9, Label: "a"},
		{X: 9, Y: 9.5, Label: "b"},
		{X: 5, Y: 5, Label: "c"},
		{X: 5, Y: 3, Label: "d"},
	}
	gr, err := GroupByTolerance(points, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (1,9) and (9,9.5) share a band (span 0.5) and are ordered by x;
	// y=5 and y=3 differ by 2 and must not merge.
	want := [][]string{{"a", "b"}, {"c"}, {"d"}}
	if diff := cmp.Diff(want, labelsOf(gr)); diff != "" {
		t.Errorf("grouping mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTolerance_InvalidTolerance(t *testing.T) {
	points := []Point{{X: 1, Y: 1, Label: "a"}}
	for _, tol := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := GroupByTolerance(points, tol); !errors.Is(err, ErrInvalidTolerance) {
			t.Errorf("tolerance %v: expected ErrInvalidTolerance, got %v", tol, err)
		}
	}
}

func TestGroupByTolerance_ZeroTolerance(t *testing.T) {
	// Strict comparison: span 0 is not < 0, so even identical-y points
	// land in singleton groups.
	points := []Point{
		{X: 1, Y: 5, Label: "a"},
		{X: 2, Y: 5, Label: "b"},
		{X: 3, Y: 5, Label: "c"},
	}
	gr, err := GroupByTolerance(points, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gr) != 3 {
		t.Fatalf("expected 3 singleton groups, got %d", len(gr))
	}
	for i, g := range gr {
		if len(g) != 1 {
			t.Errorf("group %d: expected singleton, got %d points", i, len(g))
		}
	}
}

func TestGroupByTolerance_IdenticalY(t *testing.T) {
	points := []Point{
		{X: 3, Y: 5, Label: "a"},
		{X: 1, Y: 5, Label: "b"},
		{X: 2, Y: 5, Label: "c"},
	}
	gr, err := GroupByTolerance(points, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"b", "c", "a"}}
	if diff := cmp.Diff(want, labelsOf(gr)); diff != "" {
		t.Errorf("grouping mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTolerance_WholeGroupSpan(t *testing.T) {
	// Each adjacent pair is 0.6 apart (under tolerance) but the chain as a
	// whole spans 1.2. A naive adjacent-pair check would produce one group.
	points := []Point{
		{X: 1, Y: 3.0, Label: "a"},
		{X: 2, Y: 3.6, Label: "b"},
		{X: 3, Y: 4.2, Label: "c"},
	}
	gr, err := GroupByTolerance(points, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gr) < 2 {
		t.Fatalf("expected the chain to split, got %d group(s)", len(gr))
	}
	for i, g := range gr {
		if len(g) > 1 && g.Span() >= 1 {
			t.Errorf("group %d: span %v breaks tolerance", i, g.Span())
		}
	}
}

func TestGroupByTolerance_RepairPrefersExistingGroup(t *testing.T) {
	// The incoming bottom point pulls its near neighbour into the new
	// group; the two top points stay together.
	points := []Point{
		{X: 1, Y: 9.0, Label: "a"},
		{X: 2, Y: 8.9, Label: "b"},
		{X: 3, Y: 8.2, Label: "c"},
		{X: 4, Y: 7.9, Label: "d"},
	}
	gr, err := GroupByTolerance(points, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if diff := cmp.Diff(want, labelsOf(gr)); diff != "" {
		t.Errorf("grouping mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByTolerance_InputNotMutated(t *testing.T) {
	points := []Point{
		{X: 5, Y: 1, Label: "a"},
		{X: 1, Y: 9, Label: "b"},
		{X: 3, Y: 5, Label: "c"},
	}
	orig := make([]Point, len(points))
	copy(orig, points)

	if _, err := GroupByTolerance(points, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(orig, points); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestGroupByTolerance_PartitionProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40)
		points := make([]Point, n)
		for i := range points {
			points[i] = Point{
				X:     rng.Float64() * 10,
				Y:     rng.Float64() * 10,
				Label: mintLabel(i),
			}
		}
		tolerance := rng.Float64() * 3

		gr, err := GroupByTolerance(points, tolerance)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		// Partition completeness: same label multiset, nothing lost or
		// duplicated.
		flat := gr.Flatten()
		if len(flat) != n {
			t.Fatalf("trial %d: flattened %d points, want %d", trial, len(flat), n)
		}
		seen := make(map[string]int)
		for _, p := range flat {
			seen[p.Label]++
		}
		for _, p := range points {
			if seen[p.Label] != 1 {
				t.Fatalf("trial %d: label %q appears %d times", trial, p.Label, seen[p.Label])
			}
		}

		for i, g := range gr {
			if len(g) == 0 {
				t.Fatalf("trial %d: group %d is empty", trial, i)
			}
			// Span invariant, strict.
			if len(g) > 1 && g.Span() >= tolerance {
				t.Errorf("trial %d: group %d span %v >= tolerance %v", trial, i, g.Span(), tolerance)
			}
			// Left-to-right order within the group.
			if !sort.SliceIsSorted(g, func(a, b int) bool { return g[a].X < g[b].X }) {
				t.Errorf("trial %d: group %d not ordered by x", trial, i)
			}
		}

		// Top-to-bottom order between groups: no group sits entirely above
		// an earlier one.
		for i := 1; i < len(gr); i++ {
			if minY(gr[i]) > maxY(gr[i-1]) {
				t.Errorf("trial %d: group %d lies entirely above group %d", trial, i, i-1)
			}
		}
	}
}

func TestGroupByTolerance_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([]Point, 30)
	for i := range points {
		points[i] = Point{X: rng.Float64() * 10, Y: rng.Float64() * 10, Label: mintLabel(i)}
	}

	first, err := GroupByTolerance(points, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GroupByTolerance(first.Flatten(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(labelsOf(first), labelsOf(second)); diff != "" {
		t.Errorf("re-grouping changed the partition (-first +second):\n%s", diff)
	}
}

func TestGroupSpan(t *testing.T) {
	cases := []struct {
		name  string
		group Group
		want  float64
	}{
		{"empty", Group{}, 0},
		{"single", Group{{Y: 4}}, 0},
		{"pair", Group{{Y: 2}, {Y: 5.5}}, 3.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.group.Span(); got != tc.want {
				t.Errorf("Span() = %v, want %v", got, tc.want)
			}
		})
	}
}

func minY(g Group) float64 {
	m := g[0].Y
	for _, p := range g[1:] {
		if p.Y < m {
			m = p.Y
		}
	}
	return m
}

func maxY(g Group) float64 {
	m := g[0].Y
	for _, p := range g[1:] {
		if p.Y > m {
			m = p.Y
		}
	}
	return m
}
