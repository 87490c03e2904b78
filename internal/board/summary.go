package board

import (
	"gonum.org/v1/gonum/stat"
)

// GroupSummary carries per-group statistics for list headers and tooling
// output.
type GroupSummary struct {
	Count int     `json:"count"`
	SpanY float64 `json:"span_y"`
	MeanX float64 `json:"mean_x"`
	MeanY float64 `json:"mean_y"`
}

// Summary computes the group's point count, vertical span, and centroid.
func (g Group) Summary() GroupSummary {
	if len(g) == 0 {
		return GroupSummary{}
	}
	xs := make([]float64, len(g))
	ys := make([]float64, len(g))
	for i, p := range g {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return GroupSummary{
		Count: len(g),
		SpanY: g.Span(),
		MeanX: stat.Mean(xs, nil),
		MeanY: stat.Mean(ys, nil),
	}
}
