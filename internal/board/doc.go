// Package board implements the point board domain: labeled 2-D points, the
// tolerance-based vertical grouping that orders the side list, label
// allocation with recycling, and the board store that owns all mutable
// session state.
//
// The grouping entry point is GroupByTolerance; everything else is
// bookkeeping around it.
package board
