// Command group-points groups a CSV of labeled points by vertical proximity
// and prints the result group by group.
//
// Input is CSV rows of the form label,x,y read from a file or stdin.
//
// Usage:
//
//	go run ./cmd/tools/group-points [flags]
//
// Flags:
//
//	-in         Path to the CSV input (default: stdin)
//	-tolerance  Grouping tolerance (default: 1.0)
//	-png        Optional path to also write a scatter plot PNG
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/banshee-data/pointboard/internal/board"
	"github.com/banshee-data/pointboard/internal/security"
)

func readPoints(r io.Reader) ([]board.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var points []board.Point
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: bad x: %v", rec, err)
		}
		y, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: bad y: %v", rec, err)
		}
		points = append(points, board.Point{Label: rec[0], X: x, Y: y})
	}
	return points, nil
}

func main() {
	in := flag.String("in", "", "Path to the CSV input (default: stdin)")
	tolerance := flag.Float64("tolerance", board.DefaultTolerance, "Grouping tolerance")
	pngPath := flag.String("png", "", "Optional path to also write a scatter plot PNG")
	flag.Parse()

	var r io.Reader = os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer f.Close()
		r = f
	}

	points, err := readPoints(r)
	if err != nil {
		log.Fatalf("Failed to read points: %v", err)
	}

	grouping, err := board.GroupByTolerance(points, *tolerance)
	if err != nil {
		log.Fatalf("Failed to group points: %v", err)
	}

	for i, g := range grouping {
		s := g.Summary()
		fmt.Printf("group %d (%d points, span %.3f):\n", i+1, s.Count, s.SpanY)
		for _, p := range g {
			fmt.Printf("  %-4s (%.3f, %.3f)\n", p.Label, p.X, p.Y)
		}
	}

	if *pngPath != "" {
		if err := security.ValidateExportPath(*pngPath); err != nil {
			log.Fatalf("Invalid PNG path: %v", err)
		}
		f, err := os.Create(*pngPath)
		if err != nil {
			log.Fatalf("Failed to create PNG: %v", err)
		}
		defer f.Close()
		if err := board.WritePlotPNG(points, "Grouped Points", f); err != nil {
			log.Fatalf("Failed to write PNG: %v", err)
		}
		log.Printf("wrote plot to %s", *pngPath)
	}
}
