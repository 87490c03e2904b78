package monitor

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/pointboard/internal/board"
	"github.com/banshee-data/pointboard/internal/httputil"
	"github.com/banshee-data/pointboard/internal/version"
)

// pointsResponse is the JSON shape for point listings.
type pointsResponse struct {
	BoardID string        `json:"board_id"`
	Count   int           `json:"count"`
	Points  []board.Point `json:"points"`
}

// groupResponse is one group in a grouped listing, with its summary stats.
type groupResponse struct {
	Points  []board.Point      `json:"points"`
	Summary board.GroupSummary `json:"summary"`
}

// groupedResponse is the JSON shape for grouped listings.
type groupedResponse struct {
	BoardID   string          `json:"board_id"`
	Tolerance float64         `json:"tolerance"`
	Groups    []groupResponse `json:"groups"`
}

// handleHealth handles the health check endpoint.
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "ok", "service": "pointboard", "version": "%s", "timestamp": "%s"}`,
		version.Version, time.Now().UTC().Format(time.RFC3339))
}

// handlePoints lists the board's points (GET) or adds a point (POST).
// POST accepts optional form values `x` and `y`; an omitted coordinate is
// filled with a random value on the board.
func (ws *WebServer) handlePoints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ws.listPoints(w)
	case http.MethodPost:
		ws.addPoint(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (ws *WebServer) listPoints(w http.ResponseWriter) {
	points := ws.board.Points()
	httputil.WriteJSON(w, http.StatusOK, pointsResponse{
		BoardID: ws.board.ID(),
		Count:   len(points),
		Points:  points,
	})
}

func (ws *WebServer) addPoint(w http.ResponseWriter, r *http.Request) {
	x, err := parseOptionalCoord(r, "x")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	y, err := parseOptionalCoord(r, "y")
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	p, err := ws.board.Add(x, y)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("add point: %v", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// parseOptionalCoord reads a float form value, returning nil when absent.
func parseOptionalCoord(r *http.Request, name string) (*float64, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' value %q", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("'%s' must be a finite number", name)
	}
	return &v, nil
}

// handleRemovePoint removes the most recently added point and reports the
// freed label. Removing from an empty board is not an error.
func (ws *WebServer) handleRemovePoint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	label, ok, err := ws.board.RemoveLast()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("remove point: %v", err))
		return
	}
	if !ok {
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"removed": nil, "empty": true})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"removed": label, "empty": false})
}

// handleGroupedPoints returns the board's points grouped by vertical
// proximity. Query params:
//
//	tolerance (optional, defaults to the configured tolerance)
func (ws *WebServer) handleGroupedPoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	tolerance := ws.cfg.GetTolerance()
	if raw := r.URL.Query().Get("tolerance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid 'tolerance' value %q", raw))
			return
		}
		tolerance = v
	}

	grouping, err := ws.board.Grouped(tolerance)
	if err != nil {
		if errors.Is(err, board.ErrInvalidTolerance) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("group points: %v", err))
		return
	}

	resp := groupedResponse{
		BoardID:   ws.board.ID(),
		Tolerance: tolerance,
		Groups:    make([]groupResponse, 0, len(grouping)),
	}
	for _, g := range grouping {
		resp.Groups = append(resp.Groups, groupResponse{Points: g, Summary: g.Summary()})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handlePlotPNG renders the board as a static PNG scatter plot.
func (ws *WebServer) handlePlotPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	title := fmt.Sprintf("Point Board %s", ws.board.ID())
	w.Header().Set("Content-Type", "image/png")
	if err := board.WritePlotPNG(ws.board.Points(), title, w); err != nil {
		// Headers are already written; all we can do is log.
		log.Printf("write plot: %v", err)
	}
}
