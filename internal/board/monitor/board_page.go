package monitor

import (
	"html/template"
	"log"
	"net/http"

	"github.com/banshee-data/pointboard/internal/board"
)

// groupView is one group prepared for the board page template.
type groupView struct {
	Index  int
	Shaded bool
	Points []board.Point
	Span   float64
}

// handleBoardPage handles the main board page endpoint.
func (ws *WebServer) handleBoardPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tolerance := ws.cfg.GetTolerance()
	grouping, err := ws.board.Grouped(tolerance)
	if err != nil {
		http.Error(w, "Error grouping points: "+err.Error(), http.StatusInternalServerError)
		return
	}

	groups := make([]groupView, 0, len(grouping))
	for i, g := range grouping {
		groups = append(groups, groupView{
			Index:  i + 1,
			Shaded: i%2 == 1,
			Points: g,
			Span:   g.Span(),
		})
	}

	// Load and parse the HTML template from embedded filesystem
	tmpl, err := template.ParseFS(BoardHTML, "board.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := struct {
		BoardID   string
		Address   string
		Count     int
		Tolerance float64
		Groups    []groupView
	}{
		BoardID:   ws.board.ID(),
		Address:   ws.address,
		Count:     ws.board.Len(),
		Tolerance: tolerance,
		Groups:    groups,
	}

	w.Header().Set("Content-Type", "text/html")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("board page template error: %v", err)
	}
}
