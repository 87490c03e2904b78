// Package monitor provides the HTTP interface for a point board: a JSON API
// for adding, removing and grouping points, plus HTML chart views.
package monitor

import (
	"context"
	"embed"
	"log"
	"net/http"
	"time"

	"github.com/banshee-data/pointboard/internal/board"
	"github.com/banshee-data/pointboard/internal/config"
	"github.com/banshee-data/pointboard/internal/db"
)

//go:embed board.html
var BoardHTML embed.FS

// WebServer handles the HTTP interface for a point board.
type WebServer struct {
	address string
	board   *board.Board
	cfg     *config.BoardConfig
	db      *db.DB
	server  *http.Server
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address string
	Board   *board.Board
	Config  *config.BoardConfig
	DB      *db.DB
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(cfg WebServerConfig) *WebServer {
	ws := &WebServer{
		address: cfg.Address,
		board:   cfg.Board,
		cfg:     cfg.Config,
		db:      cfg.DB,
	}
	if ws.cfg == nil {
		ws.cfg = config.EmptyBoardConfig()
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown.
func (ws *WebServer) Start(ctx context.Context) error {
	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		// Force close the server if graceful shutdown fails
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleBoardPage)
	mux.HandleFunc("/api/points", ws.handlePoints)
	mux.HandleFunc("/api/points/remove", ws.handleRemovePoint)
	mux.HandleFunc("/api/points/grouped", ws.handleGroupedPoints)
	mux.HandleFunc("/api/board/plot.png", ws.handlePlotPNG)
	mux.HandleFunc("/charts/board", ws.handleBoardChart)

	if ws.db != nil {
		ws.db.AttachAdminRoutes(mux)
	}

	return mux
}

// Close shuts down the web server.
func (ws *WebServer) Close() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}
