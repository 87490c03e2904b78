// Package db persists the point board to SQLite and exposes the admin debug
// surface over it.
package db

import (
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/banshee-data/pointboard/internal/board"
	"github.com/banshee-data/pointboard/internal/monitoring"
	"github.com/banshee-data/pointboard/internal/security"
)

// pragmas applied to every database on open. WAL keeps the web handlers
// responsive while the admin backup runs.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA foreign_keys=ON",
}

// DB wraps the board database connection.
type DB struct {
	*sql.DB
	path string
}

// NewDB opens (or creates) the SQLite database at path and applies the
// standard pragmas. Run MigrateUp before first use.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return &DB{DB: sqlDB, path: path}, nil
}

// AppendPoint records a point at the end of the board's insertion order.
// Part of the board.PointLog implementation.
func (db *DB) AppendPoint(p board.Point) error {
	if _, err := db.Exec("INSERT INTO points (label, x, y) VALUES (?, ?, ?)", p.Label, p.X, p.Y); err != nil {
		return fmt.Errorf("insert point: %w", err)
	}
	return nil
}

// RemoveLastPoint deletes the most recently appended surviving point.
// Deleting from an empty table is a no-op.
func (db *DB) RemoveLastPoint() error {
	if _, err := db.Exec("DELETE FROM points WHERE seq = (SELECT MAX(seq) FROM points)"); err != nil {
		return fmt.Errorf("delete point: %w", err)
	}
	return nil
}

// ListPoints returns all surviving points in insertion order.
func (db *DB) ListPoints() ([]board.Point, error) {
	rows, err := db.Query("SELECT label, x, y FROM points ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	var points []board.Point
	for rows.Next() {
		var p board.Point
		if err := rows.Scan(&p.Label, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return points, nil
}

// AttachAdminRoutes mounts the debug surface on mux: a tailSQL browser for
// live queries against the board database and an on-demand gzip backup
// download.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "Point Board DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the database now", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base := security.SanitizeFilename(filepath.Base(db.path))
		backupPath := fmt.Sprintf("backup-%s-%d.db", base, time.Now().Unix())
		if _, err := db.Exec("VACUUM INTO ?", backupPath); err != nil {
			http.Error(w, fmt.Sprintf("Failed to create backup: %v", err), http.StatusInternalServerError)
			return
		}
		backupFile, err := os.Open(backupPath)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to open backup file: %v", err), http.StatusInternalServerError)
			return
		}
		defer func() {
			backupFile.Close()
			if err := os.Remove(backupPath); err != nil {
				monitoring.Logf("Failed to remove backup file: %v", err)
			}
		}()

		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.gz", backupPath))
		w.Header().Set("Content-Type", "application/octet-stream")

		gz := gzip.NewWriter(w)
		defer gz.Close()
		if _, err := io.Copy(gz, backupFile); err != nil {
			monitoring.Logf("Failed to stream backup: %v", err)
		}
	}))
}
