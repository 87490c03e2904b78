package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/pointboard/internal/board"
	"github.com/banshee-data/pointboard/internal/board/monitor"
	"github.com/banshee-data/pointboard/internal/config"
	"github.com/banshee-data/pointboard/internal/db"
	"github.com/banshee-data/pointboard/internal/version"
)

var (
	listen        = flag.String("listen", ":8080", "Listen address")
	dbPath        = flag.String("db", "points.db", "Path to the SQLite point log")
	configPath    = flag.String("config", "", "Path to a board config JSON file (optional)")
	migrationsDir = flag.String("migrations", "internal/db/migrations", "Path to the migrations directory")
	seed          = flag.Int64("seed", 0, "Random seed for coordinate fill (0 uses the config, then the clock)")
)

func loadConfig(path string) *config.BoardConfig {
	if path == "" {
		// Fall back to the checked-in defaults when present.
		if _, err := os.Stat(config.DefaultConfigPath); err != nil {
			return config.EmptyBoardConfig()
		}
		path = config.DefaultConfigPath
	}
	cfg, err := config.LoadBoardConfig(path)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", path, err)
	}
	log.Printf("loaded board config from %s", path)
	return cfg
}

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	log.Printf("pointboard %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)

	cfg := loadConfig(*configPath)

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.MigrateUp(*migrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	boardSeed := cfg.GetRandomSeed()
	if *seed != 0 {
		boardSeed = *seed
	}

	b, err := board.NewWithLog(database, boardSeed)
	if err != nil {
		log.Fatalf("failed to restore board from log: %v", err)
	}
	log.Printf("board %s ready with %d points", b.ID(), b.Len())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ws := monitor.NewWebServer(monitor.WebServerConfig{
		Address: *listen,
		Board:   b,
		Config:  cfg,
		DB:      database,
	})

	if err := ws.Start(ctx); err != nil {
		log.Fatalf("web server error: %v", err)
	}

	log.Printf("Graceful shutdown complete")
}
