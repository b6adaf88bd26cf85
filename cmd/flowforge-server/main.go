package main

import (
	"context"
	"log"
	"os"

	"github.com/apper-canvas/flowforge/internal/config"
	"github.com/apper-canvas/flowforge/internal/logger"
	"github.com/apper-canvas/flowforge/internal/store"
	"github.com/apper-canvas/flowforge/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if err := logger.Init(logger.Config{
		Level:    logger.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
		MaxSize:  10 * 1024 * 1024,
		Console:  cfg.LogConsole,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	var st store.Store
	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.DBPath
		if path == "" {
			path, err = store.DefaultDBPath()
			if err != nil {
				log.Fatalf("Failed to resolve database path: %v", err)
			}
		}
		st, err = store.OpenSQLite(path)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
	default:
		opts := []store.MemoryOption{}
		if cfg.SimulateLatency {
			opts = append(opts, store.WithLatency(store.SimulatedLatency()))
		}
		st = store.NewMemory(opts...)
	}
	defer st.Close()

	if err := store.SeedFixtures(context.Background(), st); err != nil {
		log.Fatalf("Failed to seed fixtures: %v", err)
	}

	addr := cfg.Listen
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := server.New(st)
	log.Printf("FlowForge API server starting on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
