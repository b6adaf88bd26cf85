package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	if cfg.Store != StoreMemory {
		t.Errorf("expected memory backend, got %q", cfg.Store)
	}
	if cfg.SimulateLatency {
		t.Error("latency simulation should be off by default")
	}
	if cfg.DefaultSort != "created" {
		t.Errorf("expected created sort, got %q", cfg.DefaultSort)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("unexpected listen address %q", cfg.Listen)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLOWFORGE_STORE", StoreSQLite)
	t.Setenv("FLOWFORGE_SIMULATE_LATENCY", "true")
	t.Setenv("FLOWFORGE_LISTEN", ":9090")

	cfg := DefaultConfig()
	if cfg.Store != StoreSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Store)
	}
	if !cfg.SimulateLatency {
		t.Error("expected latency simulation on")
	}
	if cfg.Listen != ":9090" {
		t.Errorf("unexpected listen address %q", cfg.Listen)
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store != StoreMemory || !cfg.ConfirmDelete {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Store = StoreSQLite
	cfg.DBPath = "/tmp/flowforge-test.db"
	cfg.DefaultSort = "priority"
	cfg.ConfirmDelete = false
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Store != StoreSQLite || loaded.DBPath != cfg.DBPath {
		t.Errorf("backend settings did not round-trip: %+v", loaded)
	}
	if loaded.DefaultSort != "priority" {
		t.Errorf("expected priority sort, got %q", loaded.DefaultSort)
	}
	if loaded.ConfirmDelete {
		t.Error("expected confirm_delete false after reload")
	}
}
