package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default Addr=':8080', got %q", cfg.Server.Addr)
	}
	if cfg.Render.Width != 640 || cfg.Render.Height != 480 {
		t.Errorf("expected default size 640x480, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Server.SessionTTL != 30*time.Minute {
		t.Errorf("expected default SessionTTL=30m, got %s", cfg.Server.SessionTTL)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/sheetplot.yaml")
	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("expected default Format='png', got %q", cfg.Render.Format)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetplot.yaml")
	content := `
server:
  addr: "127.0.0.1:9000"
  session_ttl: 5m
render:
  width: 1024
load:
  use_print_area: true
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected Addr from file, got %q", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 5*time.Minute {
		t.Errorf("expected SessionTTL=5m, got %s", cfg.Server.SessionTTL)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 480 {
		t.Errorf("expected 1024x480, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if !cfg.Load.UsePrintArea || cfg.LogLevel != "debug" {
		t.Errorf("unexpected load settings %+v / %q", cfg.Load, cfg.LogLevel)
	}
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("expected default MaxUploadBytes, got %d", cfg.Server.MaxUploadBytes)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestSave_And_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sheetplot.yaml")

	cfg := DefaultConfig()
	cfg.Render.Format = "svg"
	cfg.Server.WriteTimeout = 2 * time.Minute
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Render.Format != "svg" || loaded.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("round trip lost settings: %+v", loaded)
	}
}
