package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.DefaultItemSize != 40 {
		t.Errorf("expected default item size 40, got %v", cfg.Editor.DefaultItemSize)
	}
	if cfg.Editor.DragActivationDistance != 5 {
		t.Errorf("expected activation distance 5, got %v", cfg.Editor.DragActivationDistance)
	}
	if cfg.Editor.ResizeDebounce != 100*time.Millisecond {
		t.Errorf("expected 100ms debounce, got %v", cfg.Editor.ResizeDebounce)
	}
	if cfg.Export.FilenamePrefix != "dental-jewelry" {
		t.Errorf("unexpected prefix %q", cfg.Export.FilenamePrefix)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
log_level: debug
editor:
  default_item_size: 64
  resize_debounce: 250ms
history:
  max_snapshots: 50
export:
  filename_prefix: smile
catalog:
  manifest: items/catalog.yaml
  watch: true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor.DefaultItemSize != 64 {
		t.Errorf("expected 64, got %v", cfg.Editor.DefaultItemSize)
	}
	if cfg.Editor.ResizeDebounce != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Editor.ResizeDebounce)
	}
	if cfg.Editor.DragActivationDistance != 5 {
		t.Errorf("expected default activation distance, got %v", cfg.Editor.DragActivationDistance)
	}
	if cfg.History.MaxSnapshots != 50 {
		t.Errorf("expected 50, got %d", cfg.History.MaxSnapshots)
	}
	if cfg.Export.FilenamePrefix != "smile" {
		t.Errorf("expected smile, got %q", cfg.Export.FilenamePrefix)
	}
	if want := filepath.Join(dir, "items", "catalog.yaml"); cfg.Catalog.Manifest != want {
		t.Errorf("expected manifest %s, got %s", want, cfg.Catalog.Manifest)
	}
	if !cfg.Catalog.Watch {
		t.Error("expected watch enabled")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Level())
	}
}

func TestLoad_ClampsItemSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_ = os.WriteFile(path, []byte("editor:\n  default_item_size: 900\n"), 0644)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.DefaultItemSize != 200 {
		t.Errorf("expected clamp to 200, got %v", cfg.Editor.DefaultItemSize)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_ = os.WriteFile(path, []byte("editor: [unclosed"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoad_MCP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_ = os.WriteFile(path, []byte("mcp:\n  listen: 127.0.0.1:7821\n  auto_approve: true\n"), 0644)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MCP.Listen != "127.0.0.1:7821" || !cfg.MCP.AutoApprove {
		t.Errorf("unexpected mcp config %+v", cfg.MCP)
	}
	if Default().MCP.Listen != "" {
		t.Error("expected the in-app MCP server to be disabled by default")
	}
}
