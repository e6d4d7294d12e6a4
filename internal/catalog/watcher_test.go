package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"jewelry/internal/domain"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte("items:\n  - {id: a, image: a.png}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := make(chan []domain.CatalogItem, 4)
	w, err := Watch(path, func(items []domain.CatalogItem) { got <- items }, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	update := "items:\n  - {id: a, image: a.png}\n  - {id: b, image: b.png}\n"
	if err := os.WriteFile(path, []byte(update), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case items := <-got:
		if len(items) != 2 {
			t.Errorf("expected 2 items after reload, got %d", len(items))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("manifest reload never fired")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	_ = os.WriteFile(path, []byte("items: []\n"), 0644)

	got := make(chan []domain.CatalogItem, 1)
	w, err := Watch(path, func(items []domain.CatalogItem) { got <- items }, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644)
	select {
	case <-got:
		t.Error("expected no reload for an unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}
