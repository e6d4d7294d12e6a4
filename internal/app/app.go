package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"jewelry/internal/config"
	"jewelry/internal/domain"
	mcpserver "jewelry/internal/mcp"
	"jewelry/internal/service"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	configPath string
	core       *core
	editor     *service.EditorService
	mcp        *mcpserver.Server
	mcpServing bool
}

// New creates a new App reading its configuration from configPath.
// An empty path uses config.DefaultPath.
func New(configPath string) *App {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	return &App{configPath: configPath}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load(a.configPath)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}
	logger := cfg.NewLogger()

	c, err := openCore(ctx, cfg, logger, wailsEmitter{})
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to start editor: %v", err)
		return
	}
	a.core = c
	a.editor = c.editor

	a.mcp = mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     wailsEmitter{},
		Editor:      c.editor,
		ExportDir:   cfg.Export.Dir,
		Logger:      logger,
		AutoApprove: cfg.MCP.AutoApprove,
	})
	if addr := cfg.MCP.Listen; addr != "" {
		a.mcpServing = true
		go func() {
			if err := a.mcp.ServeHTTP(addr); err != nil {
				wailsRuntime.LogErrorf(ctx, "MCP server stopped: %v", err)
			}
		}()
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.mcp != nil && a.mcpServing {
		a.mcp.Shutdown(ctx)
	}
	if a.core != nil {
		a.core.close(ctx)
	}
}

// ============================================================
// Photo
// ============================================================

// CapturePhoto starts a new session on a captured frame (PNG/JPEG data URL).
func (a *App) CapturePhoto(dataURL string) (domain.Size, error) {
	natural, err := a.editor.CapturePhoto(dataURL)
	if err != nil {
		wailsRuntime.LogErrorf(a.ctx, "[Photo] capture failed: %v", err)
	}
	return natural, err
}

// Retake discards the photo and every placed item.
func (a *App) Retake() {
	a.editor.Retake()
}

// PhotoLoaded reports the rendered photo size once the <img> has loaded.
func (a *App) PhotoLoaded(width, height float64) {
	a.editor.PhotoLoaded(width, height)
}

// ContainerResized reports a ResizeObserver entry for the photo container.
func (a *App) ContainerResized(width, height float64) {
	a.editor.ContainerResized(width, height)
}

// ============================================================
// Catalog
// ============================================================

func (a *App) GetCatalog() ([]domain.CatalogItem, error) {
	return a.editor.Catalog()
}

// SearchCatalog filters the catalog by name.
func (a *App) SearchCatalog(query string) ([]domain.CatalogItem, error) {
	return a.core.catalog.Search(query)
}

// GetCatalogImage reads a catalog item's image and returns it as a data URL.
// Called lazily by the frontend for each catalog thumbnail.
func (a *App) GetCatalogImage(id string) (string, error) {
	item, err := a.core.catalog.Get(id)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(item.Image, "data:") {
		return item.Image, nil
	}

	data, err := os.ReadFile(item.Image)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return "data:" + imageMIME(item.Image) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	}
	return "image/png"
}

// ============================================================
// State
// ============================================================

// GetState returns the placed items, selection and toolbar enablement.
func (a *App) GetState() domain.SceneState {
	return a.editor.State()
}

func (a *App) CanExport() bool {
	return a.editor.CanExport()
}
