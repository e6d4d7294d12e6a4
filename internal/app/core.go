package app

import (
	"context"
	"fmt"
	"log/slog"

	"jewelry/internal/catalog"
	"jewelry/internal/compositor"
	"jewelry/internal/config"
	"jewelry/internal/domain"
	"jewelry/internal/service"
	"jewelry/internal/storage"
)

// core is everything the window and the headless MCP server share: the
// catalog, its store and watcher, and one editing session.
type core struct {
	cfg     *config.Config
	log     *slog.Logger
	emitter service.EventEmitter

	db      *storage.DB
	catalog *storage.CatalogStore
	watcher *catalog.Watcher
	editor  *service.EditorService
}

func openCore(ctx context.Context, cfg *config.Config, logger *slog.Logger, emitter service.EventEmitter) (*core, error) {
	db, err := storage.New(cfg.Catalog.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	c := &core{
		cfg:     cfg,
		log:     logger,
		emitter: emitter,
		db:      db,
		catalog: storage.NewCatalogStore(db),
	}

	if m := cfg.Catalog.Manifest; m != "" {
		items, err := catalog.LoadManifest(m)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := c.catalog.ReplaceAll(items); err != nil {
			db.Close()
			return nil, fmt.Errorf("import catalog: %w", err)
		}
		logger.Info("catalog loaded", "manifest", m, "items", len(items))

		if cfg.Catalog.Watch {
			w, err := catalog.Watch(m, func(items []domain.CatalogItem) {
				c.reloadCatalog(ctx, items)
			}, logger)
			if err != nil {
				logger.Warn("catalog watch disabled", "err", err)
			}
			c.watcher = w
		}
	}

	exporter := compositor.NewExporter(compositor.FileLoader{}, cfg.Export.FilenamePrefix, logger)
	c.editor = service.NewEditorService(ctx, c.catalog, exporter, emitter, service.EditorOptions{
		ItemSize:           cfg.Editor.DefaultItemSize,
		ActivationDistance: cfg.Editor.DragActivationDistance,
		ResizeDebounce:     cfg.Editor.ResizeDebounce,
		MaxSnapshots:       cfg.History.MaxSnapshots,
		Logger:             logger,
	})
	return c, nil
}

func (c *core) reloadCatalog(ctx context.Context, items []domain.CatalogItem) {
	if err := c.catalog.ReplaceAll(items); err != nil {
		c.log.Error("catalog reload failed", "err", err)
		return
	}
	c.log.Info("catalog reloaded", "items", len(items))
	c.emitter.Emit(ctx, service.EventCatalogUpdated, items)
}

func (c *core) close(ctx context.Context) {
	if c.watcher != nil {
		c.watcher.Close()
	}
	if c.editor != nil {
		c.editor.Close(ctx)
	}
	if c.db != nil {
		c.db.Close()
	}
}
