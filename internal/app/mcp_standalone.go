package app

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"jewelry/internal/compositor"
	"jewelry/internal/config"
	mcpserver "jewelry/internal/mcp"
	"jewelry/internal/service"
)

// ServeMCP runs the editor as a standalone MCP server on stdin/stdout with
// no GUI. args are the command-line arguments after --mcp.
//
//	jewelry --mcp -photo smile.jpg [-width 800] [-config path] [-yes]
func ServeMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to config.yaml")
	photoPath := fs.String("photo", "", "photo to decorate (required)")
	width := fs.Float64("width", 0, "displayed photo width; 0 = natural width")
	autoApprove := fs.Bool("yes", false, "approve destructive tools without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *photoPath == "" {
		return fmt.Errorf("-photo is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()

	photo, err := loadPhoto(ctx, *photoPath)
	if err != nil {
		return err
	}

	c, err := openCore(ctx, cfg, logger, service.NoopEmitter{})
	if err != nil {
		return err
	}
	defer c.close(context.Background())

	// No frontend lays the photo out, so the display size is derived from
	// the requested width keeping the aspect ratio.
	natural := c.editor.SetPhoto(photo)
	display := natural
	if *width > 0 {
		display.Width = *width
		display.Height = natural.Height * *width / natural.Width
	}
	c.editor.PhotoLoaded(display.Width, display.Height)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     service.NoopEmitter{},
		Editor:      c.editor,
		ExportDir:   cfg.Export.Dir,
		Logger:      logger,
		AutoApprove: *autoApprove || cfg.MCP.AutoApprove,
	})

	logger.Info("standalone mcp server", "photo", *photoPath, "display", display)
	if err := mcpSrv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func loadPhoto(ctx context.Context, path string) (image.Image, error) {
	img, err := compositor.FileLoader{}.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load photo: %w", err)
	}
	return img, nil
}
