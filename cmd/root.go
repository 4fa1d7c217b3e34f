package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ytget/img2pdf/internal/bridge"
	"github.com/ytget/img2pdf/internal/config"
	"github.com/ytget/img2pdf/internal/logging"
	"github.com/ytget/img2pdf/internal/merge"
	"github.com/ytget/img2pdf/internal/platform"
	"github.com/ytget/img2pdf/internal/ui"
)

const (
	AppID   = "com.ytget.img2pdf"
	AppName = "Image to PDF"

	WindowWidth  = 900
	WindowHeight = 640
)

type options struct {
	configPath string
	backend    string
	logLevel   int
}

func NewRootCmd(version string) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "img2pdf [images or folders...]",
		Short: "Merge images into a single PDF",
		Long: `img2pdf opens a window where images can be selected or dropped,
put in order by dragging their thumbnails, and merged into one PDF document.

Thumbnails and PDF encoding are provided by a native backend process that is
started on launch and spoken to over its standard input and output.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("log-level"), version, args)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "backend command, overrides the config file")
	cmd.Flags().IntVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "0 off, 1 error, 2 warn, 3 info, 4 debug, 5 trace")

	return cmd
}

func run(ctx context.Context, opts options, levelSet bool, version string, args []string) error {
	cfg, cfgErr := config.LoadFile(opts.configPath)
	if opts.backend != "" {
		cfg.Backend.Command = opts.backend
	}

	level := logging.LevelFromEnv(cfg.Log.Level)
	if levelSet {
		level = opts.logLevel
	}
	closer, err := logging.Setup(level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfgErr != nil {
		slog.Warn("Using default configuration", "error", cfgErr)
	}
	slog.Info("Starting", "app", AppName, "version", version, "backend", cfg.Backend.Command)

	backend, err := bridge.Start(ctx, cfg.Backend.Command, cfg.Backend.Args...)
	if err != nil {
		return fmt.Errorf("failed to start backend: %w", err)
	}
	defer backend.Close()

	var viewer merge.Viewer = backend
	if cfg.Backend.Viewer == config.ViewerSystem {
		viewer = platform.SystemViewer{}
	}

	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewCompactTheme())

	w := a.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	root := ui.NewRootUI(ctx, w, a, ui.Services{
		Thumbnailer: backend,
		Merger:      backend,
		Viewer:      viewer,
	})
	a.Lifecycle().SetOnStarted(func() {
		root.Open(args)
	})

	go func() {
		select {
		case <-backend.Done():
			slog.Warn("Backend exited")
		case <-ctx.Done():
			fyne.Do(a.Quit)
		}
	}()

	w.ShowAndRun()
	return nil
}
