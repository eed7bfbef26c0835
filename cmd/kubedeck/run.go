package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/kubedeck"
	"pkt.systems/kubedeck/internal/appconfig"
	"pkt.systems/kubedeck/schema"
	"pkt.systems/kubedeck/tui"
	"pkt.systems/pslog"
)

func newRunCmd() *cobra.Command {
	var cfgPath string
	var kubeconfig string
	var mock bool
	var theme string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the kubedeck dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if kubeconfig != "" {
				cfg.Kubeconfig = kubeconfig
			}
			if mock {
				cfg.Mock = true
			}
			if theme != "" {
				cfg.UI.Theme = theme
			}

			// The TUI owns the terminal, so logs go to a file instead of
			// stderr while it runs.
			logger, closeLog, err := fileLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer closeLog()

			app, err := kubedeck.New(cfg.ServiceConfig(), logger)
			if err != nil {
				return err
			}
			defer app.Close()

			return runTUI(app, cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "path to kubeconfig (overrides config)")
	cmd.Flags().BoolVar(&mock, "mock", false, "serve fixture clusters instead of real ones")
	cmd.Flags().StringVar(&theme, "theme", "", "UI theme (deck, gruvbox, mono)")
	return cmd
}

func fileLogger(cfg appconfig.LoggingConfig) (pslog.Logger, func(), error) {
	if cfg.File == "" {
		return pslog.NewWithOptions(os.Stderr, pslog.Options{Mode: pslog.ModeStructured}), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := pslog.NewWithOptions(f, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: logLevel(cfg.Level),
	})
	return logger, func() { _ = f.Close() }, nil
}

func logLevel(name string) pslog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return pslog.TraceLevel
	case "debug":
		return pslog.DebugLevel
	case "warn", "warning":
		return pslog.WarnLevel
	case "error":
		return pslog.ErrorLevel
	default:
		return pslog.InfoLevel
	}
}

func runTUI(app *kubedeck.App, cfg appconfig.Config) error {
	return tui.Run(app.Service, app.Bus, tui.Options{
		Theme:        schema.ThemeName(cfg.UI.Theme),
		InitialKind:  schema.ResourceKind(cfg.UI.InitialKind),
		SidebarWidth: cfg.UI.SidebarWidth,
	})
}
