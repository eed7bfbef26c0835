package schema

import (
	"os"
	"path/filepath"
	"time"
)

// ServiceConfig defines defaults and limits for the core service.
type ServiceConfig struct {
	KubeconfigPath string
	StateDir       string
	Mock           bool
	Shell          string
	ClientTTL      time.Duration
	WatchInterval  time.Duration
	DefaultTheme   ThemeName
}

// DefaultClientTTL is how long a per-context cluster client is reused.
const DefaultClientTTL = 5 * time.Minute

// DefaultWatchInterval is the default poll interval for resource watches.
const DefaultWatchInterval = 5 * time.Second

// NormalizeServiceConfig applies defaults and validates the config.
func NormalizeServiceConfig(cfg ServiceConfig) (ServiceConfig, error) {
	if cfg.KubeconfigPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServiceConfig{}, err
		}
		cfg.KubeconfigPath = filepath.Join(home, ".kube", "config")
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ServiceConfig{}, err
		}
		cfg.StateDir = filepath.Join(home, ".kubedeck", "state")
	}
	if cfg.Shell == "" {
		cfg.Shell = os.Getenv("SHELL")
		if cfg.Shell == "" {
			cfg.Shell = "/bin/sh"
		}
	}
	if cfg.ClientTTL <= 0 {
		cfg.ClientTTL = DefaultClientTTL
	}
	if cfg.WatchInterval <= 0 {
		cfg.WatchInterval = DefaultWatchInterval
	}
	if cfg.DefaultTheme == "" {
		cfg.DefaultTheme = DefaultTheme
	}
	return cfg, nil
}
