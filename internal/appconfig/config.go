package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/kubedeck/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	Kubeconfig    string         `mapstructure:"kubeconfig" yaml:"kubeconfig"`
	StateDir      string         `mapstructure:"state_dir" yaml:"state_dir"`
	Mock          bool           `mapstructure:"mock" yaml:"mock"`
	Clusters      ClustersConfig `mapstructure:"clusters" yaml:"clusters"`
	Terminal      TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	UI            UIConfig       `mapstructure:"ui" yaml:"ui"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ClustersConfig controls cluster client pooling and watches.
type ClustersConfig struct {
	ClientTTLMinutes     int `mapstructure:"client_ttl_minutes" yaml:"client_ttl_minutes"`
	WatchIntervalSeconds int `mapstructure:"watch_interval_seconds" yaml:"watch_interval_seconds"`
}

// TerminalConfig controls embedded shell sessions.
type TerminalConfig struct {
	Shell string `mapstructure:"shell" yaml:"shell"`
}

// UIConfig controls the terminal user interface.
type UIConfig struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	InitialKind  string `mapstructure:"initial_kind" yaml:"initial_kind"`
	SidebarWidth int    `mapstructure:"sidebar_width" yaml:"sidebar_width"`
}

// LoggingConfig controls the log file written while the TUI owns the screen.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	kubeconfig := os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		kubeconfig = filepath.Join(home, ".kube", "config")
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Kubeconfig:    kubeconfig,
		StateDir:      filepath.Join(home, ".kubedeck", "state"),
		Mock:          false,
		Clusters: ClustersConfig{
			ClientTTLMinutes:     int(schema.DefaultClientTTL.Minutes()),
			WatchIntervalSeconds: int(schema.DefaultWatchInterval.Seconds()),
		},
		Terminal: TerminalConfig{
			Shell: "",
		},
		UI: UIConfig{
			Theme:        string(schema.DefaultTheme),
			InitialKind:  string(schema.KindPods),
			SidebarWidth: 32,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(home, ".kubedeck", "kubedeck.log"),
			Level: "info",
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kubedeck", "config.yaml"), nil
}
