package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"pkt.systems/kubedeck/schema"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults; environment
// variables prefixed KUBEDECK_ override file values.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("KUBEDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("kubeconfig", cfg.Kubeconfig)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("mock", cfg.Mock)
	v.SetDefault("clusters.client_ttl_minutes", cfg.Clusters.ClientTTLMinutes)
	v.SetDefault("clusters.watch_interval_seconds", cfg.Clusters.WatchIntervalSeconds)
	v.SetDefault("terminal.shell", cfg.Terminal.Shell)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.initial_kind", cfg.UI.InitialKind)
	v.SetDefault("ui.sidebar_width", cfg.UI.SidebarWidth)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, err
			}
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Clusters.ClientTTLMinutes < 0 {
		return fmt.Errorf("clusters.client_ttl_minutes must not be negative")
	}
	if cfg.Clusters.WatchIntervalSeconds < 0 {
		return fmt.Errorf("clusters.watch_interval_seconds must not be negative")
	}
	if cfg.UI.Theme != "" {
		if _, ok := schema.NormalizeThemeName(cfg.UI.Theme); !ok {
			return fmt.Errorf("unknown ui.theme %q", cfg.UI.Theme)
		}
	}
	if cfg.UI.InitialKind != "" && !schema.ResourceKind(cfg.UI.InitialKind).Known() {
		return fmt.Errorf("unknown ui.initial_kind %q", cfg.UI.InitialKind)
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Kubeconfig = expandEnv(cfg.Kubeconfig)
	cfg.StateDir = expandEnv(cfg.StateDir)
	cfg.Terminal.Shell = expandEnv(cfg.Terminal.Shell)
	cfg.Logging.File = expandEnv(cfg.Logging.File)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

// ServiceConfig maps the application config to the core service config.
func (c Config) ServiceConfig() schema.ServiceConfig {
	theme := schema.DefaultTheme
	if name, ok := schema.NormalizeThemeName(c.UI.Theme); ok {
		theme = name
	}
	return schema.ServiceConfig{
		KubeconfigPath: c.Kubeconfig,
		StateDir:       c.StateDir,
		Mock:           c.Mock,
		Shell:          c.Terminal.Shell,
		ClientTTL:      time.Duration(c.Clusters.ClientTTLMinutes) * time.Minute,
		WatchInterval:  time.Duration(c.Clusters.WatchIntervalSeconds) * time.Second,
		DefaultTheme:   theme,
	}
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
