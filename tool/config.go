package tool

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moyoez/localshare-go/types"
)

const (
	DefaultPort              = 8080
	DefaultPortRange         = 20
	DefaultBindRetryDelay    = time.Second
	DefaultStopGrace         = 10 * time.Second
	DefaultAdminAddr         = "127.0.0.1:8099"
	DefaultMaxUploadSize     = 100 << 20 // 100 MiB per item
	DefaultAttemptsPerMinute = 30
)

var ConfigPath = "config.yaml" // be aware that it can be changed, default to ./config.yaml

func DefaultConfig() types.AppConfig {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return types.AppConfig{
		Server: types.ServerConfig{
			Host:           "0.0.0.0",
			Port:           DefaultPort,
			PortRange:      DefaultPortRange,
			BindRetryDelay: DefaultBindRetryDelay.String(),
			StopGrace:      DefaultStopGrace.String(),
		},
		Admin: types.AdminConfig{Addr: DefaultAdminAddr},
		Upload: types.UploadFileConfig{
			Enabled:     false,
			Path:        cwd, // uploads land in the working directory unless configured
			MaxFileSize: DefaultMaxUploadSize,
		},
		Pin: types.PinConfig{
			AttemptsPerMinute: DefaultAttemptsPerMinute,
		},
		UI: types.UIConfig{Language: "en"},
	}
}

// LoadConfig reads path (or ConfigPath) into an AppConfig. A missing file is
// created with default values.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := DefaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %w", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	normalizeConfig(&cfg)
	return cfg, nil
}

func normalizeConfig(cfg *types.AppConfig) {
	def := DefaultConfig()
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.PortRange < 0 {
		cfg.Server.PortRange = 0
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Admin.Addr == "" {
		cfg.Admin.Addr = def.Admin.Addr
	}
	if cfg.Upload.MaxFileSize <= 0 {
		cfg.Upload.MaxFileSize = def.Upload.MaxFileSize
	}
	if cfg.Upload.Path == "" {
		cfg.Upload.Path = def.Upload.Path
	}
	if cfg.UI.Language == "" {
		cfg.UI.Language = def.UI.Language
	}
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyFlagOverrides copies non-zero CLI overrides onto cfg.
func ApplyFlagOverrides(cfg *types.AppConfig, flags types.Config) error {
	if flags.UsePort > 0 {
		cfg.Server.Port = flags.UsePort
	}
	if flags.UseUploadDir != "" {
		cfg.Upload.Enabled = true
		cfg.Upload.Path = flags.UseUploadDir
	}
	if flags.UsePin {
		cfg.Pin.Enabled = true
	}
	for _, raw := range flags.UseShares {
		name, path, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
			return fmt.Errorf("invalid --share value %q, want name=path", raw)
		}
		cfg.Shares = append(cfg.Shares, types.ShareEntry{Name: strings.TrimSpace(name), Path: strings.TrimSpace(path)})
	}
	return nil
}

// ParseDurationOr parses s, returning def when s is empty or invalid.
func ParseDurationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		DefaultLogger.Warnf("Invalid duration %q, using %s", s, def)
		return def
	}
	return d
}
