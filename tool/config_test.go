package tool

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moyoez/localshare-go/types"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != DefaultPort || cfg.Server.PortRange != DefaultPortRange {
		t.Errorf("Unexpected defaults %+v", cfg.Server)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected default config to be written: %v", err)
	}
}

func TestLoadConfigParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`server:
  port: 9100
  bindRetryDelay: 250ms
upload:
  enabled: true
  path: /tmp/in
pin:
  enabled: true
ui:
  language: zh
shares:
  - name: docs
    path: /home/me/docs
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9100 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Unexpected server config %+v", cfg.Server)
	}
	if d := ParseDurationOr(cfg.Server.BindRetryDelay, time.Second); d != 250*time.Millisecond {
		t.Errorf("Unexpected retry delay %s", d)
	}
	if !cfg.Upload.Enabled || cfg.Upload.MaxFileSize != DefaultMaxUploadSize {
		t.Errorf("Unexpected upload config %+v", cfg.Upload)
	}
	if cfg.UI.Language != "zh" || len(cfg.Shares) != 1 || cfg.Shares[0].Name != "docs" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyFlagOverrides(&cfg, types.Config{
		UsePort:      9200,
		UseUploadDir: "/tmp/up",
		UsePin:       true,
		UseShares:    []string{"music=/data/music", " a = /b "},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9200 || !cfg.Upload.Enabled || cfg.Upload.Path != "/tmp/up" || !cfg.Pin.Enabled {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if len(cfg.Shares) != 2 || cfg.Shares[1].Name != "a" || cfg.Shares[1].Path != "/b" {
		t.Errorf("Unexpected shares %+v", cfg.Shares)
	}

	if err := ApplyFlagOverrides(&cfg, types.Config{UseShares: []string{"nopath"}}); err == nil {
		t.Error("Expected error for malformed --share")
	}
}

func TestParseDurationOr(t *testing.T) {
	if d := ParseDurationOr("", time.Second); d != time.Second {
		t.Errorf("Expected default, got %s", d)
	}
	if d := ParseDurationOr("nonsense", 2*time.Second); d != 2*time.Second {
		t.Errorf("Expected default on invalid input, got %s", d)
	}
}
