package models

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/moyoez/localshare-go/types"
)

// UploadSettings is the inbound upload switch and its target directory.
type UploadSettings struct {
	mu      sync.RWMutex
	enabled bool
	path    string
	maxSize int64
}

func NewUploadSettings(maxSize int64) *UploadSettings {
	return &UploadSettings{maxSize: maxSize}
}

// Set updates both fields together. A non-empty dir is created if missing; on failure
// the previous settings are kept.
func (u *UploadSettings) Set(enabled bool, dir string) error {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve upload dir: %w", err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("create upload dir: %w", err)
		}
		dir = abs
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.enabled = enabled
	u.path = dir
	return nil
}

func (u *UploadSettings) Get() types.UploadConfig {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return types.UploadConfig{Enabled: u.enabled, Path: u.path}
}

// MaxFileSize is the per-item byte limit for multipart parts.
func (u *UploadSettings) MaxFileSize() int64 {
	return u.maxSize
}
