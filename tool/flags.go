package tool

import (
	"github.com/spf13/pflag"

	"github.com/moyoez/localshare-go/types"
)

// BindFlags registers the CLI overrides on fs and returns the struct they fill.
func BindFlags(fs *pflag.FlagSet) *types.Config {
	cfg := &types.Config{}
	fs.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	fs.StringVar(&cfg.UseConfigPath, "config", "", "override config file path")
	fs.IntVar(&cfg.UsePort, "port", 0, "override base listening port")
	fs.StringVar(&cfg.UseUploadDir, "upload-dir", "", "enable uploads into this directory")
	fs.BoolVar(&cfg.UsePin, "pin", false, "generate an access PIN on startup")
	fs.StringArrayVar(&cfg.UseShares, "share", nil, "share a path as name=path (repeatable)")
	return cfg
}
