package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/moyoez/localshare-go/api"
	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/api/notifyhub"
	"github.com/moyoez/localshare-go/notify"
	"github.com/moyoez/localshare-go/share"
	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var flags *types.Config
	cmd := &cobra.Command{
		Use:   "localshare",
		Short: "Share local files and folders with devices on the same network",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), *flags)
		},
	}
	flags = tool.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, flags types.Config) error {
	tool.InitLogger()
	tool.SetLogMode(flags.Log)
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appCfg, err := tool.LoadConfig(flags.UseConfigPath)
	if err != nil {
		return err
	}
	if err := tool.ApplyFlagOverrides(&appCfg, flags); err != nil {
		return err
	}

	sc, err := newServerContext(appCfg)
	if err != nil {
		return err
	}

	server := api.NewServer(sc, api.Options{
		Host:       appCfg.Server.Host,
		Port:       appCfg.Server.Port,
		PortRange:  appCfg.Server.PortRange,
		RetryDelay: tool.ParseDurationOr(appCfg.Server.BindRetryDelay, tool.DefaultBindRetryDelay),
		StopGrace:  tool.ParseDurationOr(appCfg.Server.StopGrace, tool.DefaultStopGrace),
	})
	hub := notifyhub.New()
	server.Subscribe(hub)
	if appCfg.Notify.Socket != "" {
		server.Subscribe(notify.NewSocketObserver(appCfg.Notify.Socket))
	}

	admin := api.NewAdminServer(appCfg.Admin.Addr, server, hub)
	if err := admin.Start(); err != nil {
		return fmt.Errorf("start admin channel: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	tool.DefaultLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), tool.DefaultStopGrace)
	defer cancel()
	_ = server.Stop(shutdownCtx)
	if err := admin.Shutdown(shutdownCtx); err != nil {
		tool.DefaultLogger.Warnf("[Admin] Shutdown: %v", err)
	}
	return nil
}

func newServerContext(appCfg types.AppConfig) (*models.ServerContext, error) {
	registry := share.NewRegistry()
	registry.Replace(appCfg.Shares)

	opts := []models.GateOption{models.WithAttemptLimit(appCfg.Pin.AttemptsPerMinute)}
	if appCfg.Pin.SignCookie {
		opts = append(opts, models.WithSignedCookie())
	}
	gate := models.NewAccessGate(opts...)
	if appCfg.Pin.Enabled {
		pin, err := gate.Generate()
		if err != nil {
			return nil, err
		}
		tool.DefaultLogger.Infof("[Pin] Access PIN: %s", pin)
	}

	upload := models.NewUploadSettings(appCfg.Upload.MaxFileSize)
	if err := upload.Set(appCfg.Upload.Enabled, appCfg.Upload.Path); err != nil {
		return nil, err
	}

	return &models.ServerContext{
		Registry: registry,
		Gate:     gate,
		Upload:   upload,
		Language: appCfg.UI.Language,
	}, nil
}

