package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/controllers"
	"github.com/moyoez/localshare-go/api/middlewares"
	"github.com/moyoez/localshare-go/api/notifyhub"
	"github.com/moyoez/localshare-go/tool"
)

// NewAdminRouter builds the loopback control API consumed by the desktop shell.
func NewAdminRouter(server *Server, hub *notifyhub.Hub) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middlewares.RequestLogger("Admin"))

	adminCtrl := controllers.NewAdminController(server.Context(), server)

	self := engine.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.GET("/shares", adminCtrl.GetShares)
		self.PUT("/shares", adminCtrl.PutShares)
		self.GET("/pin", adminCtrl.GetPin)
		self.POST("/pin", adminCtrl.GeneratePin)
		self.DELETE("/pin", adminCtrl.DisablePin)
		self.GET("/upload-config", adminCtrl.GetUploadConfig)
		self.PUT("/upload-config", adminCtrl.PutUploadConfig)
		self.GET("/status", adminCtrl.GetStatus)
		self.POST("/start", adminCtrl.Start)
		self.POST("/stop", adminCtrl.Stop)
		self.GET("/create-qr-code", adminCtrl.CreateQRCode)
		if hub != nil {
			self.GET("/status-ws", notifyhub.HandleStatusWS(hub))
		}
	}
	return engine
}

// AdminServer serves the control API on a loopback address.
type AdminServer struct {
	addr string
	srv  *http.Server
}

func NewAdminServer(addr string, server *Server, hub *notifyhub.Hub) *AdminServer {
	return &AdminServer{
		addr: addr,
		srv: &http.Server{
			Handler:           NewAdminRouter(server, hub),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start binds the admin address and serves in the background.
func (a *AdminServer) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	tool.DefaultLogger.Infof("[Admin] Control API listening on %s", ln.Addr())
	go func() {
		if err := a.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tool.DefaultLogger.Errorf("[Admin] Serve stopped: %v", err)
		}
	}()
	return nil
}

func (a *AdminServer) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}
