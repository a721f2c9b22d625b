package api

import (
	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/controllers"
	"github.com/moyoez/localshare-go/api/middlewares"
	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/api/views"
)

// NewRouter builds the public engine. Route order:
// POST /verify-pin, /download/*, POST /upload, then everything else behind the PIN gate.
func NewRouter(sc *models.ServerContext) *gin.Engine {
	engine := gin.New()
	// "/download" without a slash is an ordinary share name
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false
	engine.Use(gin.Recovery(), middlewares.RequestLogger("Server"))
	engine.SetHTMLTemplate(views.New())

	pinCtrl := controllers.NewPinController(sc)
	downloadCtrl := controllers.NewDownloadController(sc)
	uploadCtrl := controllers.NewUploadController(sc)
	browseCtrl := controllers.NewBrowseController(sc)

	engine.POST("/verify-pin", pinCtrl.Verify)
	engine.Any("/download/*path", downloadCtrl.Download)
	engine.POST("/upload", uploadCtrl.Upload)
	engine.NoRoute(middlewares.PinGate(sc), browseCtrl.Handle)
	return engine
}
