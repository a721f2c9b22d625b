package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

// Lifecycle is the part of the public server the admin channel drives.
type Lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() types.ServerStatus
}

// AdminController serves the loopback-only control API used by the desktop shell.
type AdminController struct {
	sc     *models.ServerContext
	server Lifecycle
}

func NewAdminController(sc *models.ServerContext, server Lifecycle) *AdminController {
	return &AdminController{sc: sc, server: server}
}

// PutShares replaces the whole share set. PUT /shares
func (ctrl *AdminController) PutShares(c *gin.Context) {
	var entries []types.ShareEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	ctrl.sc.Registry.Replace(entries)
	tool.DefaultLogger.Infof("[Admin] Share set replaced, %d entries", ctrl.sc.Registry.Len())
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.sc.Registry.List()))
}

func (ctrl *AdminController) GetShares(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.sc.Registry.List()))
}

func (ctrl *AdminController) GeneratePin(c *gin.Context) {
	if _, err := ctrl.sc.Gate.Generate(); err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to generate PIN: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.sc.Gate.Status()))
}

func (ctrl *AdminController) DisablePin(c *gin.Context) {
	ctrl.sc.Gate.Disable()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.sc.Gate.Status()))
}

func (ctrl *AdminController) GetPin(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.sc.Gate.Status()))
}

func (ctrl *AdminController) GetUploadConfig(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.sc.Upload.Get()))
}

func (ctrl *AdminController) PutUploadConfig(c *gin.Context) {
	var req types.UploadConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if err := ctrl.sc.Upload.Set(req.Enabled, req.Path); err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError(err.Error()))
		return
	}
	cfg := ctrl.sc.Upload.Get()
	tool.DefaultLogger.Infof("[Admin] Upload enabled=%v dir=%s", cfg.Enabled, cfg.Path)
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(cfg))
}

func (ctrl *AdminController) GetStatus(c *gin.Context) {
	pin := ctrl.sc.Gate.Status()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(types.AdminStatusResponse{
		ServerStatus: ctrl.server.Status(),
		Pin:          pin.Pin,
		PinEnabled:   pin.Enabled,
	}))
}

// Start (re)starts the public server; it returns once the port is bound or binding failed.
func (ctrl *AdminController) Start(c *gin.Context) {
	if err := ctrl.server.Start(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to start server: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.server.Status()))
}

func (ctrl *AdminController) Stop(c *gin.Context) {
	if err := ctrl.server.Stop(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to stop server: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(ctrl.server.Status()))
}
