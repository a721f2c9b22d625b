package controllers

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/archive"
	"github.com/moyoez/localshare-go/tool"
)

// DownloadController serves /download/<share>/<sub...>: files as attachments,
// directories as zip archives.
type DownloadController struct {
	sc   *models.ServerContext
	fsys archive.FileSystem
}

func NewDownloadController(sc *models.ServerContext) *DownloadController {
	return &DownloadController{sc: sc, fsys: archive.OSFileSystem{}}
}

func (ctrl *DownloadController) Download(c *gin.Context) {
	_, _, target, ok, err := resolveSharePath(ctrl.sc, c.Param("path"))
	if errors.Is(err, tool.ErrForbidden) {
		tool.DefaultLogger.Warnf("[Download] Rejected path %q from %s", c.Param("path"), c.ClientIP())
		renderForbidden(c)
		return
	}
	if !ok {
		renderNotFound(c, ctrl.sc)
		return
	}
	info, err := os.Stat(target)
	if err != nil {
		renderNotFound(c, ctrl.sc)
		return
	}
	if !info.IsDir() {
		serveFile(c, ctrl.sc, target)
		return
	}

	name := filepath.Base(target)
	tool.DefaultLogger.Infof("[Download] Streaming %s.zip to %s", name, c.ClientIP())
	if _, err := archive.Stream(c.Request.Context(), c.Writer, ctrl.fsys, target, name); err != nil {
		if errors.Is(err, context.Canceled) {
			tool.DefaultLogger.Debugf("[Download] Client left during %s.zip", name)
			return
		}
		tool.DefaultLogger.Errorf("[Download] Archive %s aborted: %v", name, err)
	}
}
