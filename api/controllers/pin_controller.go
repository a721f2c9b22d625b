package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/api/views"
	"github.com/moyoez/localshare-go/tool"
)

type PinController struct {
	sc *models.ServerContext
}

func NewPinController(sc *models.ServerContext) *PinController {
	return &PinController{sc: sc}
}

// Verify handles POST /verify-pin with form field "pin". With protection off no PIN matches.
func (ctrl *PinController) Verify(c *gin.Context) {
	m := views.For(ctrl.sc.Language)
	gate := ctrl.sc.Gate
	if !gate.Allow(c.ClientIP()) {
		tool.DefaultLogger.Warnf("[Pin] Too many attempts from %s", c.ClientIP())
		c.HTML(http.StatusTooManyRequests, views.PinPage, views.PageData{M: m, Error: m.PinThrottled})
		return
	}
	if !gate.Verify(c.PostForm("pin")) {
		tool.DefaultLogger.Infof("[Pin] Wrong PIN from %s", c.ClientIP())
		c.HTML(http.StatusOK, views.PinPage, views.PageData{M: m, Error: m.PinWrong})
		return
	}
	if err := gate.IssueCookie(c.Writer); err != nil {
		tool.DefaultLogger.Errorf("[Pin] Failed to issue cookie: %v", err)
		c.HTML(http.StatusInternalServerError, views.PinPage, views.PageData{M: m, Error: m.PinWrong})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
