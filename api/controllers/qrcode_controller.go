package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/moyoez/localshare-go/tool"
)

const (
	defaultQRSize = 200
	maxQRSize     = 512
)

// CreateQRCode returns a PNG QR code of the public share URL, or of ?data= when given.
// GET ?size=200x200
func (ctrl *AdminController) CreateQRCode(c *gin.Context) {
	data := c.Query("data")
	if data == "" {
		addr := ctrl.server.Status().Address
		if addr == "" {
			c.JSON(http.StatusConflict, tool.FastReturnError("Server is not running"))
			return
		}
		data = "http://" + addr
	}

	size := parseSize(c.Query("size"))
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	png, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// parseSize parses size from "200x200" or "200" and returns the pixel dimension.
func parseSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "x"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
