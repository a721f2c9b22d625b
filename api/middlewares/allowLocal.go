package middlewares

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/tool"
)

// OnlyAllowLocal rejects any client that is not on a loopback address.
func OnlyAllowLocal(c *gin.Context) {
	if ip := net.ParseIP(c.ClientIP()); ip != nil && ip.IsLoopback() {
		c.Next()
		return
	}
	tool.DefaultLogger.Warnf("[Admin] Rejected non-local client %s", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusForbidden, tool.FastReturnError("Forbidden"))
}
