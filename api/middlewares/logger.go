package middlewares

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/tool"
)

// RequestLogger writes one access line per request to the shared logger.
func RequestLogger(tag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		tool.DefaultLogger.Debugf("[%s] %s %s %d %s %s %s", tag, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), humanize.IBytes(uint64(size)), time.Since(start).Round(time.Millisecond), c.ClientIP())
	}
}
