package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/api/views"
)

// PinGate shows the PIN form instead of the page while protection is on and the
// client has no pin-verified cookie.
func PinGate(sc *models.ServerContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sc.Gate.Enabled() || sc.Gate.IsVerified(c.Request) {
			c.Next()
			return
		}
		c.HTML(http.StatusOK, views.PinPage, views.PageData{M: views.For(sc.Language)})
		c.Abort()
	}
}
