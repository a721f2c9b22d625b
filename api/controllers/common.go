package controllers

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/api/views"
	"github.com/moyoez/localshare-go/tool"
)

// resolveSharePath maps "/<share>/<sub...>" onto the host filesystem.
// ok is false when the share is unknown; err is tool.ErrForbidden on traversal.
func resolveSharePath(sc *models.ServerContext, urlPath string) (shareName, rel, target string, ok bool, err error) {
	trimmed := strings.TrimPrefix(urlPath, "/")
	shareName, rest, _ := strings.Cut(trimmed, "/")
	if shareName == "" {
		return "", "", "", false, nil
	}
	root, found := sc.Registry.Resolve(shareName)
	if !found {
		return shareName, "", "", false, nil
	}
	target, err = tool.Contain(root, rest)
	if err != nil {
		return shareName, "", "", true, err
	}
	return shareName, tool.CleanRelPath(rest), target, true, nil
}

// shareURL builds an escaped URL path from prefix and raw segments.
func shareURL(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		for _, part := range strings.Split(s, "/") {
			if part == "" {
				continue
			}
			if !strings.HasSuffix(b.String(), "/") {
				b.WriteByte('/')
			}
			b.WriteString(url.PathEscape(part))
		}
	}
	return b.String()
}

func renderNotFound(c *gin.Context, sc *models.ServerContext) {
	c.HTML(http.StatusNotFound, views.NotFoundPage, views.PageData{
		M:    views.For(sc.Language),
		Path: c.Request.URL.Path,
	})
}

func renderForbidden(c *gin.Context) {
	c.String(http.StatusForbidden, "Forbidden")
}

// serveFile sends target as an attachment. Range and conditional requests are honoured.
func serveFile(c *gin.Context, sc *models.ServerContext, target string) {
	f, err := os.Open(target)
	if err != nil {
		tool.DefaultLogger.Warnf("[Download] Failed to open %s: %v", target, err)
		renderNotFound(c, sc)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		renderNotFound(c, sc)
		return
	}
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", tool.AttachmentDisposition(filepath.Base(target)))
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
