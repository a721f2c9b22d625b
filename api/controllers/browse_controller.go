package controllers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/api/views"
	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

// BrowseController renders the root listing, directory pages and direct file downloads.
type BrowseController struct {
	sc *models.ServerContext
}

func NewBrowseController(sc *models.ServerContext) *BrowseController {
	return &BrowseController{sc: sc}
}

func (ctrl *BrowseController) Handle(c *gin.Context) {
	if c.Request.URL.Path == "/" {
		ctrl.root(c)
		return
	}
	shareName, rel, target, ok, err := resolveSharePath(ctrl.sc, c.Request.URL.Path)
	if errors.Is(err, tool.ErrForbidden) {
		tool.DefaultLogger.Warnf("[Browse] Rejected path %q from %s", c.Request.URL.Path, c.ClientIP())
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
	ctrl.directory(c, shareName, rel, target)
}

func (ctrl *BrowseController) root(c *gin.Context) {
	entries := ctrl.sc.Registry.List()
	rows := make([]types.ListingRow, 0, len(entries))
	for _, e := range entries {
		row := types.ListingRow{
			Name:        e.Name,
			Size:        "-",
			DownloadURL: shareURL("/download", e.Name),
		}
		if info, err := os.Stat(e.Path); err == nil {
			row.IsDir = info.IsDir()
			if row.IsDir {
				row.BrowseURL = shareURL("/", e.Name) + "/"
			} else {
				row.Size = tool.FormatBytes(float64(info.Size()))
			}
		}
		rows = append(rows, row)
	}
	c.HTML(http.StatusOK, views.RootPage, views.PageData{
		M:          views.For(ctrl.sc.Language),
		Address:    ctrl.sc.ServerAddress(),
		Rows:       rows,
		ShowUpload: ctrl.sc.Upload.Get().Enabled,
	})
}

func (ctrl *BrowseController) directory(c *gin.Context, shareName, rel, target string) {
	dirEntries, err := os.ReadDir(target)
	if err != nil {
		tool.DefaultLogger.Warnf("[Browse] Failed to read %s: %v", target, err)
		renderNotFound(c, ctrl.sc)
		return
	}
	rows := make([]types.ListingRow, 0, len(dirEntries))
	for _, entry := range dirEntries {
		childRel := path.Join(rel, entry.Name())
		row := types.ListingRow{
			Name:        entry.Name(),
			IsDir:       entry.IsDir(),
			Size:        "-",
			DownloadURL: shareURL("/download", shareName, childRel),
		}
		// dangling links and unreadable entries stay listed without a size
		info, statErr := os.Stat(filepath.Join(target, entry.Name()))
		if statErr == nil {
			row.IsDir = info.IsDir()
		}
		if row.IsDir {
			row.BrowseURL = shareURL("/", shareName, childRel) + "/"
		} else if statErr == nil {
			row.Size = tool.FormatBytes(float64(info.Size()))
		}
		rows = append(rows, row)
	}

	crumbs := []types.Breadcrumb{{Name: views.For(ctrl.sc.Language).RootHeading, URL: "/"}, {Name: shareName, URL: shareURL("/", shareName) + "/"}}
	heading := shareName
	if rel != "" {
		walked := ""
		for _, seg := range strings.Split(rel, "/") {
			walked = path.Join(walked, seg)
			crumbs = append(crumbs, types.Breadcrumb{Name: seg, URL: shareURL("/", shareName, walked) + "/"})
			heading = seg
		}
	}
	c.HTML(http.StatusOK, views.DirPage, views.PageData{
		M:           views.For(ctrl.sc.Language),
		Heading:     heading,
		Breadcrumbs: crumbs,
		Rows:        rows,
		ZipURL:      shareURL("/download", shareName, rel),
	})
}
