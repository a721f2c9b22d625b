package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

const (
	uploadFieldName  = "file"
	uploadTempPrefix = ".localshare-"
	uploadTempSuffix = ".part"
)

var errFileTooLarge = errors.New("file exceeds upload size limit")

// UploadController accepts multipart uploads into the configured directory.
type UploadController struct {
	sc *models.ServerContext
	// placeMu serialises choosing a free name and renaming into it.
	placeMu sync.Mutex
}

func NewUploadController(sc *models.ServerContext) *UploadController {
	return &UploadController{sc: sc}
}

// spooled is a part already written to a temporary file in the upload directory.
type spooled struct {
	tempPath string
	name     string
	size     int64
}

// Upload handles POST /upload.
func (ctrl *UploadController) Upload(c *gin.Context) {
	settings := ctrl.sc.Upload.Get()
	if !settings.Enabled || settings.Path == "" {
		c.JSON(http.StatusForbidden, tool.FastReturnError("Upload is disabled"))
		return
	}

	files, err := ctrl.spool(c, settings.Path)
	if err != nil {
		tool.DefaultLogger.Errorf("[Upload] Failed to receive upload from %s: %v", c.ClientIP(), err)
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to process upload"))
		return
	}

	resp := types.UploadResponse{Success: true, Files: make([]types.UploadedFile, 0, len(files))}
	for _, f := range files {
		placed, err := ctrl.place(settings.Path, f)
		if err != nil {
			tool.DefaultLogger.Errorf("[Upload] Failed to store %s: %v", f.name, err)
			_ = os.Remove(f.tempPath)
			resp.Failed = append(resp.Failed, f.name)
			continue
		}
		resp.Files = append(resp.Files, placed)
		tool.DefaultLogger.Infof("[Upload] Received %s (%s) from %s", placed.Name, humanize.IBytes(uint64(placed.Size)), c.ClientIP())
	}
	resp.Message = fmt.Sprintf("Uploaded %d file(s)", len(resp.Files))
	c.JSON(http.StatusOK, resp)
}

// spool writes every "file" part to a temporary file. On any error all temporaries are removed.
func (ctrl *UploadController) spool(c *gin.Context, dir string) (files []spooled, err error) {
	defer func() {
		if err != nil {
			for _, f := range files {
				_ = os.Remove(f.tempPath)
			}
			files = nil
		}
	}()

	reader, err := c.Request.MultipartReader()
	if err != nil {
		return nil, err
	}
	limit := ctrl.sc.Upload.MaxFileSize()
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, err
		}
		if part.FormName() != uploadFieldName || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		f, err := ctrl.spoolPart(c, dir, sanitizeUploadName(part.FileName()), part, limit)
		_ = part.Close()
		if f.tempPath != "" {
			files = append(files, f)
		}
		if err != nil {
			return files, err
		}
	}
}

func (ctrl *UploadController) spoolPart(c *gin.Context, dir, name string, src io.Reader, limit int64) (spooled, error) {
	tempPath := filepath.Join(dir, uploadTempPrefix+tool.GenerateRandomUUID()+uploadTempSuffix)
	out, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return spooled{}, err
	}
	f := spooled{tempPath: tempPath, name: name}
	n, copyErr := tool.CopyWithContext(c.Request.Context(), out, io.LimitReader(src, limit+1))
	closeErr := out.Close()
	f.size = n
	switch {
	case copyErr != nil:
		return f, copyErr
	case closeErr != nil:
		return f, closeErr
	case n > limit:
		return f, fmt.Errorf("%s: %w (%s)", name, errFileTooLarge, humanize.IBytes(uint64(limit)))
	}
	return f, nil
}

// place renames a spooled file to a free name and publishes it as a share.
func (ctrl *UploadController) place(dir string, f spooled) (types.UploadedFile, error) {
	ctrl.placeMu.Lock()
	defer ctrl.placeMu.Unlock()

	final := tool.NextAvailablePath(dir, f.name)
	if err := os.Rename(f.tempPath, final); err != nil {
		return types.UploadedFile{}, err
	}
	name := filepath.Base(final)
	ctrl.sc.Registry.Put(name, final)
	return types.UploadedFile{Name: name, Size: f.size, Path: final}, nil
}

// sanitizeUploadName keeps only the last path element of a client supplied name.
func sanitizeUploadName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
