package types

// UploadConfig is the runtime upload switch and its target directory.
type UploadConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// UploadedFile describes a file that was moved into the upload directory.
type UploadedFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Success bool           `json:"success"`
	Files   []UploadedFile `json:"files"`
	Message string         `json:"message"`
	Failed  []string       `json:"failed,omitempty"`
}

// UploadConfigRequest is the admin body for PUT /upload-config.
type UploadConfigRequest struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}
