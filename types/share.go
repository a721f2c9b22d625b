package types

// ShareEntry maps a public share name to a host path.
type ShareEntry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// ListingRow is one line of a directory or root listing page.
type ListingRow struct {
	Name        string
	IsDir       bool
	Size        string
	BrowseURL   string // empty for files on the root page
	DownloadURL string
}

// Breadcrumb is one link of the directory listing trail.
type Breadcrumb struct {
	Name string
	URL  string
}
