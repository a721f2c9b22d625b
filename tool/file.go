package tool

import (
	"fmt"
	"math"
	"net/url"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a size with two decimals and a 1024-based unit, e.g. "42.00 B".
// Negative or non-finite sizes render as "-".
func FormatBytes(size float64) string {
	if math.IsNaN(size) || math.IsInf(size, 0) || size < 0 {
		return "-"
	}
	i := 0
	for size >= 1024 && i < len(byteUnits)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[i])
}

// AttachmentDisposition builds a Content-Disposition header that forces a download.
// Non-ASCII names get a percent-encoded filename and an RFC 5987 filename* parameter.
func AttachmentDisposition(name string) string {
	escaped := url.PathEscape(name)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped)
}
