package tool

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// ErrForbidden is returned when a requested path resolves outside its share root.
var ErrForbidden = errors.New("forbidden")

// CleanRelPath takes a user path like "", ".", "/a/b", "a//b" and returns a
// slash-based relative path without a leading slash ("" means the root).
// ".." segments are kept so Contain can reject them.
func CleanRelPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}
	return path.Clean(p)
}

// Contain joins sub onto root and returns the absolute result, or ErrForbidden
// if the lexically cleaned target is neither root itself nor below it.
// Symlinks are not resolved and the filesystem is never touched.
func Contain(root, sub string) (string, error) {
	if strings.ContainsRune(sub, 0) {
		return "", ErrForbidden
	}
	// Abs only adds the working directory to a relative root.
	rootClean, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootClean, filepath.FromSlash(CleanRelPath(sub))))
	if target == rootClean {
		return target, nil
	}
	prefix := rootClean
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(target, prefix) {
		return "", ErrForbidden
	}
	return target, nil
}
