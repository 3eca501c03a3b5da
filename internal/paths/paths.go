// Package paths derives the output, minified and sourcemap file paths used
// by both build steps. All functions are pure; paths are recomputed on
// every run.
package paths

import (
	"path/filepath"
	"strings"
)

// MinSibling returns the minified sibling of an output path:
// dist/app.css -> dist/app.min.css. An extensionless path gets a bare
// ".min" suffix.
func MinSibling(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + ".min" + ext
}

// MapSibling returns the sourcemap path for an output file:
// dist/app.css -> dist/app.css.map.
func MapSibling(path string) string {
	return path + ".map"
}

// InDir places the base name of path inside dir:
// InDir("public/css", "dist/app.min.css") -> "public/css/app.min.css".
func InDir(dir, path string) string {
	return filepath.Join(dir, filepath.Base(path))
}
