package constants

import (
	"path/filepath"
	"strings"
)

// AllowedExtensions holds the file extensions accepted for analysis.
// The document family is PDF-only.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether a filename carries a .pdf extension.
func IsPDF(name string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(name))]
	return ok
}
