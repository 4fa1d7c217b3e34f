package ingest

import (
	"path/filepath"
	"slices"
	"strings"
)

// Supported input extensions, lower case without the dot
var (
	ImageExtensions = []string{"png", "jpg", "jpeg"}
	PDFExtension    = "pdf"
)

// Extensions returns the accepted extensions for the given PDF policy
func Extensions(acceptPDF bool) []string {
	exts := slices.Clone(ImageExtensions)
	if acceptPDF {
		exts = append(exts, PDFExtension)
	}
	return exts
}

// DotExtensions returns Extensions with a leading dot, as file dialogs expect
func DotExtensions(acceptPDF bool) []string {
	exts := Extensions(acceptPDF)
	for i, ext := range exts {
		exts[i] = "." + ext
	}
	return exts
}

// IsSupported reports whether path has an accepted extension (case-insensitive)
func IsSupported(path string, acceptPDF bool) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	return slices.Contains(Extensions(acceptPDF), ext)
}

// FilterSupported keeps only paths with an accepted extension, in order
func FilterSupported(paths []string, acceptPDF bool) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsSupported(p, acceptPDF) {
			out = append(out, p)
		}
	}
	return out
}
