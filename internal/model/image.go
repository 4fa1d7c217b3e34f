package model

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
)

// Data URL fragments used by the backend for embedded thumbnails
const (
	DataURLPrefix  = "data:"
	DataURLBase64  = ";base64,"
	DefaultMIME    = "image/png"
	UnknownMIMEExt = ".bin"
)

// ImageItem represents one image staged for merging. Path is the unique key
// within a working set.
type ImageItem struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Thumbnail string `json:"base64"` // embedded data URL (data:image/png;base64,...)
}

// NewImageItem creates an item with the display name derived from the path
func NewImageItem(path, thumbnail string) ImageItem {
	return ImageItem{
		Path:      path,
		Name:      DisplayName(path),
		Thumbnail: thumbnail,
	}
}

// Key returns the working-set key of the item
func (it ImageItem) Key() string {
	return it.Path
}

// DisplayName returns the final path segment, supporting both / and \ separators
func DisplayName(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return filepath.Base(path)
	}
	return parts[len(parts)-1]
}

// HasThumbnail reports whether an embedded preview is present
func (it ImageItem) HasThumbnail() bool {
	return strings.HasPrefix(it.Thumbnail, DataURLPrefix)
}

// ThumbnailMIME returns the media type declared in the thumbnail data URL
func (it ImageItem) ThumbnailMIME() string {
	rest, ok := strings.CutPrefix(it.Thumbnail, DataURLPrefix)
	if !ok {
		return ""
	}
	mime, _, found := strings.Cut(rest, DataURLBase64)
	if !found || mime == "" {
		return DefaultMIME
	}
	return mime
}

// ThumbnailBytes decodes the embedded thumbnail. The backend emits a space
// after the comma, so surrounding whitespace is trimmed before decoding.
func (it ImageItem) ThumbnailBytes() ([]byte, error) {
	rest, ok := strings.CutPrefix(it.Thumbnail, DataURLPrefix)
	if !ok {
		return nil, fmt.Errorf("thumbnail is not a data URL: %s", it.Path)
	}
	_, payload, found := strings.Cut(rest, DataURLBase64)
	if !found {
		return nil, fmt.Errorf("thumbnail is not base64 encoded: %s", it.Path)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode thumbnail for %s: %w", it.Path, err)
	}
	return data, nil
}

// ThumbnailName returns a resource name for the decoded thumbnail
func (it ImageItem) ThumbnailName() string {
	ext := UnknownMIMEExt
	if mime := it.ThumbnailMIME(); strings.HasPrefix(mime, "image/") {
		ext = "." + strings.TrimPrefix(mime, "image/")
	}
	return strings.TrimSuffix(it.Name, filepath.Ext(it.Name)) + "-thumb" + ext
}

// Keys returns the keys of items in order
func Keys(items []ImageItem) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Path
	}
	return keys
}
