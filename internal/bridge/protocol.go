package bridge

import "encoding/json"

// Backend method names
const (
	MethodGenerateThumbnails = "generate_thumbnails"
	MethodMergeImagesToPDF   = "merge_images_to_pdf"
	MethodOpenPath           = "open_path"
)

type request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type thumbnailParams struct {
	Images []string `json:"images"`
}

type thumbnail struct {
	Src    string `json:"src"`
	Base64 string `json:"base64"`
	Name   string `json:"name"`
}

type imageRef struct {
	Path string `json:"path"`
}

type mergeParams struct {
	Output string     `json:"output"`
	Images []imageRef `json:"images"`
}

type pathParams struct {
	Path string `json:"path"`
}

// RemoteError carries an error reported by the backend. Error returns the
// backend text unchanged.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}
