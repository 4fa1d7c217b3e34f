package merge

import (
	"context"

	"github.com/ytget/img2pdf/internal/model"
)

// Merger produces a PDF from images in the given order.
type Merger interface {
	MergeImagesToPDF(ctx context.Context, output string, images []model.ImageItem) error
}

// Viewer opens a file with the system default application.
type Viewer interface {
	OpenPath(ctx context.Context, path string) error
}

// WorkingSet is the part of the collection controller the orchestrator needs.
type WorkingSet interface {
	Snapshot() []model.ImageItem
	Len() int
	RemoveKeys(keys []string) int
}
