package bridge

import (
	"context"

	"github.com/ytget/img2pdf/internal/model"
)

// Backend defines the operations exposed by the native backend.
type Backend interface {
	GenerateThumbnails(ctx context.Context, paths []string) ([]model.ImageItem, error)
	MergeImagesToPDF(ctx context.Context, output string, images []model.ImageItem) error
	OpenPath(ctx context.Context, path string) error
	Close() error
}
