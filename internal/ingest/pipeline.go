package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/ytget/img2pdf/internal/model"
)

// Thumbnailer is the backend call that renders previews. It returns one item
// per input path in the same order.
type Thumbnailer interface {
	GenerateThumbnails(ctx context.Context, paths []string) ([]model.ImageItem, error)
}

// KeySet is a live view of the keys already staged in the working set
type KeySet interface {
	Keys() []string
}

// Options configures the ingestion policy
type Options struct {
	Locale    string // BCP 47 collation locale for file names
	AcceptPDF bool   // whether .pdf inputs pass the extension filter
}

// Pipeline converts raw paths into ordered image items
type Pipeline struct {
	thumbnailer Thumbnailer

	mu        sync.RWMutex
	locale    language.Tag
	acceptPDF bool
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(thumbnailer Thumbnailer, opts Options) *Pipeline {
	return &Pipeline{
		thumbnailer: thumbnailer,
		locale:      ParseLocale(opts.Locale),
		acceptPDF:   opts.AcceptPDF,
	}
}

// SetOptions updates the ingestion policy, e.g. after settings changed
func (p *Pipeline) SetOptions(opts Options) {
	locale := ParseLocale(opts.Locale)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.locale = locale
	p.acceptPDF = opts.AcceptPDF
}

// AcceptPDF reports whether PDF inputs are accepted
func (p *Pipeline) AcceptPDF() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.acceptPDF
}

// Ingest builds items for a fresh working set
func (p *Pipeline) Ingest(ctx context.Context, raw []string) ([]model.ImageItem, error) {
	return p.run(ctx, raw, nil)
}

// Extend builds items for files added to an existing working set. Paths already
// in live are excluded; the result is meant to be appended, never interleaved.
func (p *Pipeline) Extend(ctx context.Context, raw []string, live KeySet) ([]model.ImageItem, error) {
	var existing []string
	if live != nil {
		existing = live.Keys()
	}
	return p.run(ctx, raw, existing)
}

// Prepare runs the synchronous steps: de-duplication, filtering and sorting
func (p *Pipeline) Prepare(raw, existing []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, model.ErrNoFilesSelected
	}

	p.mu.RLock()
	locale, acceptPDF := p.locale, p.acceptPDF
	p.mu.RUnlock()

	unique := Deduplicate(raw, existing)
	if len(unique) == 0 {
		slog.Info("selection already staged", "selected", len(raw))
		return nil, model.ErrAlreadyStaged
	}
	supported := FilterSupported(unique, acceptPDF)
	if len(supported) == 0 {
		slog.Info("no supported images in selection", "selected", len(raw), "new", len(unique))
		return nil, model.ErrNoSupportedImages
	}

	return NaturalSort(supported, locale), nil
}

func (p *Pipeline) run(ctx context.Context, raw, existing []string) ([]model.ImageItem, error) {
	paths, err := p.Prepare(raw, existing)
	if err != nil {
		return nil, err
	}

	slog.Debug("generating thumbnails", "count", len(paths))
	items, err := p.thumbnailer.GenerateThumbnails(ctx, paths)
	if err != nil {
		return nil, &model.ThumbnailError{Paths: paths, Err: err}
	}
	if len(items) != len(paths) {
		return nil, &model.ThumbnailError{
			Paths: paths,
			Err:   fmt.Errorf("backend returned %d thumbnails for %d images", len(items), len(paths)),
		}
	}

	out := make([]model.ImageItem, len(paths))
	for i, path := range paths {
		item := items[i]
		// Keys come from the request so the order is ours, not the backend's.
		item.Path = path
		if item.Name == "" {
			item.Name = model.DisplayName(path)
		}
		out[i] = item
	}
	return out, nil
}
