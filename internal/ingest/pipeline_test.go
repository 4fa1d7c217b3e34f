package ingest

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/ytget/img2pdf/internal/model"
)

// fakeThumbnailer echoes the requested paths as items
type fakeThumbnailer struct {
	calls [][]string
	err   error
	drop  int // number of trailing items to omit
}

func (f *fakeThumbnailer) GenerateThumbnails(_ context.Context, paths []string) ([]model.ImageItem, error) {
	f.calls = append(f.calls, slices.Clone(paths))
	if f.err != nil {
		return nil, f.err
	}
	items := make([]model.ImageItem, 0, len(paths))
	for _, p := range paths[:len(paths)-f.drop] {
		items = append(items, model.ImageItem{Path: p, Thumbnail: "data:image/png;base64,AA=="})
	}
	return items, nil
}

type staticKeys []string

func (s staticKeys) Keys() []string { return s }

func TestPipeline_Ingest(t *testing.T) {
	thumbs := &fakeThumbnailer{}
	p := NewPipeline(thumbs, Options{Locale: "en"})

	raw := []string{"/x/img10.png", "/x/notes.txt", "/x/img2.PNG", "/x/img10.png", "/x/img1.jpg"}
	items, err := p.Ingest(context.Background(), raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{"/x/img1.jpg", "/x/img2.PNG", "/x/img10.png"}
	if !slices.Equal(model.Keys(items), expected) {
		t.Errorf("Expected %v, got %v", expected, model.Keys(items))
	}

	if len(thumbs.calls) != 1 || !slices.Equal(thumbs.calls[0], expected) {
		t.Errorf("Expected one backend call with sorted paths, got %v", thumbs.calls)
	}

	if items[0].Name != "img1.jpg" {
		t.Errorf("Expected name derived from path, got %q", items[0].Name)
	}
}

func TestPipeline_Extend_ExcludesLiveKeys(t *testing.T) {
	thumbs := &fakeThumbnailer{}
	p := NewPipeline(thumbs, Options{})

	items, err := p.Extend(context.Background(), []string{"/a.png", "/b.png"}, staticKeys{"/a.png"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !slices.Equal(model.Keys(items), []string{"/b.png"}) {
		t.Errorf("Expected only /b.png, got %v", model.Keys(items))
	}
}

func TestPipeline_InformationalErrors(t *testing.T) {
	thumbs := &fakeThumbnailer{}
	p := NewPipeline(thumbs, Options{})

	tests := []struct {
		name     string
		raw      []string
		live     KeySet
		expected error
	}{
		{"nothing selected", nil, nil, model.ErrNoFilesSelected},
		{"no images", []string{"/a.txt", "/b.pdf"}, nil, model.ErrNoSupportedImages},
		{"all already staged", []string{"/a.png"}, staticKeys{"/a.png"}, model.ErrAlreadyStaged},
		{"staged plus unsupported", []string{"/a.png", "/b.txt"}, staticKeys{"/a.png"}, model.ErrNoSupportedImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Extend(context.Background(), tt.raw, tt.live)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}

	if len(thumbs.calls) != 0 {
		t.Errorf("Backend must not be called, got %d calls", len(thumbs.calls))
	}
}

func TestPipeline_AcceptPDF(t *testing.T) {
	thumbs := &fakeThumbnailer{}
	p := NewPipeline(thumbs, Options{AcceptPDF: true})

	items, err := p.Ingest(context.Background(), []string{"/doc.pdf", "/a.png"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items with PDF accepted, got %d", len(items))
	}

	p.SetOptions(Options{AcceptPDF: false})
	if p.AcceptPDF() {
		t.Error("Expected AcceptPDF to be false after SetOptions")
	}
}

func TestPipeline_ThumbnailFailure(t *testing.T) {
	backendErr := errors.New("image decode failed")
	p := NewPipeline(&fakeThumbnailer{err: backendErr}, Options{})

	items, err := p.Ingest(context.Background(), []string{"/a.png", "/b.png"})
	if items != nil {
		t.Errorf("Expected no items from failed batch, got %v", items)
	}

	var te *model.ThumbnailError
	if !errors.As(err, &te) {
		t.Fatalf("Expected ThumbnailError, got %v", err)
	}
	if !errors.Is(err, backendErr) {
		t.Error("Expected ThumbnailError to wrap backend error")
	}
	if len(te.Paths) != 2 {
		t.Errorf("Expected 2 paths in error, got %v", te.Paths)
	}
}

func TestPipeline_ThumbnailCountMismatch(t *testing.T) {
	p := NewPipeline(&fakeThumbnailer{drop: 1}, Options{})

	_, err := p.Ingest(context.Background(), []string{"/a.png", "/b.png"})

	var te *model.ThumbnailError
	if !errors.As(err, &te) {
		t.Fatalf("Expected ThumbnailError for short response, got %v", err)
	}
}
