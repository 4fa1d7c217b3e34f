package merge

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/ytget/img2pdf/internal/collection"
	"github.com/ytget/img2pdf/internal/model"
)

type fakeMerger struct {
	mu     sync.Mutex
	err    error
	output string
	order  []string
	calls  int
	block  chan struct{}
	during func()
}

func (f *fakeMerger) MergeImagesToPDF(ctx context.Context, output string, images []model.ImageItem) error {
	if f.block != nil {
		<-f.block
	}
	if f.during != nil {
		f.during()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.output = output
	f.order = model.Keys(images)
	return f.err
}

type fakeViewer struct {
	err    error
	opened []string
}

func (f *fakeViewer) OpenPath(ctx context.Context, path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func newSet(paths ...string) *collection.Controller {
	c := collection.NewController()
	items := make([]model.ImageItem, 0, len(paths))
	for _, p := range paths {
		items = append(items, model.NewImageItem(p, ""))
	}
	c.Append(items)
	return c
}

func TestMerge_Success(t *testing.T) {
	set := newSet("/a.png", "/b.png", "/c.png")
	set.Reorder("/a.png", "/c.png")
	merger := &fakeMerger{}
	viewer := &fakeViewer{}
	o := NewOrchestrator(merger, viewer, set)

	result, err := o.Merge(context.Background(), "/out/doc.pdf")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if want := []string{"/b.png", "/c.png", "/a.png"}; !slices.Equal(merger.order, want) {
		t.Errorf("Merged order = %v, expected %v", merger.order, want)
	}
	if result.Pages != 3 || result.Destination != "/out/doc.pdf" {
		t.Errorf("Unexpected result %+v", result)
	}
	if len(viewer.opened) != 1 || viewer.opened[0] != "/out/doc.pdf" {
		t.Errorf("Viewer opened %v", viewer.opened)
	}
	if set.Len() != 0 {
		t.Errorf("Working set should be cleared after success, got %d items", set.Len())
	}
}

func TestMerge_FailureKeepsWorkingSet(t *testing.T) {
	set := newSet("/a.png", "/b.png", "/c.png")
	before := set.Snapshot()
	backendErr := errors.New("disk full: could not write /out/doc.pdf")
	viewer := &fakeViewer{}
	o := NewOrchestrator(&fakeMerger{err: backendErr}, viewer, set)

	_, err := o.Merge(context.Background(), "/out/doc.pdf")

	var mergeErr *model.MergeError
	if !errors.As(err, &mergeErr) {
		t.Fatalf("Expected *model.MergeError, got %v", err)
	}
	if err.Error() != backendErr.Error() {
		t.Errorf("Error text = %q, expected backend text %q", err.Error(), backendErr.Error())
	}
	if !slices.Equal(set.Snapshot(), before) {
		t.Errorf("Working set changed after failed merge: %v", set.Snapshot())
	}
	if len(viewer.opened) != 0 {
		t.Error("Viewer must not be opened after a failed merge")
	}
	if o.Busy() {
		t.Error("Busy flag should be cleared after failure")
	}
}

func TestMerge_ViewerFailureIsNotMergeFailure(t *testing.T) {
	set := newSet("/a.png")
	o := NewOrchestrator(&fakeMerger{}, &fakeViewer{err: errors.New("no viewer")}, set)

	result, err := o.Merge(context.Background(), "/out/doc.pdf")
	if err != nil {
		t.Fatalf("Merge() error = %v, expected success", err)
	}

	var viewerErr *model.ViewerOpenError
	if !errors.As(result.ViewerErr, &viewerErr) {
		t.Fatalf("Expected ViewerOpenError in result, got %v", result.ViewerErr)
	}
	if set.Len() != 0 {
		t.Error("Working set should be cleared even when the viewer fails")
	}
}

func TestMerge_KeepsItemsAddedWhileRunning(t *testing.T) {
	set := newSet("/a.png", "/b.png")
	merger := &fakeMerger{}
	merger.during = func() {
		set.AppendNew([]model.ImageItem{model.NewImageItem("/late.png", "")})
	}
	o := NewOrchestrator(merger, nil, set)

	result, err := o.Merge(context.Background(), "/out/doc.pdf")
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, expected 2", result.Pages)
	}
	if got := set.Keys(); !slices.Equal(got, []string{"/late.png"}) {
		t.Errorf("Remaining = %v, expected [/late.png]", got)
	}
}

type shrinkingSet struct {
	*collection.Controller
}

// Len reports a stale count, as if the set was emptied right after the check.
func (s shrinkingSet) Len() int { return 1 }

func TestMerge_EmptySnapshotSkipsBackend(t *testing.T) {
	merger := &fakeMerger{}
	o := NewOrchestrator(merger, nil, shrinkingSet{collection.NewController()})

	if _, err := o.Merge(context.Background(), "/out/doc.pdf"); !errors.Is(err, model.ErrEmptyWorkingSet) {
		t.Errorf("Merge() error = %v, expected ErrEmptyWorkingSet", err)
	}
	if merger.calls != 0 {
		t.Error("Backend must not be called with an empty snapshot")
	}
	if o.Busy() {
		t.Error("Busy flag should be released")
	}
}

func TestMerge_Guards(t *testing.T) {
	tests := []struct {
		name        string
		paths       []string
		destination string
		expected    error
	}{
		{"empty working set", nil, "/out/doc.pdf", model.ErrEmptyWorkingSet},
		{"cancelled save prompt", []string{"/a.png"}, "", model.ErrNoDestination},
		{"blank destination", []string{"/a.png"}, "   ", model.ErrNoDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newSet(tt.paths...)
			merger := &fakeMerger{}
			o := NewOrchestrator(merger, nil, set)

			_, err := o.Merge(context.Background(), tt.destination)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Merge() error = %v, expected %v", err, tt.expected)
			}
			if merger.calls != 0 {
				t.Error("Backend must not be called")
			}
			if set.Len() != len(tt.paths) {
				t.Error("Working set must be unchanged")
			}
		})
	}
}

func TestMerge_AppendsPDFSuffix(t *testing.T) {
	merger := &fakeMerger{}
	o := NewOrchestrator(merger, nil, newSet("/a.png"))

	if _, err := o.Merge(context.Background(), "/out/doc"); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merger.output != "/out/doc.pdf" {
		t.Errorf("Output = %s, expected /out/doc.pdf", merger.output)
	}
}

func TestMerge_BusyCallbackAndSingleFlight(t *testing.T) {
	merger := &fakeMerger{block: make(chan struct{})}
	o := NewOrchestrator(merger, nil, newSet("/a.png"))

	var mu sync.Mutex
	var states []bool
	started := make(chan struct{})
	o.SetBusyCallback(func(busy bool) {
		mu.Lock()
		states = append(states, busy)
		mu.Unlock()
		if busy {
			close(started)
		}
	})

	done := make(chan error, 1)
	go func() {
		_, err := o.Merge(context.Background(), "/out/doc.pdf")
		done <- err
	}()
	<-started

	if _, err := o.Merge(context.Background(), "/out/other.pdf"); !errors.Is(err, model.ErrMergeInProgress) {
		t.Errorf("Second merge error = %v, expected ErrMergeInProgress", err)
	}

	close(merger.block)
	if err := <-done; err != nil {
		t.Fatalf("First merge error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !slices.Equal(states, []bool{true, false}) {
		t.Errorf("Busy states = %v, expected [true false]", states)
	}
}

func TestEnsurePDFSuffix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"doc", "doc.pdf"},
		{"doc.pdf", "doc.pdf"},
		{"doc.PDF", "doc.PDF"},
		{"doc.png", "doc.png.pdf"},
	}

	for _, tt := range tests {
		if got := EnsurePDFSuffix(tt.input); got != tt.expected {
			t.Errorf("EnsurePDFSuffix(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestDefaultDestination(t *testing.T) {
	tests := []struct {
		dir, name string
		expected  string
	}{
		{"/home/u/Documents", "", filepath.Join("/home/u/Documents", DefaultFileName)},
		{"/home/u/Documents", "album", filepath.Join("/home/u/Documents", "album.pdf")},
		{"", "out.pdf", "out.pdf"},
	}

	for _, tt := range tests {
		if got := DefaultDestination(tt.dir, tt.name); got != tt.expected {
			t.Errorf("DefaultDestination(%q, %q) = %q, expected %q", tt.dir, tt.name, got, tt.expected)
		}
	}
}
