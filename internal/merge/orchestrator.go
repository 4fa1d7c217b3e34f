package merge

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/img2pdf/internal/model"
)

const (
	// DefaultFileName is the suggested name of the merged document
	DefaultFileName = "merged.pdf"
	// PDFSuffix is appended to destinations that lack it
	PDFSuffix = ".pdf"
)

// Result describes a completed merge.
type Result struct {
	Destination string
	Pages       int
	// ViewerErr is set when the merged file was written but could not be opened
	ViewerErr error
}

// Orchestrator runs merges of a working set. Only one merge may be in flight.
type Orchestrator struct {
	merger Merger
	viewer Viewer
	set    WorkingSet

	mu     sync.Mutex
	busy   bool
	onBusy func(bool)
}

// NewOrchestrator creates an orchestrator. viewer may be nil to skip opening the result.
func NewOrchestrator(merger Merger, viewer Viewer, set WorkingSet) *Orchestrator {
	return &Orchestrator{
		merger: merger,
		viewer: viewer,
		set:    set,
	}
}

// SetBusyCallback sets the function notified when a merge starts and ends
func (o *Orchestrator) SetBusyCallback(callback func(bool)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onBusy = callback
}

// Busy reports whether a merge is in flight
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Merge writes the working set to destination in its current order.
//
// An empty destination means the user cancelled the save prompt and yields
// model.ErrNoDestination without touching the backend. On backend failure the
// working set is left unchanged and a *model.MergeError carries the backend text.
// On success the file is opened in the viewer and the merged items leave the
// working set; a viewer failure is reported in Result.ViewerErr only.
func (o *Orchestrator) Merge(ctx context.Context, destination string) (Result, error) {
	if o.set.Len() == 0 {
		return Result{}, model.ErrEmptyWorkingSet
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return Result{}, model.ErrNoDestination
	}
	destination = EnsurePDFSuffix(destination)

	if !o.acquire() {
		return Result{}, model.ErrMergeInProgress
	}
	defer o.release()

	items := o.set.Snapshot()
	if len(items) == 0 {
		return Result{}, model.ErrEmptyWorkingSet
	}
	slog.Info("Merging images", "count", len(items), "destination", destination)

	if err := o.merger.MergeImagesToPDF(ctx, destination, items); err != nil {
		slog.Error("Merge failed", "destination", destination, "error", err)
		return Result{}, &model.MergeError{Destination: destination, Err: err}
	}

	result := Result{Destination: destination, Pages: len(items)}
	if o.viewer != nil {
		if err := o.viewer.OpenPath(ctx, destination); err != nil {
			slog.Warn("Failed to open merged file", "path", destination, "error", err)
			result.ViewerErr = &model.ViewerOpenError{Path: destination, Err: err}
		}
	}

	// Items staged while the backend was running are not in the file and stay.
	o.set.RemoveKeys(model.Keys(items))
	return result, nil
}

func (o *Orchestrator) acquire() bool {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return false
	}
	o.busy = true
	callback := o.onBusy
	o.mu.Unlock()

	if callback != nil {
		callback(true)
	}
	return true
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.busy = false
	callback := o.onBusy
	o.mu.Unlock()

	if callback != nil {
		callback(false)
	}
}

// EnsurePDFSuffix appends .pdf unless path already ends with it (any case)
func EnsurePDFSuffix(path string) string {
	if strings.EqualFold(filepath.Ext(path), PDFSuffix) {
		return path
	}
	return path + PDFSuffix
}

// DefaultDestination builds the suggested save path from a directory and file name.
func DefaultDestination(dir, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	}
	name = EnsurePDFSuffix(name)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
