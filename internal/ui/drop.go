package ui

import (
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
)

// FileScheme is the URI scheme of local files
const FileScheme = "file"

// DropTarget is the part of fyne.Window that delivers file drops
type DropTarget interface {
	SetOnDropped(func(fyne.Position, []fyne.URI))
}

// DropSubscription owns the window's single file-drop handler. A screen
// subscribes when it is shown and releases when it leaves; subscribing again
// replaces the previous handler so drops are never delivered twice.
type DropSubscription struct {
	target DropTarget

	mu      sync.Mutex
	handler func([]string)
	owner   string
}

// NewDropSubscription creates a subscription for target with no handler attached
func NewDropSubscription(target DropTarget) *DropSubscription {
	return &DropSubscription{target: target}
}

// Subscribe attaches handler on behalf of owner, replacing any active handler.
func (d *DropSubscription) Subscribe(owner string, handler func(paths []string)) {
	d.mu.Lock()
	previous := d.owner
	d.owner = owner
	d.handler = handler
	d.mu.Unlock()

	if previous != "" && previous != owner {
		slog.Debug("Drop handler replaced", "previous", previous, "owner", owner)
	}
	d.target.SetOnDropped(d.dispatch)
}

// Release detaches the handler if owner still holds the subscription.
func (d *DropSubscription) Release(owner string) {
	d.mu.Lock()
	if d.owner != owner {
		d.mu.Unlock()
		return
	}
	d.owner = ""
	d.handler = nil
	d.mu.Unlock()

	d.target.SetOnDropped(nil)
}

// Owner returns the owner of the active handler, empty when released
func (d *DropSubscription) Owner() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.owner
}

func (d *DropSubscription) dispatch(_ fyne.Position, uris []fyne.URI) {
	d.mu.Lock()
	handler := d.handler
	d.mu.Unlock()

	if handler == nil {
		return
	}
	handler(URIPaths(uris))
}

// URIPaths converts local file URIs to filesystem paths, dropping anything
// that is not a file URI
func URIPaths(uris []fyne.URI) []string {
	paths := make([]string, 0, len(uris))
	for _, uri := range uris {
		if uri == nil || uri.Scheme() != FileScheme {
			continue
		}
		paths = append(paths, uri.Path())
	}
	return paths
}
