package collection

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/ytget/img2pdf/internal/model"
)

// Controller owns the ordered working set for the review screen. Every
// mutation goes through it; callbacks run after the lock is released.
type Controller struct {
	items []model.ImageItem
	index map[string]struct{}
	mu    sync.RWMutex

	onUpdate  func([]model.ImageItem) // receives a snapshot after each change
	onEmptied func()                  // fired on Populated -> Empty
}

// NewController creates an empty controller
func NewController() *Controller {
	return &Controller{
		index: make(map[string]struct{}),
	}
}

// SetUpdateCallback sets the callback for working set changes
func (c *Controller) SetUpdateCallback(callback func([]model.ImageItem)) {
	c.mu.Lock()
	c.onUpdate = callback
	c.mu.Unlock()
}

// SetEmptiedCallback sets the callback for the working-set-emptied transition
func (c *Controller) SetEmptiedCallback(callback func()) {
	c.mu.Lock()
	c.onEmptied = callback
	c.mu.Unlock()
}

// Append adds items to the end without touching the order of existing ones.
// Items whose key is already present are skipped.
func (c *Controller) Append(items []model.ImageItem) int {
	return c.AppendNew(items)
}

// AppendNew appends the items whose key is not in the working set at the time
// of the call. Batches that were prepared before a suspension are reconciled
// against the current state here. Returns the number of items added.
func (c *Controller) AppendNew(items []model.ImageItem) int {
	c.mu.Lock()
	added := 0
	for _, it := range items {
		if _, exists := c.index[it.Path]; exists {
			continue
		}
		c.index[it.Path] = struct{}{}
		c.items = append(c.items, it)
		added++
	}
	c.mu.Unlock()

	if added > 0 {
		slog.Debug("working set appended", "added", added, "skipped", len(items)-added)
		c.notifyUpdate()
	}
	return added
}

// Remove removes the item with the given key; no-op if absent
func (c *Controller) Remove(key string) bool {
	c.mu.Lock()
	i := c.position(key)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	delete(c.index, key)
	emptied := len(c.items) == 0
	c.mu.Unlock()

	c.notifyUpdate()
	if emptied {
		c.notifyEmptied()
	}
	return true
}

// RemoveKeys removes every item whose key is listed, keeping the relative
// order of the rest. Returns the number removed.
func (c *Controller) RemoveKeys(keys []string) int {
	c.mu.Lock()
	before := len(c.items)
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := c.index[k]; ok {
			drop[k] = struct{}{}
			delete(c.index, k)
		}
	}
	if len(drop) > 0 {
		c.items = slices.DeleteFunc(c.items, func(it model.ImageItem) bool {
			_, ok := drop[it.Path]
			return ok
		})
	}
	removed := before - len(c.items)
	emptied := removed > 0 && len(c.items) == 0
	c.mu.Unlock()

	if removed > 0 {
		c.notifyUpdate()
	}
	if emptied {
		c.notifyEmptied()
	}
	return removed
}

// Reorder moves the item keyed from to the slot currently occupied by to,
// shifting the items in between by one. No-op when from == to or either key is absent.
func (c *Controller) Reorder(from, to string) bool {
	if from == to {
		return false
	}

	c.mu.Lock()
	src, dst := c.position(from), c.position(to)
	if src < 0 || dst < 0 {
		c.mu.Unlock()
		return false
	}
	moved := c.items[src]
	c.items = slices.Delete(c.items, src, src+1)
	c.items = slices.Insert(c.items, dst, moved)
	c.mu.Unlock()

	slog.Debug("working set reordered", "from", from, "to", to, "src", src, "dst", dst)
	c.notifyUpdate()
	return true
}

// Clear discards the whole working set
func (c *Controller) Clear() {
	c.mu.Lock()
	wasPopulated := len(c.items) > 0
	c.items = nil
	c.index = make(map[string]struct{})
	c.mu.Unlock()

	if wasPopulated {
		c.notifyUpdate()
		c.notifyEmptied()
	}
}

// Snapshot returns a copy of the working set in its current order
func (c *Controller) Snapshot() []model.ImageItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Keys returns the current keys in order; always reflects the live state
func (c *Controller) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.Keys(c.items)
}

// Contains reports whether key is in the working set
func (c *Controller) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[key]
	return ok
}

// Get returns the item for key
func (c *Controller) Get(key string) (model.ImageItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.position(key); i >= 0 {
		return c.items[i], true
	}
	return model.ImageItem{}, false
}

// Len returns the number of staged items
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// State returns the current working set state
func (c *Controller) State() model.WorkingSetState {
	return model.StateFor(c.Len())
}

// position must be called with the lock held
func (c *Controller) position(key string) int {
	if _, ok := c.index[key]; !ok {
		return -1
	}
	return slices.IndexFunc(c.items, func(it model.ImageItem) bool {
		return it.Path == key
	})
}

// notifyUpdate calls the update callback if set
func (c *Controller) notifyUpdate() {
	c.mu.RLock()
	callback := c.onUpdate
	c.mu.RUnlock()

	if callback != nil {
		callback(c.Snapshot())
	}
}

// notifyEmptied calls the emptied callback if set
func (c *Controller) notifyEmptied() {
	c.mu.RLock()
	callback := c.onEmptied
	c.mu.RUnlock()

	if callback != nil {
		callback()
	}
}
