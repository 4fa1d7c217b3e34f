package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/img2pdf/internal/drag"
	"github.com/ytget/img2pdf/internal/model"
)

// ImageTile renders one working set item in the review grid and forwards
// pointer gestures to the shared drag engine.
type ImageTile struct {
	widget.BaseWidget

	item         model.ImageItem
	engine       *drag.Engine
	localization *Localization
	locked       bool

	// UI components
	image      *canvas.Image
	nameLabel  *widget.Label
	openBtn    *widget.Button
	removeBtn  *widget.Button
	background *canvas.Rectangle
	overlay    *canvas.Rectangle

	// Callbacks
	onOpen   func(key string)
	onRemove func(key string)
}

var (
	_ desktop.Mouseable = (*ImageTile)(nil)
	_ fyne.Draggable    = (*ImageTile)(nil)
)

// NewImageTile creates a tile for item
func NewImageTile(item model.ImageItem, engine *drag.Engine, localization *Localization) *ImageTile {
	t := &ImageTile{
		engine:       engine,
		localization: localization,
	}
	t.ExtendBaseWidget(t)
	t.createUI()
	t.SetItem(item)
	return t
}

// SetCallbacks sets the per-item action callbacks
func (t *ImageTile) SetCallbacks(onOpen, onRemove func(key string)) {
	t.onOpen = onOpen
	t.onRemove = onRemove
}

// Key returns the key of the rendered item
func (t *ImageTile) Key() string {
	return t.item.Key()
}

// SetItem replaces the rendered item
func (t *ImageTile) SetItem(item model.ImageItem) {
	changed := t.item != item
	t.item = item
	if !changed && t.image.Resource != nil {
		return
	}
	t.image.Resource = thumbnailResource(item)
	t.image.Refresh()
	t.nameLabel.SetText(item.Name)
}

// SetLocked disables gestures and actions, used while a merge is in flight
func (t *ImageTile) SetLocked(locked bool) {
	t.locked = locked
	if locked {
		t.openBtn.Disable()
		t.removeBtn.Disable()
	} else {
		t.openBtn.Enable()
		t.removeBtn.Enable()
	}
}

// SetDragging toggles the dragged-item highlight
func (t *ImageTile) SetDragging(dragging bool) {
	if dragging {
		t.overlay.Show()
	} else {
		t.overlay.Hide()
	}
	t.overlay.Refresh()
}

// MouseDown starts a gesture on the primary button
func (t *ImageTile) MouseDown(ev *desktop.MouseEvent) {
	if t.locked || t.engine == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	t.engine.Press(t.Key(), ev.AbsolutePosition)
}

// MouseUp ends the gesture; below the drag threshold it is a plain click
func (t *ImageTile) MouseUp(ev *desktop.MouseEvent) {
	if t.engine == nil || t.engine.Key() != t.Key() {
		return
	}
	t.release(ev.AbsolutePosition)
}

// Dragged feeds pointer movement to the engine
func (t *ImageTile) Dragged(ev *fyne.DragEvent) {
	if t.engine == nil || t.engine.Key() != t.Key() {
		return
	}
	t.engine.Move(ev.AbsolutePosition)
}

// DragEnd releases at the last reported position
func (t *ImageTile) DragEnd() {
	if t.engine == nil || t.engine.Key() != t.Key() {
		return
	}
	t.release(t.engine.Current())
}

func (t *ImageTile) release(at fyne.Position) {
	if from, to, ok := t.engine.Release(at); ok {
		slog.Debug("Reordered by drag", "from", from, "to", to)
	}
}

// CreateRenderer creates the widget renderer
func (t *ImageTile) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(t.openBtn, t.removeBtn)
	footer := container.NewBorder(nil, nil, nil, actions, t.nameLabel)
	content := container.NewBorder(nil, footer, nil, nil, t.image)
	return widget.NewSimpleRenderer(container.NewStack(t.background, container.NewPadded(content), t.overlay))
}

// MinSize keeps tiles uniform in the grid
func (t *ImageTile) MinSize() fyne.Size {
	return fyne.NewSize(TileWidth, TileHeight)
}

// createUI creates the UI components
func (t *ImageTile) createUI() {
	t.image = canvas.NewImageFromResource(nil)
	t.image.FillMode = canvas.ImageFillContain
	t.image.SetMinSize(fyne.NewSize(TileWidth-2*theme.Padding(), ThumbnailHeight))

	t.nameLabel = widget.NewLabel("")
	t.nameLabel.Truncation = fyne.TextTruncateEllipsis

	t.openBtn = widget.NewButtonWithIcon("", theme.VisibilityIcon(), func() {
		if t.onOpen != nil {
			t.onOpen(t.Key())
		}
	})
	t.openBtn.Importance = widget.LowImportance

	t.removeBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if t.onRemove != nil {
			t.onRemove(t.Key())
		}
	})
	t.removeBtn.Importance = widget.LowImportance

	t.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	t.background.StrokeColor = theme.Color(ColorNameTileBorder)
	t.background.StrokeWidth = theme.Size(SizeNameTileBorder)
	t.background.CornerRadius = theme.Size(SizeNameTileRadius)

	t.overlay = canvas.NewRectangle(theme.Color(ColorNameDragSource))
	t.overlay.CornerRadius = theme.Size(SizeNameTileRadius)
	t.overlay.Hide()
}

// thumbnailResource decodes the embedded preview, falling back to a generic icon
func thumbnailResource(item model.ImageItem) fyne.Resource {
	if !item.HasThumbnail() {
		return theme.FileImageIcon()
	}
	data, err := item.ThumbnailBytes()
	if err != nil {
		slog.Warn("Invalid thumbnail data", "path", item.Path, "error", err)
		return theme.FileImageIcon()
	}
	return fyne.NewStaticResource(item.ThumbnailName(), data)
}

// hitTestTiles returns the key of the tile containing the absolute position at.
// locate reports a tile's absolute top-left corner.
func hitTestTiles(at fyne.Position, tiles []*ImageTile, locate func(fyne.CanvasObject) fyne.Position) (string, bool) {
	for _, tile := range tiles {
		if tile == nil || !tile.Visible() {
			continue
		}
		origin := locate(tile)
		size := tile.Size()
		if at.X >= origin.X && at.X < origin.X+size.Width &&
			at.Y >= origin.Y && at.Y < origin.Y+size.Height {
			return tile.Key(), true
		}
	}
	return "", false
}
