package ui

import (
	"context"
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/img2pdf/internal/collection"
	"github.com/ytget/img2pdf/internal/config"
	"github.com/ytget/img2pdf/internal/drag"
	"github.com/ytget/img2pdf/internal/ingest"
	"github.com/ytget/img2pdf/internal/merge"
	"github.com/ytget/img2pdf/internal/model"
	"github.com/ytget/img2pdf/internal/platform"
)

// Drop subscription owners
const (
	ScreenSelection = "selection"
	ScreenReview    = "review"
)

// Services are the backend operations the UI depends on
type Services struct {
	Thumbnailer ingest.Thumbnailer
	Merger      merge.Merger
	Viewer      merge.Viewer
}

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	viewer       merge.Viewer

	pipeline     *ingest.Pipeline
	collection   *collection.Controller
	engine       *drag.Engine
	orchestrator *merge.Orchestrator
	drops        *DropSubscription

	screen string
	busy   bool

	// Selection screen
	selectionView   fyne.CanvasObject
	dropHintLabel   *widget.Label
	selectImageBtn  *widget.Button
	selectFolderBtn *widget.Button

	// Review screen
	reviewView  fyne.CanvasObject
	grid        *fyne.Container
	tiles       map[string]*ImageTile
	order       []*ImageTile
	countLabel  *widget.Label
	hintLabel   *widget.Label
	addBtn      *widget.Button
	addDirBtn   *widget.Button
	clearBtn    *widget.Button
	mergeBtn    *widget.Button
	settingsBtn *widget.Button

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationSeq       int
}

// NewRootUI creates and initializes the main UI
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, services Services) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		localization: localization,
		viewer:       services.Viewer,
		pipeline:     ingest.NewPipeline(services.Thumbnailer, settings.GetIngestOptions()),
		collection:   collection.NewController(),
		drops:        NewDropSubscription(window),
		tiles:        make(map[string]*ImageTile),
	}
	ui.engine = drag.NewEngine(ui.collection, ui.hitTest)
	ui.orchestrator = merge.NewOrchestrator(services.Merger, services.Viewer, ui.collection)

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.collection.SetUpdateCallback(func(items []model.ImageItem) {
		fyne.Do(func() { ui.renderTiles(items) })
	})
	ui.collection.SetEmptiedCallback(func() {
		fyne.Do(ui.showSelection)
	})
	ui.orchestrator.SetBusyCallback(func(busy bool) {
		fyne.Do(func() { ui.setBusy(busy) })
	})
	ui.engine.SetDragCallback(ui.onDragChanged)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.selectionView = ui.createSelectionView()
	ui.reviewView = ui.createReviewView()

	ui.showSelection()
	slog.Debug("UI setup completed")
}

func (ui *RootUI) createSelectionView() fyne.CanvasObject {
	ui.dropHintLabel = widget.NewLabelWithStyle(ui.localization.GetText(KeyDropHint), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	ui.selectImageBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeySelectImage), theme.FileImageIcon(), ui.onSelectImage)
	ui.selectImageBtn.Importance = widget.HighImportance
	ui.selectFolderBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeySelectFolder), theme.FolderOpenIcon(), ui.onSelectFolder)

	dropIcon := widget.NewIcon(theme.DownloadIcon())
	zone := container.NewVBox(
		container.NewCenter(dropIcon),
		ui.dropHintLabel,
		container.NewCenter(container.NewHBox(ui.selectImageBtn, ui.selectFolderBtn)),
	)

	spacer := canvasSpacer(DropZoneMinWidth, DropZoneMinHeight)
	return container.NewCenter(container.NewStack(spacer, container.NewCenter(zone)))
}

func (ui *RootUI) createReviewView() fyne.CanvasObject {
	ui.grid = container.New(layout.NewGridWrapLayout(fyne.NewSize(TileWidth, TileHeight)))

	ui.countLabel = widget.NewLabel("")
	ui.hintLabel = widget.NewLabel(ui.localization.GetText(KeyReorderHint))
	ui.hintLabel.Importance = widget.LowImportance

	ui.addBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyAddImages), theme.ContentAddIcon(), ui.onSelectImage)
	ui.addDirBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyAddFolder), theme.FolderOpenIcon(), ui.onSelectFolder)
	ui.clearBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyClearAll), theme.ContentClearIcon(), ui.onClearAll)
	ui.mergeBtn = widget.NewButtonWithIcon(ui.localization.GetText(KeyMerge), theme.DocumentSaveIcon(), ui.onMergeClick)
	ui.mergeBtn.Importance = widget.HighImportance
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(ui.settingsBtn, ui.countLabel, ui.hintLabel),
		container.NewHBox(ui.addBtn, ui.addDirBtn, ui.clearBtn, ui.mergeBtn),
	)

	return container.NewBorder(toolbar, nil, nil, nil, container.NewVScroll(ui.grid))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	selectItem := fyne.NewMenuItem(ui.localization.GetText(KeySelectImage), ui.onSelectImage)
	folderItem := fyne.NewMenuItem(ui.localization.GetText(KeySelectFolder), ui.onSelectFolder)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), selectItem, folderItem, fyne.NewMenuItemSeparator(), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.dropHintLabel.SetText(l.GetText(KeyDropHint))
	ui.selectImageBtn.SetText(l.GetText(KeySelectImage))
	ui.selectFolderBtn.SetText(l.GetText(KeySelectFolder))

	ui.hintLabel.SetText(l.GetText(KeyReorderHint))
	ui.addBtn.SetText(l.GetText(KeyAddImages))
	ui.addDirBtn.SetText(l.GetText(KeyAddFolder))
	ui.clearBtn.SetText(l.GetText(KeyClearAll))
	ui.mergeBtn.SetText(l.GetText(KeyMerge))
	ui.countLabel.SetText(l.Format(KeyImageCount, ui.collection.Len()))
}

// showSelection switches to the selection screen
func (ui *RootUI) showSelection() {
	if ui.screen == ScreenSelection {
		return
	}
	ui.engine.Cancel()
	if ui.screen != "" {
		ui.drops.Release(ui.screen)
	}
	ui.screen = ScreenSelection
	ui.drops.Subscribe(ScreenSelection, ui.onDropped)
	ui.window.SetContent(container.NewBorder(ui.notificationContainer, nil, nil, nil, ui.selectionView))
}

// showReview switches to the review screen
func (ui *RootUI) showReview() {
	if ui.screen == ScreenReview {
		return
	}
	ui.drops.Release(ui.screen)
	ui.screen = ScreenReview
	ui.drops.Subscribe(ScreenReview, ui.onDropped)
	ui.window.SetContent(container.NewBorder(ui.notificationContainer, nil, nil, nil, ui.reviewView))
}

// Open ingests files or folders given on the command line
func (ui *RootUI) Open(paths []string) {
	if len(paths) == 0 {
		return
	}
	ui.ingest(platform.ExpandPaths(paths))
}

// onDropped handles files dropped on the window
func (ui *RootUI) onDropped(paths []string) {
	slog.Debug("Files dropped", "count", len(paths), "screen", ui.screen)
	if ui.busy {
		ui.showNotification(ui.localization.GetText(KeyMergeInProgress), false)
		return
	}
	ui.ingest(platform.ExpandPaths(paths))
}

// onSelectImage opens the single-file picker
func (ui *RootUI) onSelectImage() {
	if ui.busy {
		return
	}
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.ingest([]string{path})
	}, ui.window)
	picker.SetFilter(storage.NewExtensionFileFilter(ingest.DotExtensions(ui.pipeline.AcceptPDF())))
	if dir, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetOutputDirectory())); err == nil {
		picker.SetLocation(dir)
	}
	picker.Show()
}

// onSelectFolder ingests every file in a chosen folder
func (ui *RootUI) onSelectFolder() {
	if ui.busy {
		return
	}
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if dir == nil {
			return
		}
		uris, err := dir.List()
		if err != nil {
			ui.showError(err)
			return
		}
		ui.ingest(URIPaths(uris))
	}, ui.window)
}

// ingest runs the pipeline off the UI goroutine and appends the resulting
// batch. The append re-checks the live working set, so overlapping ingestions
// never duplicate or resurrect items.
func (ui *RootUI) ingest(paths []string) {
	if len(paths) == 0 {
		ui.showNotification(ui.localization.GetText(KeyNoFilesSelected), false)
		return
	}

	ui.showNotification(ui.localization.GetText(KeyLoadingThumbnails), true)
	go func() {
		items, err := ui.pipeline.Extend(ui.ctx, paths, ui.collection)
		fyne.Do(func() { ui.applyIngested(items, err) })
	}()
}

func (ui *RootUI) applyIngested(items []model.ImageItem, err error) {
	if err != nil {
		ui.hideNotification()
		ui.showIngestError(err)
		return
	}

	added := ui.collection.AppendNew(items)
	ui.hideNotification()
	slog.Info("Images ingested", "added", added, "total", ui.collection.Len())
	if ui.collection.Len() > 0 {
		ui.showReview()
	}
}

func (ui *RootUI) showIngestError(err error) {
	l := ui.localization
	var thumbErr *model.ThumbnailError
	switch {
	case errors.Is(err, model.ErrNoFilesSelected):
		ui.showNotification(l.GetText(KeyNoFilesSelected), false)
	case errors.Is(err, model.ErrNoSupportedImages):
		ui.showNotification(l.GetText(KeyNoSupportedImages), false)
	case errors.Is(err, model.ErrAlreadyStaged):
		ui.showNotification(l.GetText(KeyAlreadyStaged), false)
	case errors.As(err, &thumbErr):
		slog.Error("Thumbnail generation failed", "paths", len(thumbErr.Paths), "error", thumbErr.Err)
		dialog.ShowError(errors.New(l.GetText(KeyThumbnailFailed)+": "+thumbErr.Err.Error()), ui.window)
	default:
		ui.showError(err)
	}
}

// renderTiles rebuilds the grid from a working set snapshot, reusing tiles by key
func (ui *RootUI) renderTiles(items []model.ImageItem) {
	live := make(map[string]*ImageTile, len(items))
	order := make([]*ImageTile, 0, len(items))
	objects := make([]fyne.CanvasObject, 0, len(items))

	for _, item := range items {
		tile, ok := ui.tiles[item.Key()]
		if ok {
			tile.SetItem(item)
		} else {
			tile = NewImageTile(item, ui.engine, ui.localization)
			tile.SetCallbacks(ui.onOpenItem, ui.onRemoveItem)
		}
		tile.SetLocked(ui.busy)
		live[item.Key()] = tile
		order = append(order, tile)
		objects = append(objects, tile)
	}

	ui.tiles = live
	ui.order = order
	ui.grid.Objects = objects
	ui.grid.Refresh()
	ui.countLabel.SetText(ui.localization.Format(KeyImageCount, len(items)))
}

// hitTest maps an absolute pointer position to the tile under it
func (ui *RootUI) hitTest(at fyne.Position) (string, bool) {
	driver := fyne.CurrentApp().Driver()
	return hitTestTiles(at, ui.order, driver.AbsolutePositionForObject)
}

func (ui *RootUI) onDragChanged(key string, dragging bool) {
	if tile, ok := ui.tiles[key]; ok {
		tile.SetDragging(dragging)
	}
}

// onRemoveItem removes one image; removing the last returns to the selection screen
func (ui *RootUI) onRemoveItem(key string) {
	if ui.busy {
		return
	}
	ui.collection.Remove(key)
}

// onOpenItem opens one source image with the system viewer
func (ui *RootUI) onOpenItem(key string) {
	if ui.viewer == nil {
		return
	}
	go func() {
		if err := ui.viewer.OpenPath(ui.ctx, key); err != nil {
			slog.Warn("Failed to open image", "path", key, "error", err)
			ui.showNotification(ui.localization.GetText(KeyOpenFailed)+": "+err.Error(), false)
		}
	}()
}

// onClearAll empties the working set after confirmation
func (ui *RootUI) onClearAll() {
	if ui.busy {
		return
	}
	l := ui.localization
	dialog.ShowConfirm(l.GetText(KeyConfirmClear), l.GetText(KeyConfirmClearMessage), func(ok bool) {
		if ok {
			ui.collection.Clear()
		}
	}, ui.window)
}

// onMergeClick asks for a destination, then merges in the background
func (ui *RootUI) onMergeClick() {
	if ui.busy {
		ui.showNotification(ui.localization.GetText(KeyMergeInProgress), false)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		destination := ""
		if writer != nil {
			destination = writer.URI().Path()
			writer.Close()
			// The dialog creates the chosen file; a placeholder without the
			// .pdf suffix would be left behind empty.
			if merge.EnsurePDFSuffix(destination) != destination {
				if err := os.Remove(destination); err != nil {
					slog.Warn("Failed to remove save placeholder", "path", destination, "error", err)
				}
			}
		}
		go ui.runMerge(destination)
	}, ui.window)

	suggested := ui.settings.GetDefaultDestination()
	dir := filepath.Dir(suggested)
	save.SetFileName(filepath.Base(suggested))
	save.SetFilter(storage.NewExtensionFileFilter([]string{merge.PDFSuffix}))
	if err := platform.CreateDirectoryIfNotExists(dir); err == nil {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			save.SetLocation(lister)
		}
	}
	save.Show()
}

func (ui *RootUI) runMerge(destination string) {
	result, err := ui.orchestrator.Merge(ui.ctx, destination)
	l := ui.localization

	var mergeErr *model.MergeError
	switch {
	case err == nil:
		ui.showNotification(l.Format(KeyMergeSuccess, result.Destination), false)
		if result.ViewerErr != nil {
			fyne.Do(func() { ui.showRevealPrompt(result) })
		}
	case errors.Is(err, model.ErrNoDestination):
		ui.showNotification(l.GetText(KeyNoDestination), false)
	case errors.Is(err, model.ErrMergeInProgress):
		ui.showNotification(l.GetText(KeyMergeInProgress), false)
	case errors.As(err, &mergeErr):
		discardEmptyFile(mergeErr.Destination)
		fyne.Do(func() {
			dialog.ShowError(mergeErr, ui.window)
		})
	default:
		ui.showError(err)
	}
}

// showRevealPrompt offers to show the merged file in its folder when the
// viewer could not open it
func (ui *RootUI) showRevealPrompt(result merge.Result) {
	l := ui.localization
	message := widget.NewLabel(result.ViewerErr.Error())
	message.Wrapping = fyne.TextWrapWord
	dialog.ShowCustomConfirm(l.GetText(KeyOpenFailed), l.GetText(KeyReveal), l.GetText(KeyCancel), message, func(reveal bool) {
		if !reveal {
			return
		}
		go func() {
			if err := platform.OpenFileInManager(ui.ctx, result.Destination); err != nil {
				slog.Warn("Failed to reveal merged file", "path", result.Destination, "error", err)
				ui.showNotification(l.GetText(KeyOpenFailed)+": "+err.Error(), false)
			}
		}()
	}, ui.window)
}

// setBusy locks mutation affordances while a merge is in flight
func (ui *RootUI) setBusy(busy bool) {
	ui.busy = busy
	if busy {
		ui.engine.Cancel()
		ui.showNotification(ui.localization.GetText(KeyMerging), true)
	}

	for _, btn := range []*widget.Button{ui.addBtn, ui.addDirBtn, ui.clearBtn, ui.mergeBtn, ui.selectImageBtn, ui.selectFolderBtn} {
		if busy {
			btn.Disable()
		} else {
			btn.Enable()
		}
	}
	for _, tile := range ui.order {
		tile.SetLocked(busy)
	}
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity;
// otherwise the message hides itself after a while.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSeq++
		seq := ui.notificationSeq
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
			time.AfterFunc(NotificationAutoHide, func() {
				fyne.Do(func() {
					if ui.notificationSeq == seq {
						ui.notificationContainer.Hide()
					}
				})
			})
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSeq++
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

func (ui *RootUI) showError(err error) {
	slog.Error("UI error", "error", err)
	fyne.Do(func() {
		dialog.ShowError(err, ui.window)
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.pipeline.SetOptions(ui.settings.GetIngestOptions())
		ui.onLanguageChange(ui.settings.GetLanguage())
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	}).Show()
}

// discardEmptyFile removes a zero-length file left by a failed merge
func discardEmptyFile(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		slog.Warn("Failed to remove empty output", "path", path, "error", err)
	}
}

// canvasSpacer is a transparent rectangle that reserves a minimum size
func canvasSpacer(w, h float32) fyne.CanvasObject {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(w, h))
	return spacer
}
