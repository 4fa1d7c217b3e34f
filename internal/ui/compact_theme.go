package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Custom color names used by the review grid
const (
	ColorNameDragSource fyne.ThemeColorName = "img2pdfDragSource"
	ColorNameTileBorder fyne.ThemeColorName = "img2pdfTileBorder"
)

// Custom size names used by the review grid
const (
	SizeNameTileBorder fyne.ThemeSizeName = "img2pdfTileBorder"
	SizeNameTileRadius fyne.ThemeSizeName = "img2pdfTileRadius"
)

// CompactTheme defines a compact theme for the UI with reduced padding and font sizes,
// so more thumbnails fit in a row of the review grid
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case ColorNameDragSource:
		return color.NRGBA{R: 25, G: 118, B: 210, A: 64} // Translucent primary over the dragged tile
	case ColorNameTileBorder:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 66, G: 66, B: 66, A: 255}
		}
		return color.NRGBA{R: 224, G: 224, B: 224, A: 255}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // Green for a written PDF
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255} // Blue for merge and select actions
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case SizeNameTileBorder:
		return 2
	case SizeNameTileRadius:
		return 6
	case theme.SizeNamePadding:
		return 3 // Tight gaps between tiles
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12 // Reduced from default 16
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10 // File names under thumbnails
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
