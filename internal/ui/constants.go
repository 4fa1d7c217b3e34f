package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Tile sizing (review grid)
const (
	TileWidth       float32 = 168
	TileHeight      float32 = 200
	ThumbnailHeight float32 = 140
)

// Selection screen sizing
const (
	DropZoneMinWidth  float32 = 420
	DropZoneMinHeight float32 = 260
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 420
)

// Notification behavior
const (
	NotificationAutoHide = 4 * time.Second
)
