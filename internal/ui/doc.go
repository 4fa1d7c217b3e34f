package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires file selection and drops to the ingestion pipeline, renders the
// working set as a reorderable thumbnail grid, and drives merges. All UI
// strings are localized via Localization.
