package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the download service and renders the progress
// bar, the activity log, and settings. All UI strings are localized via
// Localization.
