package download

// Package download implements the batch download worker built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). One Download click starts one
// worker goroutine; the worker reports progress and log lines to the UI
// loop over an event channel and owns no state shared with the UI.
