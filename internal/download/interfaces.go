package download

import (
	"github.com/tikgrab/tikgrab/internal/config"
	"github.com/tikgrab/tikgrab/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// Events returns the channel carrying progress and log events from the
	// worker to the UI loop.
	Events() <-chan model.Event

	// StartBatch begins downloading the given URLs into outputDir. It fails
	// when a batch is already running, when urls is empty, or when the
	// output directory is not writable.
	StartBatch(urls []string, outputDir string) (*model.Batch, error)

	// Stop cancels the running batch and any transcodes it started.
	Stop() error

	// Active reports whether a batch is currently running.
	Active() bool

	// CurrentBatch returns the most recently started batch, if any.
	CurrentBatch() (*model.Batch, bool)

	// SetMaxParallel sets the maximum number of parallel item downloads
	// within a batch.
	SetMaxParallel(max int)

	// SetCookieBrowser selects the browser cookie store passed to yt-dlp.
	SetCookieBrowser(browser config.CookieBrowser)

	// SetTranscodeH264 toggles the post-download compatibility transcode.
	SetTranscodeH264(enabled bool)
}
