package config

import (
	"fyne.io/fyne/v2"

	"github.com/tikgrab/tikgrab/internal/platform"
)

// CookieBrowser selects the browser whose cookie store yt-dlp reads for
// content that needs a logged-in session.
type CookieBrowser string

const (
	CookiesNone    CookieBrowser = "none"
	CookiesChrome  CookieBrowser = "chrome"
	CookiesEdge    CookieBrowser = "edge"
	CookiesFirefox CookieBrowser = "firefox"
	CookiesSafari  CookieBrowser = "safari"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir     = "output_directory"
	KeyMaxParallel   = "max_parallel_downloads"
	KeyCookieBrowser = "cookie_browser"
	KeyTranscodeH264 = "transcode_h264"
	KeyLanguage      = "app_language"
)

// Default values
const (
	DefaultMaxParallel   = 2
	DefaultCookieBrowser = CookiesNone
	DefaultTranscodeH264 = false
	DefaultLanguage      = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetDefaultOutputDir()
		if err != nil {
			defaultDir = "/tmp/tiktoks"
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel item
// downloads within a batch
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetCookieBrowser returns the configured cookie source browser
func (s *Settings) GetCookieBrowser() CookieBrowser {
	browser := s.app.Preferences().String(KeyCookieBrowser)
	if browser == "" {
		s.SetCookieBrowser(DefaultCookieBrowser)
		return DefaultCookieBrowser
	}
	return CookieBrowser(browser)
}

// SetCookieBrowser sets the cookie source browser
func (s *Settings) SetCookieBrowser(browser CookieBrowser) {
	s.app.Preferences().SetString(KeyCookieBrowser, string(browser))
}

// GetCookieBrowserOptions returns the available cookie source options
func (s *Settings) GetCookieBrowserOptions() []CookieBrowser {
	return []CookieBrowser{CookiesNone, CookiesChrome, CookiesEdge, CookiesFirefox, CookiesSafari}
}

// GetTranscodeH264 returns whether completed downloads are re-encoded to
// H.264/AAC MP4 for player compatibility
func (s *Settings) GetTranscodeH264() bool {
	return s.app.Preferences().BoolWithFallback(KeyTranscodeH264, DefaultTranscodeH264)
}

// SetTranscodeH264 sets the post-download transcode toggle
func (s *Settings) SetTranscodeH264(enabled bool) {
	s.app.Preferences().SetBool(KeyTranscodeH264, enabled)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}
