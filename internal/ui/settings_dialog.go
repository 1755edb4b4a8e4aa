package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tikgrab/tikgrab/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry   *widget.Entry
	maxParallelEntry *widget.Entry
	cookieSelect     *widget.Select
	transcodeCheck   *widget.Check
	languageSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved is called after
// the user confirms, so the caller can push the new values into the services.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Output folder path")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Max parallel downloads
	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	// Browser cookie store selection
	cookieOptions := []string{}
	for _, browser := range sd.settings.GetCookieBrowserOptions() {
		cookieOptions = append(cookieOptions, string(browser))
	}
	sd.cookieSelect = widget.NewSelect(cookieOptions, nil)

	// Post-download transcode toggle
	sd.transcodeCheck = widget.NewCheck(sd.localization.GetText(KeyTranscodeH264), nil)

	// Language selection
	languageOptions := []string{}
	languageLabels := sd.localization.GetAvailableLanguages()
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	// Create form
	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeySettings)),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyOutputFolder)+":"),
		outputDirRow,

		widget.NewLabel(sd.localization.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewLabel(sd.localization.GetText(KeyCookieBrowser)+":"),
		sd.cookieSelect,

		sd.transcodeCheck,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(480, 380))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.cookieSelect.SetSelected(string(sd.settings.GetCookieBrowser()))
	sd.transcodeCheck.SetChecked(sd.settings.GetTranscodeH264())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.outputDirEntry.Text != "" {
		sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)
	}

	if sd.maxParallelEntry.Text != "" {
		if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
			sd.settings.SetMaxParallelDownloads(maxParallel)
		}
	}

	if sd.cookieSelect.Selected != "" {
		sd.settings.SetCookieBrowser(config.CookieBrowser(sd.cookieSelect.Selected))
	}

	sd.settings.SetTranscodeH264(sd.transcodeCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
