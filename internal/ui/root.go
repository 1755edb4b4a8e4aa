package ui

import (
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tikgrab/tikgrab/internal/config"
	"github.com/tikgrab/tikgrab/internal/download"
	"github.com/tikgrab/tikgrab/internal/model"
	"github.com/tikgrab/tikgrab/internal/platform"
)

// RootUI represents the main UI structure. It owns the single application
// window: the URL input, the output folder row, the action buttons, the
// progress bar, and the activity log. All state changes arrive on the
// download service event channel and are applied on the UI thread.
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	urlEntry     *widget.Entry
	folderEntry  *widget.Entry
	extractBtn   *widget.Button
	downloadBtn  *widget.Button
	stopBtn      *widget.Button
	clearBtn     *widget.Button
	progressBar  *widget.ProgressBar
	statsLabel   *widget.Label
	totalLabel   *widget.Label
	logLabel     *widget.Label
	logScroll    *container.Scroll
	logLines     []string
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.applySettings()
	ui.setupUI()

	// One consumer goroutine per window; it lives for the life of the app.
	go ui.consumeEvents()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Multiline URL input; a whole page of text can be pasted here and the
	// URLs fished out of it.
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURLs))
	ui.urlEntry.Wrapping = fyne.TextWrapBreak

	// Output folder row
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.settings.GetOutputDirectory())
	browseBtn := widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseFolder)
	openBtn := widget.NewButton(IconFolder, ui.onOpenFolder)
	openBtn.Importance = widget.LowImportance
	folderRow := container.NewBorder(
		nil, nil,
		widget.NewLabel(ui.localization.GetText(KeyOutputFolder)+":"),
		container.NewHBox(browseBtn, openBtn),
		ui.folderEntry,
	)

	// Action buttons
	ui.extractBtn = widget.NewButton(ui.localization.GetText(KeyExtractURLs), ui.onExtractClick)
	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(ui.localization.GetText(KeyStop), ui.onStopClick)
	ui.stopBtn.Disable()
	ui.clearBtn = widget.NewButton(ui.localization.GetText(KeyClear), ui.onClearClick)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	buttonRow := container.NewHBox(
		ui.extractBtn,
		ui.downloadBtn,
		ui.stopBtn,
		ui.clearBtn,
		settingsBtn,
	)

	// Per-item progress bar with the speed/ETA and overall batch stats
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(ui.progressBar.Value*100))
	}
	ui.statsLabel = widget.NewLabel("")
	ui.totalLabel = widget.NewLabel("")
	statsRow := container.NewBorder(nil, nil, ui.statsLabel, ui.totalLabel)

	// Activity log pane
	ui.logLabel = widget.NewLabel("")
	ui.logLabel.Wrapping = fyne.TextWrapBreak
	ui.logScroll = container.NewVScroll(ui.logLabel)
	ui.logScroll.SetMinSize(fyne.NewSize(0, LogPaneMinHeight))

	urlScroll := container.NewVScroll(ui.urlEntry)
	urlScroll.SetMinSize(fyne.NewSize(0, URLEntryMinHeight))

	top := container.NewVBox(
		urlScroll,
		folderRow,
		buttonRow,
		ui.progressBar,
		statsRow,
	)

	content := container.NewBorder(
		top,          // top
		nil,          // bottom
		nil,          // left
		nil,          // right
		ui.logScroll, // center - the log grows with the window
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURLs))
	ui.extractBtn.SetText(ui.localization.GetText(KeyExtractURLs))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	ui.clearBtn.SetText(ui.localization.GetText(KeyClear))
}

// applySettings pushes the persisted settings into the download service.
func (ui *RootUI) applySettings() {
	ui.downloadSvc.SetMaxParallel(ui.settings.GetMaxParallelDownloads())
	ui.downloadSvc.SetCookieBrowser(ui.settings.GetCookieBrowser())
	ui.downloadSvc.SetTranscodeH264(ui.settings.GetTranscodeH264())
}

// extractInputURLs pulls TikTok URLs out of whatever the user pasted.
func (ui *RootUI) extractInputURLs() []string {
	urls := platform.ExtractURLs(ui.urlEntry.Text)
	return platform.FilterTikTokURLs(urls)
}

// onExtractClick replaces the input text with the TikTok URLs found in it,
// one per line, and reports the count in the log.
func (ui *RootUI) onExtractClick() {
	urls := ui.extractInputURLs()
	if len(urls) == 0 {
		ui.appendLog(ui.localization.GetText(KeyNoValidURLs))
		return
	}

	ui.urlEntry.SetText(strings.Join(urls, "\n"))
	ui.appendLog(fmt.Sprintf("%s: %d", ui.localization.GetText(KeyURLsFound), len(urls)))
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	urls := ui.extractInputURLs()
	if len(urls) == 0 {
		ui.appendLog(ui.localization.GetText(KeyNoValidURLs))
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyNoValidURLs)), ui.window.Canvas())
		return
	}

	outputDir := strings.TrimSpace(ui.folderEntry.Text)
	if outputDir == "" {
		outputDir = ui.settings.GetOutputDirectory()
		ui.folderEntry.SetText(outputDir)
	}

	_, err := ui.downloadSvc.StartBatch(urls, outputDir)
	if err != nil {
		log.Printf("Failed to start batch: %v", err)
		ui.appendLog("ERROR: " + err.Error())
		widget.ShowPopUp(widget.NewLabel("Error: "+err.Error()), ui.window.Canvas())
		return
	}

	ui.settings.SetOutputDirectory(outputDir)
	ui.setRunning(true)
	ui.appendLog(ui.localization.GetText(KeyDownloadStarted))
}

// onStopClick requests cancellation of the running batch.
func (ui *RootUI) onStopClick() {
	if err := ui.downloadSvc.Stop(); err != nil {
		log.Printf("Stop failed: %v", err)
		return
	}

	ui.stopBtn.Disable()
	ui.appendLog(ui.localization.GetText(KeyStoppingDownload))
}

// onClearClick clears the input and the log.
func (ui *RootUI) onClearClick() {
	ui.urlEntry.SetText("")
	ui.logLines = nil
	ui.logLabel.SetText("")
	ui.progressBar.SetValue(0)
	ui.statsLabel.SetText("")
	ui.totalLabel.SetText("")
}

// onBrowseFolder handles output folder browsing
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
		ui.settings.SetOutputDirectory(uri.Path())
	}, ui.window)
}

// onOpenFolder opens the output folder in the system file manager.
func (ui *RootUI) onOpenFolder() {
	outputDir := strings.TrimSpace(ui.folderEntry.Text)
	if outputDir == "" {
		return
	}

	if err := platform.OpenFolder(outputDir); err != nil {
		log.Printf("Error opening folder %s: %v", outputDir, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.window, ui.localization, func() {
		ui.applySettings()
		ui.folderEntry.SetText(ui.settings.GetOutputDirectory())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
	sd.Show()
}

// setRunning toggles the buttons between idle and downloading states.
func (ui *RootUI) setRunning(running bool) {
	if running {
		ui.downloadBtn.Disable()
		ui.extractBtn.Disable()
		ui.clearBtn.Disable()
		ui.stopBtn.Enable()
	} else {
		ui.downloadBtn.Enable()
		ui.extractBtn.Enable()
		ui.clearBtn.Enable()
		ui.stopBtn.Disable()
	}
}

// consumeEvents is the UI side of the worker channel. It runs off the UI
// thread and marshals every mutation through fyne.Do.
func (ui *RootUI) consumeEvents() {
	for ev := range ui.downloadSvc.Events() {
		event := ev // capture for closure
		switch event.Kind {
		case model.EventLog:
			fyne.Do(func() {
				ui.appendLog(event.Message)
			})
		case model.EventProgress:
			fyne.Do(func() {
				ui.progressBar.SetValue(event.Percent / 100)
				if event.Message != "" {
					ui.statsLabel.SetText(event.Message)
				}
			})
		case model.EventTaskDone:
			fyne.Do(func() {
				ui.statsLabel.SetText(event.Message)
				ui.totalLabel.SetText(fmt.Sprintf(TotalLabelFormat, int(event.Percent)))
			})
		case model.EventBatchDone:
			fyne.Do(func() {
				ui.onBatchDone(model.BatchStatus(event.Message))
			})
		}
	}
}

// onBatchDone restores the idle UI state and notifies the user.
func (ui *RootUI) onBatchDone(status model.BatchStatus) {
	ui.setRunning(false)
	ui.progressBar.SetValue(0)
	ui.statsLabel.SetText("")

	var key string
	switch status {
	case model.BatchStatusStopped:
		key = KeyDownloadStopped
	case model.BatchStatusError:
		key = KeyDownloadFailed
	default:
		key = KeyDownloadFinished
	}

	message := ui.localization.GetText(key)
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyAppTitle),
		Content: message,
	})
}

// appendLog adds a line to the log pane and keeps it scrolled to the bottom.
// Must be called on the UI thread.
func (ui *RootUI) appendLog(message string) {
	if message == "" {
		return
	}

	ui.logLines = append(ui.logLines, message)
	if len(ui.logLines) > MaxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-MaxLogLines:]
	}

	ui.logLabel.SetText(strings.Join(ui.logLines, LogLineSeparator))
	ui.logScroll.ScrollToBottom()
}
