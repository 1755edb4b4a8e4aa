package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeyClear             = "clear"
	KeyExtractURLs       = "extract_urls"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyOutputFolder      = "output_folder"
	KeyOpenFolder        = "open_folder"
	KeyMaxParallel       = "max_parallel"
	KeyCookieBrowser     = "cookie_browser"
	KeyTranscodeH264     = "transcode_h264"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURLs         = "enter_urls"
	KeySettingsSaved     = "settings_saved"
	KeyDownloadStarted   = "download_started"
	KeyDownloadFinished  = "download_finished"
	KeyDownloadStopped   = "download_stopped"
	KeyDownloadFailed    = "download_failed"
	KeyNoValidURLs       = "no_valid_urls"
	KeyAlreadyRunning    = "already_running"
	KeyURLsFound         = "urls_found"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyStoppingDownload  = "stopping_download"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "TikGrab",
		KeyDownload:         "Download",
		KeyStop:             "Stop",
		KeyClear:            "Clear",
		KeyExtractURLs:      "Extract URLs",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyOutputFolder:     "Output Folder",
		KeyOpenFolder:       "Open Folder",
		KeyMaxParallel:      "Max Parallel Downloads",
		KeyCookieBrowser:    "Browser Cookies",
		KeyTranscodeH264:    "Re-encode to H.264 after download",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowse:           "Browse",
		KeyEnterURLs:        "Paste TikTok links here, one or more per line...",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyDownloadStarted:  "Download started",
		KeyDownloadFinished: "All downloads finished",
		KeyDownloadStopped:  "Download stopped",
		KeyDownloadFailed:   "Some downloads failed",
		KeyNoValidURLs:      "No TikTok URLs found in the input",
		KeyAlreadyRunning:   "A download is already running",
		KeyURLsFound:        "URLs found",
		KeyErrorOpeningFile: "Error opening folder",
		KeyStoppingDownload: "Stopping download...",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "TikGrab",
		KeyDownload:         "Скачать",
		KeyStop:             "Стоп",
		KeyClear:            "Очистить",
		KeyExtractURLs:      "Извлечь ссылки",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeyOutputFolder:     "Папка загрузки",
		KeyOpenFolder:       "Открыть папку",
		KeyMaxParallel:      "Макс. параллельных загрузок",
		KeyCookieBrowser:    "Cookies браузера",
		KeyTranscodeH264:    "Перекодировать в H.264 после загрузки",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyBrowse:           "Обзор",
		KeyEnterURLs:        "Вставьте ссылки TikTok, по одной или несколько на строку...",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyDownloadStarted:  "Загрузка начата",
		KeyDownloadFinished: "Все загрузки завершены",
		KeyDownloadStopped:  "Загрузка остановлена",
		KeyDownloadFailed:   "Часть загрузок завершилась с ошибкой",
		KeyNoValidURLs:      "Ссылки TikTok не найдены",
		KeyAlreadyRunning:   "Загрузка уже выполняется",
		KeyURLsFound:        "Ссылок найдено",
		KeyErrorOpeningFile: "Ошибка открытия папки",
		KeyStoppingDownload: "Остановка загрузки...",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "TikGrab",
		KeyDownload:         "Baixar",
		KeyStop:             "Parar",
		KeyClear:            "Limpar",
		KeyExtractURLs:      "Extrair URLs",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyLanguage:         "Idioma",
		KeyOutputFolder:     "Pasta de Saída",
		KeyOpenFolder:       "Abrir Pasta",
		KeyMaxParallel:      "Max Downloads Paralelos",
		KeyCookieBrowser:    "Cookies do Navegador",
		KeyTranscodeH264:    "Recodificar para H.264 após o download",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeyBrowse:           "Navegar",
		KeyEnterURLs:        "Cole links do TikTok aqui, um ou mais por linha...",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
		KeyDownloadStarted:  "Download iniciado",
		KeyDownloadFinished: "Todos os downloads concluídos",
		KeyDownloadStopped:  "Download interrompido",
		KeyDownloadFailed:   "Alguns downloads falharam",
		KeyNoValidURLs:      "Nenhuma URL do TikTok encontrada",
		KeyAlreadyRunning:   "Um download já está em execução",
		KeyURLsFound:        "URLs encontradas",
		KeyErrorOpeningFile: "Erro ao abrir a pasta",
		KeyStoppingDownload: "Parando download...",
	}
}
