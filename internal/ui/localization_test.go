package ui

import "testing"

func TestLocalization_DefaultsToEnglish(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("expected default language en, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText(KeyDownload); got != "Download" {
		t.Errorf("expected Download, got %s", got)
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{"russian", "ru", "ru"},
		{"portuguese", "pt", "pt"},
		{"system maps to english", "system", "en"},
		{"unknown language keeps current", "de", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)

			if l.GetCurrentLanguage() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, l.GetCurrentLanguage())
			}
		})
	}
}

func TestLocalization_FallbackToEnglish(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")

	// Every key present in English must resolve to something in any language.
	if got := l.GetText(KeyDownload); got == "" || got == KeyDownload {
		t.Errorf("expected translated text for %s, got %q", KeyDownload, got)
	}

	// Unknown keys fall back to the key itself.
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("expected key fallback, got %s", got)
	}
}

func TestLocalization_AllLanguagesCoverAllKeys(t *testing.T) {
	l := NewLocalization()

	keys := make([]string, 0, len(l.texts["en"]))
	for key := range l.texts["en"] {
		keys = append(keys, key)
	}

	for lang := range l.GetAvailableLanguages() {
		texts, exists := l.texts[lang]
		if !exists {
			t.Fatalf("language %s has no text table", lang)
		}

		for _, key := range keys {
			if texts[key] == "" {
				t.Errorf("language %s is missing text for %s", lang, key)
			}
		}
	}
}
