package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestCollationLocale(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetCollationLocale(); got != DefaultCollationLocale {
		t.Errorf("Expected default locale %s, got %s", DefaultCollationLocale, got)
	}

	settings.SetCollationLocale("sv")
	if got := settings.GetCollationLocale(); got != "sv" {
		t.Errorf("Expected locale sv, got %s", got)
	}

	// Invalid tags fall back to the default
	settings.SetCollationLocale("not a locale!")
	if got := settings.GetCollationLocale(); got != DefaultCollationLocale {
		t.Errorf("Expected fallback locale %s, got %s", DefaultCollationLocale, got)
	}
}

func TestAcceptPDF(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAcceptPDF() != DefaultAcceptPDF {
		t.Errorf("Expected default accept PDF %v", DefaultAcceptPDF)
	}

	settings.SetAcceptPDF(true)
	if !settings.GetAcceptPDF() {
		t.Error("Accept PDF should be true after setting")
	}
	if !settings.GetIngestOptions().AcceptPDF {
		t.Error("Ingest options should carry accept PDF")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if dir := settings.GetOutputDirectory(); dir == "" {
		t.Error("Output directory should not be empty")
	}

	customDir := "/custom/output"
	settings.SetOutputDirectory(customDir)
	if got := settings.GetOutputDirectory(); got != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, got)
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"with suffix", "album.pdf", "album.pdf"},
		{"without suffix", "album", "album.pdf"},
		{"empty falls back", "  ", DefaultOutputFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewSettings(test.NewApp())
			settings.SetOutputFilename(tt.input)
			if got := settings.GetOutputFilename(); got != tt.expected {
				t.Errorf("GetOutputFilename() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestDefaultDestination(t *testing.T) {
	settings := NewSettings(test.NewApp())
	settings.SetOutputDirectory("/docs")
	settings.SetOutputFilename("scan")

	expected := filepath.Join("/docs", "scan.pdf")
	if got := settings.GetDefaultDestination(); got != expected {
		t.Errorf("GetDefaultDestination() = %s, expected %s", got, expected)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("zh")
	if lang := settings.GetLanguage(); lang != "zh" {
		t.Errorf("Expected language zh, got %s", lang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())
	options := settings.GetLanguageOptions()

	for _, lang := range []string{"system", "en", "zh"} {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option %s not found", lang)
		}
	}
}
