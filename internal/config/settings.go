package config

import (
	"strings"

	"fyne.io/fyne/v2"
	"golang.org/x/text/language"

	"github.com/ytget/img2pdf/internal/ingest"
	"github.com/ytget/img2pdf/internal/merge"
	"github.com/ytget/img2pdf/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyCollationLocale = "collation_locale"
	KeyAcceptPDF       = "accept_pdf"
	KeyOutputDir       = "output_directory"
	KeyOutputFilename  = "output_filename"
	KeyLanguage        = "app_language"
)

// Default values
const (
	DefaultCollationLocale = ingest.DefaultLocale
	DefaultAcceptPDF       = false
	DefaultOutputFilename  = merge.DefaultFileName
	DefaultLanguage        = "system"
	FallbackOutputDir      = "."
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetCollationLocale returns the locale used to order ingested files
func (s *Settings) GetCollationLocale() string {
	locale := s.app.Preferences().String(KeyCollationLocale)
	if locale == "" {
		s.SetCollationLocale(DefaultCollationLocale)
		return DefaultCollationLocale
	}
	return locale
}

// SetCollationLocale sets the collation locale. Tags that do not parse are
// replaced by the default.
func (s *Settings) SetCollationLocale(locale string) {
	locale = strings.TrimSpace(locale)
	if _, err := language.Parse(locale); err != nil {
		locale = DefaultCollationLocale
	}
	s.app.Preferences().SetString(KeyCollationLocale, locale)
}

// GetAcceptPDF returns whether PDF files are accepted as inputs
func (s *Settings) GetAcceptPDF() bool {
	return s.app.Preferences().BoolWithFallback(KeyAcceptPDF, DefaultAcceptPDF)
}

// SetAcceptPDF sets whether PDF files are accepted as inputs
func (s *Settings) SetAcceptPDF(accept bool) {
	s.app.Preferences().SetBool(KeyAcceptPDF, accept)
}

// GetOutputDirectory returns the suggested directory for merged files
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetDocumentsDir()
		if err != nil {
			defaultDir = FallbackOutputDir
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the suggested directory for merged files
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetOutputFilename returns the suggested merged file name
func (s *Settings) GetOutputFilename() string {
	name := s.app.Preferences().String(KeyOutputFilename)
	if name == "" {
		s.SetOutputFilename(DefaultOutputFilename)
		return DefaultOutputFilename
	}
	return name
}

// SetOutputFilename sets the suggested merged file name; the .pdf suffix is enforced
func (s *Settings) SetOutputFilename(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultOutputFilename
	}
	s.app.Preferences().SetString(KeyOutputFilename, merge.EnsurePDFSuffix(name))
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

// GetIngestOptions returns the pipeline options derived from the settings
func (s *Settings) GetIngestOptions() ingest.Options {
	return ingest.Options{
		Locale:    s.GetCollationLocale(),
		AcceptPDF: s.GetAcceptPDF(),
	}
}

// GetDefaultDestination returns the suggested save path for a merge
func (s *Settings) GetDefaultDestination() string {
	return merge.DefaultDestination(s.GetOutputDirectory(), s.GetOutputFilename())
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"zh":     "简体中文",
	}
}

// GetCollationLocaleOptions returns suggested collation locales
func (s *Settings) GetCollationLocaleOptions() []string {
	return []string{"en", "zh", "de", "fr", "ja", "ru", "sv"}
}
