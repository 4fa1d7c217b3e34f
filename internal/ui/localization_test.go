package ui

import "testing"

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()

	if got := l.GetText(KeyMerge); got != "Merge to PDF" {
		t.Errorf("GetText(KeyMerge) = %q", got)
	}

	l.SetLanguage("zh")
	if l.GetCurrentLanguage() != "zh" {
		t.Fatalf("Expected zh, got %s", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyMerge); got != "合并为 PDF" {
		t.Errorf("GetText(KeyMerge) in zh = %q", got)
	}

	// Unknown languages are ignored
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("Unknown language should not change current, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("Missing key should return itself, got %q", got)
	}
}

func TestLocalization_AllKeysTranslated(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		if _, ok := l.texts["zh"][key]; !ok {
			t.Errorf("Key %s has no zh translation", key)
		}
	}
}

func TestLocalization_SystemLanguage(t *testing.T) {
	tests := []struct {
		locale   string
		expected string
	}{
		{"zh-CN", "zh"},
		{"zh-Hans", "zh"},
		{"en-GB", "en"},
		{"de-DE", "en"},
		{"garbage!", "en"},
	}

	original := systemLocale
	defer func() { systemLocale = original }()

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			systemLocale = func() string { return tt.locale }
			l := NewLocalization()
			l.SetLanguage("system")
			if l.GetCurrentLanguage() != tt.expected {
				t.Errorf("System locale %s resolved to %s, expected %s", tt.locale, l.GetCurrentLanguage(), tt.expected)
			}
		})
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()
	if got := l.Format(KeyImageCount, 3); got != "3 image(s)" {
		t.Errorf("Format(KeyImageCount, 3) = %q", got)
	}
}
