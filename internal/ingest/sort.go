package ingest

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ytget/img2pdf/internal/model"
)

// DefaultLocale is used when no or an invalid collation locale is configured
const DefaultLocale = "en"

// ParseLocale parses a BCP 47 tag, falling back to DefaultLocale
func ParseLocale(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		slog.Warn("invalid collation locale, using default", "locale", locale, "default", DefaultLocale, "err", err)
		return language.English
	}
	return tag
}

// NaturalSort sorts paths by file name using locale-aware collation where
// embedded numbers compare by value (img2.png before img10.png). Equal names
// fall back to the full path so the order is deterministic.
func NaturalSort(paths []string, tag language.Tag) []string {
	sorted := slices.Clone(paths)

	// Collator keeps internal buffers; one per call.
	c := collate.New(tag, collate.Numeric, collate.IgnoreCase)
	slices.SortStableFunc(sorted, func(a, b string) int {
		if r := c.CompareString(model.DisplayName(a), model.DisplayName(b)); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
	return sorted
}
