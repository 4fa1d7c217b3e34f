package ingest

import (
	"slices"
	"testing"

	"golang.org/x/text/language"
)

func TestNaturalSort(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			"numeric runs by value",
			[]string{"/x/img10.png", "/x/img2.png", "/x/img1.png"},
			[]string{"/x/img1.png", "/x/img2.png", "/x/img10.png"},
		},
		{
			"file name not full path",
			[]string{"/b/page2.png", "/a/page10.png", "/c/page1.png"},
			[]string{"/c/page1.png", "/b/page2.png", "/a/page10.png"},
		},
		{
			"case insensitive",
			[]string{"/x/B.png", "/x/a.png", "/x/C.png"},
			[]string{"/x/a.png", "/x/B.png", "/x/C.png"},
		},
		{
			"same name tiebreak by path",
			[]string{"/z/scan.png", "/a/scan.png"},
			[]string{"/a/scan.png", "/z/scan.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NaturalSort(tt.input, language.English)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("NaturalSort(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNaturalSort_DoesNotMutateInput(t *testing.T) {
	input := []string{"/x/img10.png", "/x/img2.png"}
	NaturalSort(input, language.English)

	if input[0] != "/x/img10.png" {
		t.Errorf("Input was mutated: %v", input)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		locale   string
		expected language.Tag
	}{
		{"", language.English},
		{"zh", language.Chinese},
		{"de", language.German},
		{"not a locale!", language.English},
	}

	for _, tt := range tests {
		if result := ParseLocale(tt.locale); result != tt.expected {
			t.Errorf("ParseLocale(%q) = %v, expected %v", tt.locale, result, tt.expected)
		}
	}
}
