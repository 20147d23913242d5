package lang

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Default represents the fallback language code used when no explicit language
// is configured. The guide is written in Hebrew. The value follows BCP 47
// conventions.
const Default = "he"

const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// rtlLanguages lists base language subtags written right to left.
var rtlLanguages = map[string]struct{}{
	"ar": {},
	"dv": {},
	"fa": {},
	"he": {},
	"ps": {},
	"ur": {},
	"yi": {},
}

var errEmptyCode = errors.New("language code cannot be empty")

// Normalize validates the provided language code and returns it in a
// canonicalised form (lowercase language, uppercase region). Supported formats
// follow the common `ll` or `ll-RR` pattern where `l` is an alphabetic
// character and `R` is the region designator.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", errEmptyCode
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid language code %q", code)
	}

	language := strings.ToLower(parts[0])
	if len(language) < 2 || len(language) > 8 {
		return "", fmt.Errorf("invalid language code %q", code)
	}
	for _, r := range language {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid language code %q", code)
		}
	}

	if len(parts) == 1 {
		return language, nil
	}

	region := parts[1]
	if len(region) < 2 || len(region) > 3 {
		return "", fmt.Errorf("invalid language region in %q", code)
	}
	for _, r := range region {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("invalid language region in %q", code)
		}
	}

	region = strings.ToUpper(region)
	return language + "-" + region, nil
}

// Direction reports the text direction for the provided language code. Codes
// that fail validation are treated as left to right.
func Direction(code string) string {
	normalized, err := Normalize(code)
	if err != nil {
		return DirectionLTR
	}

	base := normalized
	if idx := strings.Index(base, "-"); idx != -1 {
		base = base[:idx]
	}

	if _, ok := rtlLanguages[base]; ok {
		return DirectionRTL
	}
	return DirectionLTR
}
