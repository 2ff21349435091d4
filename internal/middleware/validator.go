package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	recordIDPattern = regexp.MustCompile(`^([a-z]+)_[0-9]{1,20}_[0-9a-z]{1,32}$`)
	languagePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)
)

// ValidateRecordID checks "<prefix>_<millis>_<base36>" ids such as
// analysis_1719990000000_k3j9x0a1b2c3.
func ValidateRecordID(id, prefix string) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", prefix)
	}
	m := recordIDPattern.FindStringSubmatch(id)
	if m == nil || m[1] != prefix {
		return fmt.Errorf("invalid %s id format", prefix)
	}
	return nil
}

// ValidateLanguageCode accepts ISO 639 codes with optional BCP 47 subtags
// (en, hi, zh-CN, en-IN). allowAuto also lets "auto" through.
func ValidateLanguageCode(code string, allowAuto bool) error {
	if code == "" {
		return nil // Optional field
	}
	if allowAuto && code == "auto" {
		return nil
	}
	if !languagePattern.MatchString(code) {
		return fmt.Errorf("invalid language code: %s", code)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
