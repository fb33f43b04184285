// Package phone canonicalizes Moroccan phone numbers to "+212 xxx xxx xxx".
package phone

import "strings"

// significantDigits is the length of a Moroccan subscriber number once the
// country code and trunk prefix are stripped.
const significantDigits = 9

// Format rewrites any phone-ish input into the canonical form. It keeps only
// digits, drops a leading 212 country code or 0 trunk prefix, clips the rest
// to nine digits, and regroups them as three space-separated triplets. Short
// input yields a partial result ("+212 612 34"); empty input yields "+212".
// Formatting canonical input returns it unchanged. Never fails.
func Format(value string) string {
	var digits strings.Builder
	for _, c := range value {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}

	cleaned := digits.String()
	if strings.HasPrefix(cleaned, "212") {
		cleaned = cleaned[3:]
	} else if strings.HasPrefix(cleaned, "0") {
		cleaned = cleaned[1:]
	}
	if len(cleaned) > significantDigits {
		cleaned = cleaned[:significantDigits]
	}

	formatted := "+212"
	for i := 0; i < len(cleaned); i += 3 {
		end := i + 3
		if end > len(cleaned) {
			end = len(cleaned)
		}
		formatted += " " + cleaned[i:end]
	}
	return formatted
}
