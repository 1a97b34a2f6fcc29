package domain

import (
	"regexp"
	"strings"
)

var mobilePattern = regexp.MustCompile(`^010\d{8}$`)

// NormalizePhone strips separators; "010-1234-5678" -> "01012345678"
func NormalizePhone(raw string) string {
	r := strings.NewReplacer("-", "", " ", "", ".", "", "(", "", ")", "")
	return r.Replace(strings.TrimSpace(raw))
}

// IsValidMobile reports whether a normalized number is a Korean mobile number
func IsValidMobile(normalized string) bool {
	return mobilePattern.MatchString(normalized)
}

// NormalizeRecipients normalizes, validates and de-duplicates numbers keeping order.
// Invalid numbers are returned separately.
func NormalizeRecipients(raw []string) (valid []string, invalid []string) {
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		n := NormalizePhone(r)
		if !IsValidMobile(n) {
			if strings.TrimSpace(r) != "" {
				invalid = append(invalid, r)
			}
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		valid = append(valid, n)
	}
	return valid, invalid
}
