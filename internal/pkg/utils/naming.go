package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeName keeps ASCII letters and digits and replaces everything else
// with underscores, matching the export archive naming scheme.
func SanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Slugify builds a url-safe slug from a display name plus a random suffix so
// repeated names never collide.
func Slugify(name string) (string, error) {
	base := strings.ToLower(SanitizeName(name))
	base = strings.Trim(base, "_")
	for strings.Contains(base, "__") {
		base = strings.ReplaceAll(base, "__", "_")
	}
	if base == "" {
		base = "item"
	}
	suffix, err := RandomSuffix(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", base, strings.ToLower(suffix)), nil
}
