package domain

import (
	"regexp"
	"strings"
)

// NormalizeSize collapses the common ways a tire size is written so
// that "205/55R16", "205-55-16" and "205 55 16" all normalize to
// "2055516". Stripped: slash, hyphen, whitespace and the radial marker
// R (after lower-casing).
func NormalizeSize(query string) string {
	normalized := strings.ToLower(query)
	normalized = strings.NewReplacer(
		"/", "",
		"-", "",
		"r", "",
		" ", "",
		"\t", "",
	).Replace(normalized)
	return normalized
}

// FuzzySizePattern builds a case-insensitive-ready regular expression
// from a normalized query by interleaving a wildcard between every
// character, so the stored size need not be formatted the same way as
// the query ("2055516" matches a stored "205/55R16").
func FuzzySizePattern(normalized string) string {
	if normalized == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range normalized {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	return b.String()
}
