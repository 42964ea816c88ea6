package extraction

import (
	"regexp"
	"strings"
)

// FirstMatch returns the first capture group of pattern in text, or the whole
// match when the pattern has no group. A pattern that does not compile is
// reported the same way as a pattern that does not occur.
func FirstMatch(text, pattern string) (string, bool) {
	m, ok := Submatches(text, pattern)
	if !ok {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// Submatches returns the whole match followed by every capture group.
func Submatches(text, pattern string) ([]string, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m, true
}

// firstOf tries patterns in order and returns the first non-empty result.
func firstOf(text string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if v, ok := FirstMatch(text, p); ok {
			if v = collapseSpaces(v); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
