package util

import (
	"strings"
	"unicode"
)

// SanitizeEnvValue strips surrounding whitespace and one pair of matching
// quotes, as left behind by copy-pasted .env lines.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, `'`} {
		if len(s) >= 2 && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

// SanitizeFilename reduces a client-supplied upload name to a base name fit
// for logs: control characters and any directory part, with either
// separator, are dropped. Names that are only a directory reference
// become "".
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}
