package util

import (
	"path/filepath"
	"strings"
)

// NormalizeExtension lowercases an extension and strips the leading dot.
// It accepts either a bare extension ("MP4", ".mp4") or a file name.
func NormalizeExtension(s string) string {
	s = strings.TrimSpace(s)
	if ext := filepath.Ext(s); ext != "" {
		s = ext
	}
	return strings.ToLower(strings.TrimPrefix(s, "."))
}

// NormalizeExtensions normalizes every entry, dropping blanks and
// duplicates while keeping the first occurrence order.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = NormalizeExtension(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
