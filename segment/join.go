package segment

import "strings"

// NoSpeech is returned by Join when every input is blank.
const NoSpeech = "(No speech detected)"

// Separator goes between consecutive non-empty segment texts.
const Separator = "\n\n"

// Join trims each text, drops the empty ones, joins the rest in order with
// a blank line and trims the result. An empty result becomes NoSpeech.
func Join(texts []string) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	joined := strings.TrimSpace(strings.Join(parts, Separator))
	if joined == "" {
		return NoSpeech
	}
	return joined
}
