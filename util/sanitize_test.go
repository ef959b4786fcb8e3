package util

import "testing"

func TestSanitizeEnvValue(t *testing.T) {
	tests := map[string]string{
		`"sk-abc"`:       "sk-abc",
		`'sk-abc'`:       "sk-abc",
		`  " sk-abc "  `: "sk-abc",
		"sk-abc\n":       "sk-abc",
		`"sk-abc'`:       `"sk-abc'`,
		`"`:              `"`,
		"":               "",
	}
	for in, want := range tests {
		if got := SanitizeEnvValue(in); got != want {
			t.Errorf("SanitizeEnvValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "talk.mp4", "talk.mp4"},
		{"unix traversal", "../../etc/talk.mp4", "talk.mp4"},
		{"windows path", `C:\Users\me\talk.wav`, "talk.wav"},
		{"control chars", "ta\x00lk\n.mp3", "talk.mp3"},
		{"padded", "  meeting notes.m4a ", "meeting notes.m4a"},
		{"trailing separator", "uploads/", ""},
		{"parent only", "uploads/..", ""},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFilename(tc.input); got != tc.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
