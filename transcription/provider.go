package transcription

import (
	"context"
	"fmt"

	"github.com/kbukum/scribe/provider"
)

// Mode selects which backend handles every job.
type Mode string

const (
	// ModeLocal runs the local model process on the whole file.
	ModeLocal Mode = "local"
	// ModeRemote sends audio to the remote service, splitting when needed.
	ModeRemote Mode = "remote"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeRemote:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("transcription: unknown mode %q (want %q or %q)", s, ModeLocal, ModeRemote)
	}
}

// Remote transcribes a single audio file that fits one request.
type Remote interface {
	provider.Provider

	// TranscribeOne returns the transcript text of the file at path. Files
	// larger than MaxPayloadBytes fail with SEGMENT_TOO_LARGE before any
	// network call.
	TranscribeOne(ctx context.Context, path string) (string, error)
	// MaxPayloadBytes is the largest file the service accepts.
	MaxPayloadBytes() int64
	// Label is the service name shown by the mode query.
	Label() string
}

// Local transcribes a whole file in one run, regardless of size.
type Local interface {
	provider.Provider

	// TranscribeWhole returns the transcript text of the file at path.
	TranscribeWhole(ctx context.Context, path string) (string, error)
}
