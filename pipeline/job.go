package pipeline

import (
	"time"

	"github.com/kbukum/scribe/transcription"
)

// Job is one transcription request. It owns every temporary file created
// on its behalf; those are named after ID so concurrent jobs never collide.
type Job struct {
	ID        string
	InputPath string
	// Size is the input size in bytes. Zero means unknown; the file is
	// stat'ed when the remote size guard needs it.
	Size int64
	Mode transcription.Mode
}

// Result is a finished transcript.
type Result struct {
	JobID string             `json:"job_id"`
	Mode  transcription.Mode `json:"mode"`
	Text  string             `json:"text"`
	// Segments is the number of ranges transcribed, 0 when the input was
	// sent whole.
	Segments int           `json:"segments"`
	Duration time.Duration `json:"duration"`
}

// State is a step of the job state machine.
type State string

const (
	StateInvoking             State = "invoking"
	StateSingleShot           State = "single_shot"
	StateExtractingAudio      State = "extracting_audio"
	StatePlanning             State = "planning"
	StateTranscribingSegments State = "transcribing_segments"
	StateJoining              State = "joining"
	StateSucceeded            State = "succeeded"
	StateFailed               State = "failed"
)
