// Package transcription defines the backend contracts used by the pipeline.
//
// A Remote backend transcribes one bounded audio file per call and reports
// its payload limit; the pipeline splits anything larger. A Local backend
// transcribes a whole file of any size in one run.
//
// # Backends
//
//   - transcription/openai: OpenAI-compatible /audio/transcriptions
//   - transcription/local: a local model process speaking JSON on stdout/stderr
package transcription
