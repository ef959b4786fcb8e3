// Package util provides small helpers shared by the transcription service:
// size parsing, secret masking, string sanitization and file name handling.
package util
