// Package process runs external tools (ffmpeg, ffprobe, the local model
// script) as subprocesses with captured output, process-group termination
// and per-run timeouts.
package process
