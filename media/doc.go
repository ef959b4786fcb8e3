// Package media wraps ffprobe and ffmpeg: it reads the duration of a
// recording, renders its audio track to a mono fixed-bitrate mp3 and cuts
// time ranges out of that render.
//
// Output paths are always chosen by the caller, so the caller can track and
// remove every file this package produces, including partial outputs of a
// failed run.
package media
