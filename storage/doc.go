// Package storage holds uploaded media while it is transcribed.
//
// Storage is the backend interface; storage/local keeps files on disk so
// the media tool and the local model can read them by path. Intake sits in
// front of it and enforces the upload rules: an allowed extension, a
// non-empty body and a size ceiling. It hashes the body while writing so
// the transcript cache can key on content.
//
//	upload:
//	  dir: "/var/lib/scribe/uploads"
//	  max_size: "200MB"
//	  allowed_extensions: [mp4, mp3, wav]
package storage
