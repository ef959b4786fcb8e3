// Package segment plans time ranges for splitting long recordings and
// joins per-segment transcripts back into one ordered document.
//
// Both functions are pure: no I/O, no shared state.
//
//	ranges := segment.Plan(duration, segment.DefaultLength)
//	// ... render and transcribe each range in order ...
//	text := segment.Join(texts)
package segment
