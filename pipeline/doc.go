// Package pipeline runs transcription jobs.
//
// An Orchestrator owns one mode for its lifetime. In local mode the whole
// input goes to the local backend. In remote mode an input that fits one
// request is sent as is; a larger one is rendered to mono audio, probed,
// cut into time ranges and sent range by range, in order, with the texts
// joined at the end. The first failing range fails the job.
//
// Every temporary file a job creates is registered before the tool that
// writes it runs, and removed when Transcribe returns on any path. The
// input file belongs to the caller.
//
//	orch, err := pipeline.New(transcription.ModeRemote, cfg, log,
//	    pipeline.WithRemote(remote),
//	    pipeline.WithMedia(ffmpeg),
//	)
//	res, err := orch.Transcribe(ctx, orch.NewJob(path, size))
//
// Segments are dispatched through a small pull-based Stream so the next
// range is only extracted once the previous one has been transcribed.
package pipeline
