// Package logger wraps zerolog for the service.
//
// Output is JSON or a compact console format. Loggers are derived per
// component and per request; WithContext picks up the request ID, job ID and
// the active trace.
//
//	logging:
//	  level: info
//	  format: json
//
//	log := logger.Init(cfg.Logging, "scribe").WithComponent("pipeline")
//	log.Info("segment transcribed", logger.Fields(logger.FieldJobID, id, logger.FieldSegment, 2))
package logger
