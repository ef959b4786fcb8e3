// Package server provides the HTTP front end of the transcription service:
// a Gin engine wrapped for h2c, handler-level middleware and the
// registry component that starts and stops it.
//
// # Routes
//
//   - POST /api/transcribe: multipart field "file", answers {"text": ...}
//   - GET /api/mode: {"mode": ...}, the active backend label
//   - GET /health, /ready, /info (server/endpoint)
//
// Failures are written as {"error": message} with the status carried by the
// errors.AppError; see RespondWithError.
//
// # Middleware
//
// Built-in middleware (server/middleware), outermost first:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and context propagation
//   - CORS: cross-origin headers for browser clients
//   - BodySizeLimit: request body ceiling
//   - RequestLogger: access log with duration tracking
package server
