// Package component defines the lifecycle interface for the service's
// infrastructure (HTTP server, transcript cache) and a Registry that starts
// them in order and stops them in reverse.
package component
