// Package version reports the build of the running service.
//
// Version, commit, branch and build time are set at link time; missing
// values are filled from the Go build info when the binary was built from a
// VCS checkout:
//
//	go build -ldflags "-X github.com/kbukum/scribe/version.Version=1.0.0" ./cmd/scribed
package version
