package buildsys

import "github.com/rotisserie/eris"

// Every failure of a build is one of these kinds. Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrToolNotFound is returned when no candidate executable is on PATH.
	ErrToolNotFound = eris.New("tool not found")

	// ErrConfiguration is returned for malformed overrides or options.
	ErrConfiguration = eris.New("invalid configuration")

	// ErrFilesystem is returned when the build directory cannot be prepared.
	ErrFilesystem = eris.New("filesystem error")

	// ErrChildProcess is returned when a toolchain invocation does not exit 0.
	ErrChildProcess = eris.New("child process failed")
)
