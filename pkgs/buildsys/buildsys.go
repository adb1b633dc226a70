package buildsys

import "context"

// BuildSystem captures the two-phase lifecycle shared by native build helpers.
// Configure generates project files without compiling anything, Build runs
// the generated project. Both block until the spawned tool exits.
type BuildSystem interface {
	// Basic paths.
	Source(dir string)
	BuildDir() string

	// Options forwarded to the configure phase.
	Define(key, value string)
	DefineBool(key string, value bool)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, jobs int) error
}

// Arch is the pointer width of the interpreter the build links against.
type Arch string

const (
	Arch64 Arch = "64bit"
	Arch32 Arch = "32bit"
)

// Platform describes the host a build runs for.
type Platform struct {
	OS   string // GOOS spelling: "windows", "linux", "darwin", ...
	Arch Arch
}

// IsWindows reports whether p belongs to the Windows family.
func (p Platform) IsWindows() bool {
	return p.OS == "windows"
}

func (p Platform) String() string {
	return p.OS + "/" + string(p.Arch)
}
