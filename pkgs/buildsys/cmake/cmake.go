// Package cmake assembles and runs the cmake configure and build invocations.
package cmake

import (
	"context"
	"errors"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
	"golang.org/x/sys/execabs"
)

// CMake drives a CMake project through configure and build.
//
// Configure runs "cmake <defines> <platform flags> <extra args> <source>" from
// inside the build directory, Build runs "cmake --build ." from the same place.
type CMake struct {
	exe       string
	sourceDir string
	buildDir  string
	buildType string
	defines   buildsys.Defines
	strategy  Strategy
	runner    Runner
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a CMake using exe as the cmake binary.
// The platform strategy defaults to POSIX and the runner to ExecRunner.
func New(exe, sourceDir, buildDir string) *CMake {
	return &CMake{
		exe:       exe,
		sourceDir: sourceDir,
		buildDir:  buildDir,
		strategy:  POSIX{},
		runner:    &ExecRunner{},
	}
}

// Source overrides the source directory.
func (c *CMake) Source(dir string) { c.sourceDir = dir }

// BuildDir returns the directory both invocations run in.
func (c *CMake) BuildDir() string { return c.buildDir }

// Strategy sets the platform flag strategy.
func (c *CMake) Strategy(s Strategy) { c.strategy = s }

// Runner replaces the process runner.
func (c *CMake) Runner(r Runner) { c.runner = r }

// BuildType records the build variant and emits -DCMAKE_BUILD_TYPE at the
// current position of the define list.
func (c *CMake) BuildType(name string) {
	c.buildType = name
	c.Define("CMAKE_BUILD_TYPE", name)
}

// Define adds a -D<key>=<value> definition. Redefining a key keeps its position.
func (c *CMake) Define(key, value string) {
	c.defines.Set(key, value)
}

// DefineBool adds a -D<key>=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines.Set(key, v)
}

// Defines returns the definitions in emission order.
func (c *CMake) Defines() buildsys.Defines {
	return append(buildsys.Defines(nil), c.defines...)
}

// ConfigureArgs returns the full configure argv. Extra args land after the
// platform flags; the source directory is always the last token.
func (c *CMake) ConfigureArgs(extra ...string) []string {
	args := []string{c.exe}
	args = append(args, c.defines.Args()...)
	args = append(args, c.strategy.ConfigureArgs()...)
	args = append(args, extra...)
	return append(args, c.sourceDir)
}

// BuildArgs returns the full build argv limited to jobs parallel compile units.
func (c *CMake) BuildArgs(jobs int) []string {
	args := []string{c.exe, "--build", "."}
	return append(args, c.strategy.CompileArgs(c.buildType, jobs)...)
}

// Configure runs the configure phase. Extra args are appended after the
// platform flags.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	return c.run(ctx, "configure", c.ConfigureArgs(args...))
}

// Build runs the build phase.
func (c *CMake) Build(ctx context.Context, jobs int) error {
	return c.run(ctx, "build", c.BuildArgs(jobs))
}

func (c *CMake) run(ctx context.Context, phase string, argv []string) error {
	err := c.runner.Run(ctx, c.buildDir, argv)
	if err == nil {
		return nil
	}
	var exitErr *execabs.ExitError
	if errors.As(err, &exitErr) {
		return eris.Wrapf(buildsys.ErrChildProcess, "cmake %s exited with status %d", phase, exitErr.ExitCode())
	}
	return eris.Wrapf(buildsys.ErrChildProcess, "cmake %s: %v", phase, err)
}
