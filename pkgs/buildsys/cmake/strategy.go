package cmake

import (
	"strconv"

	"github.com/goplus/pyext/pkgs/buildsys"
)

// Strategy produces the platform specific part of both invocations.
type Strategy interface {
	// ConfigureArgs is appended after the defines of the configure phase.
	ConfigureArgs() []string
	// CompileArgs is appended after "--build ." of the build phase.
	CompileArgs(buildType string, jobs int) []string
}

// StrategyFor picks the strategy for p. pyVersion is the interpreter's
// major.minor version; only Windows needs it, to link against libpython.
func StrategyFor(p buildsys.Platform, pyVersion string) Strategy {
	if p.IsWindows() {
		return Windows{Arch: p.Arch, PyVersion: pyVersion}
	}
	return POSIX{}
}

// Windows targets the Visual Studio generators.
type Windows struct {
	Arch      buildsys.Arch
	PyVersion string
}

func (w Windows) ConfigureArgs() []string {
	args := []string{"-DPY_VERSION=" + w.PyVersion}
	if w.Arch == buildsys.Arch64 {
		return append(args, "-A", "x64", "-T", "host=x64")
	}
	return append(args, "-A", "Win32", "-T", "host=x86")
}

// CompileArgs selects the multi-config variant and hands the job limit to MSBuild.
func (w Windows) CompileArgs(buildType string, jobs int) []string {
	return []string{"--config", buildType, "--", "/maxcpucount:" + strconv.Itoa(jobs)}
}

// POSIX targets single-config make style generators.
type POSIX struct{}

func (POSIX) ConfigureArgs() []string { return nil }

func (POSIX) CompileArgs(_ string, jobs int) []string {
	return []string{"--", "-j", strconv.Itoa(jobs)}
}
