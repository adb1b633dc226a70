// Package build runs the configure and compile phases of a native extension
// build exactly once per Orchestrator.
package build

import (
	"context"
	"errors"
	"io/fs"
	"runtime"
	"slices"

	"github.com/goplus/pyext/internal/env"
	"github.com/goplus/pyext/internal/python"
	"github.com/goplus/pyext/internal/toolchain"
	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/goplus/pyext/pkgs/buildsys/cmake"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BuildType is the variant every build is configured and compiled with.
const BuildType = "Release"

// State is the lifecycle of an Orchestrator.
type State int

const (
	NotStarted State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Locator resolves the path of an external executable.
type Locator interface {
	Locate(e env.Environ) (string, error)
}

// ProbeFunc reports on the interpreter at exe.
type ProbeFunc func(ctx context.Context, exe string) (*python.Interpreter, error)

// Options configures an Orchestrator. Zero fields take the defaults noted.
type Options struct {
	SourceDir string
	BuildDir  string           // default SourceDir/.setuptools-cmake-build
	Defines   buildsys.Defines // appended after LIBRARY_NAME and PY_LIBRARY_NAME

	// Platform overrides host detection. An empty OS means runtime.GOOS,
	// an empty Arch means the pointer width of the probed interpreter.
	Platform buildsys.Platform

	Environ env.Environ     // default env.OS{}
	Runner  cmake.Runner    // default cmake.ExecRunner writing to stdout/stderr
	CMake   Locator         // default toolchain.CMake
	Python  Locator         // default toolchain.Python
	Probe   ProbeFunc       // default python.Probe
	Logger  *zerolog.Logger // default the global zerolog logger
}

// Plan is the pair of invocations a build runs.
type Plan struct {
	Request   *env.BuildRequest
	Configure []string
	Compile   []string
}

// Orchestrator performs one configure+compile cycle. It is single use: once
// Build has been called, further calls return nil without doing anything,
// whatever the outcome of the first call. Create one per build session.
// An Orchestrator is not safe for concurrent use.
type Orchestrator struct {
	opts  Options
	built bool
	state State
}

// New returns an Orchestrator in the NotStarted state.
func New(opts Options) *Orchestrator {
	if opts.Environ == nil {
		opts.Environ = env.OS{}
	}
	if opts.Runner == nil {
		opts.Runner = &cmake.ExecRunner{}
	}
	if opts.CMake == nil {
		opts.CMake = toolchain.CMake
	}
	if opts.Python == nil {
		opts.Python = toolchain.Python
	}
	if opts.Probe == nil {
		opts.Probe = python.Probe
	}
	if opts.Logger == nil {
		opts.Logger = &log.Logger
	}
	return &Orchestrator{opts: opts}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Build configures and compiles the project, blocking until both toolchain
// processes exit. jobs caps parallel compile units; 0 defers to MAX_JOBS and
// then to the CPU count. CMAKE_ARGS is consumed before any toolchain process
// starts. A failed configure phase skips the compile phase.
func (o *Orchestrator) Build(ctx context.Context, jobs int) (err error) {
	logger := o.opts.Logger
	if o.built {
		logger.Debug().Stringer("state", o.state).Msg("Build already performed, skipping")
		return nil
	}
	o.built = true
	o.state = Running
	defer func() {
		if err != nil {
			o.state = Failed
		} else {
			o.state = Completed
		}
		logger.Debug().Stringer("state", o.state).Msg("Build finished")
	}()

	c, plan, err := o.prepare(ctx, jobs, true)
	if err != nil {
		return err
	}
	req := plan.Request
	if len(req.ExtraArgs) > 0 {
		logger.Info().Strs("args", req.ExtraArgs).Msg("Extra cmake args")
	}

	if err := PrepareDir(req.BuildDir); err != nil {
		return err
	}
	o.comparePrevious(plan)

	logger.Info().Strs("args", plan.Configure).Str("dir", req.BuildDir).Msg("Configuring")
	if err := c.Configure(ctx, req.ExtraArgs...); err != nil {
		return err
	}
	logger.Info().Strs("args", plan.Compile).Int("jobs", req.Jobs).Msg("Compiling")
	if err := c.Build(ctx, req.Jobs); err != nil {
		return err
	}

	if err := saveRecord(req.BuildDir, newRecord(plan)); err != nil {
		logger.Warn().Err(err).Msg("Failed to write build record")
	}
	return nil
}

// comparePrevious reports how the build directory was last configured.
func (o *Orchestrator) comparePrevious(plan *Plan) {
	logger := o.opts.Logger
	prev, err := loadRecord(plan.Request.BuildDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Err(err).Msg("Ignoring unreadable build record")
		}
		return
	}
	if !slices.Equal(prev.Configure, plan.Configure) {
		logger.Info().
			Strs("previous", prev.Configure).
			Time("built", prev.BuildTime).
			Msg("Configure arguments changed since last build")
		return
	}
	logger.Debug().Time("built", prev.BuildTime).Msg("Reusing build directory")
}

// Plan resolves both invocations without running them. Unlike Build it
// leaves CMAKE_ARGS in place and does not count as a build.
func (o *Orchestrator) Plan(ctx context.Context, jobs int) (*Plan, error) {
	_, plan, err := o.prepare(ctx, jobs, false)
	return plan, err
}

func (o *Orchestrator) prepare(ctx context.Context, jobs int, consume bool) (*cmake.CMake, *Plan, error) {
	e := o.opts.Environ

	cmakeExe, err := o.opts.CMake.Locate(e)
	if err != nil {
		return nil, nil, err
	}
	pythonExe, err := o.opts.Python.Locate(e)
	if err != nil {
		return nil, nil, err
	}

	req, err := env.Resolve(e, env.Options{
		SourceDir: o.opts.SourceDir,
		BuildDir:  o.opts.BuildDir,
		Defines:   o.opts.Defines,
		Jobs:      jobs,
		Platform:  o.opts.Platform,
		Consume:   consume,
	})
	if err != nil {
		return nil, nil, err
	}

	interp, err := o.opts.Probe(ctx, pythonExe)
	if err != nil {
		return nil, nil, err
	}
	if req.Platform.OS == "" {
		req.Platform.OS = runtime.GOOS
	}
	if req.Platform.Arch == "" {
		req.Platform.Arch = interp.Arch()
	}
	o.opts.Logger.Debug().
		Str("cmake", cmakeExe).
		Str("python", interp.Executable).
		Str("python_version", interp.Version).
		Stringer("platform", req.Platform).
		Int("jobs", req.Jobs).
		Msg("Resolved build request")

	c := cmake.New(cmakeExe, req.SourceDir, req.BuildDir)
	c.Runner(o.opts.Runner)
	c.Strategy(cmake.StrategyFor(req.Platform, interp.Version))
	c.Define("PYTHON_INCLUDE_DIR", interp.IncludeDir)
	c.Define("PYTHON_EXECUTABLE", interp.Executable)
	c.DefineBool("BUILD_FASTDEPLOY_PYTHON", true)
	c.DefineBool("CMAKE_EXPORT_COMPILE_COMMANDS", true)
	c.Define("PY_EXT_SUFFIX", interp.ExtSuffix)
	c.BuildType(BuildType)
	for _, d := range req.Defines {
		c.Define(d.Key, d.Value)
	}

	return c, &Plan{
		Request:   req,
		Configure: c.ConfigureArgs(req.ExtraArgs...),
		Compile:   c.BuildArgs(req.Jobs),
	}, nil
}
