package env

import (
	"path/filepath"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
)

// DefaultBuildDirName is the build directory created under the source root.
const DefaultBuildDirName = ".setuptools-cmake-build"

// BuildRequest holds everything one build needs, resolved up front.
type BuildRequest struct {
	SourceDir string
	BuildDir  string
	Defines   buildsys.Defines
	Jobs      int
	Platform  buildsys.Platform
	ExtraArgs []string
}

// Options are the caller supplied parts of a BuildRequest.
type Options struct {
	SourceDir string
	BuildDir  string           // defaults to SourceDir/.setuptools-cmake-build
	Defines   buildsys.Defines // applied after the package name defines
	Jobs      int              // 0 lets ResolveJobs decide
	Platform  buildsys.Platform

	// Consume unsets CMAKE_ARGS once it has been read.
	Consume bool
}

// Resolve builds a BuildRequest from opts and e.
func Resolve(e Environ, opts Options) (*BuildRequest, error) {
	if opts.SourceDir == "" {
		return nil, eris.Wrap(buildsys.ErrConfiguration, "source directory is not set")
	}
	sourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "source directory %q: %v", opts.SourceDir, err)
	}
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = filepath.Join(sourceDir, DefaultBuildDirName)
	}
	if buildDir, err = filepath.Abs(buildDir); err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "build directory %q: %v", opts.BuildDir, err)
	}

	jobs, err := ResolveJobs(opts.Jobs, e)
	if err != nil {
		return nil, err
	}

	var extra []string
	if opts.Consume {
		extra, err = ConsumeExtraArgs(e)
	} else {
		extra, err = ExtraArgs(e)
	}
	if err != nil {
		return nil, err
	}

	return &BuildRequest{
		SourceDir: sourceDir,
		BuildDir:  buildDir,
		Defines:   PackageDefines(e, opts.Defines),
		Jobs:      jobs,
		Platform:  opts.Platform,
		ExtraArgs: extra,
	}, nil
}

// PackageDefines seeds LIBRARY_NAME and PY_LIBRARY_NAME from PY_PKG_NAME
// and merges extra on top.
func PackageDefines(e Environ, extra buildsys.Defines) buildsys.Defines {
	name := Get(e, PackageNameVar, DefaultPackageName)
	ds := buildsys.Defines{
		{Key: "LIBRARY_NAME", Value: name},
		{Key: "PY_LIBRARY_NAME", Value: name + "_main"},
	}
	ds.Merge(extra)
	return ds
}
