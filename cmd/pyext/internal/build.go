package internal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/pyext/internal/build"
	"github.com/goplus/pyext/internal/options"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"
)

var (
	buildJobs    int
	buildSource  string
	buildDir     string
	buildDefines []string
	buildOptions string
	buildDryRun  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and compile the CMake project",
	Long: `Build configures the CMake project in the build directory and compiles it.

Environment:
  PY_PKG_NAME        package name, sets LIBRARY_NAME and PY_LIBRARY_NAME (default pydeploy)
  MAX_JOBS           parallel compile jobs when -j is not given
  CMAKE_ARGS         extra configure arguments as shell-quoted words, cleared once read
  CMAKE_EXECUTABLE   cmake binary (default cmake3 or cmake from PATH)
  PYTHON_EXECUTABLE  interpreter to build for (default python3 or python from PATH)`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.IntVarP(&buildJobs, "jobs", "j", 0, "Number of parallel compile jobs (default $MAX_JOBS or all CPUs)")
	f.StringVar(&buildSource, "source", "", "CMake project root (default current directory)")
	f.StringVar(&buildDir, "build-dir", "", "Build directory (default <source>/.setuptools-cmake-build)")
	f.StringArrayVarP(&buildDefines, "define", "D", nil, "Extra KEY=VALUE cmake definition, may be repeated")
	f.StringVar(&buildOptions, "options", "", "YAML options file (default <source>/"+options.DefaultFile+" when present)")
	f.BoolVar(&buildDryRun, "dry-run", false, "Print the cmake invocations instead of running them")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	opts, err := buildOptionsFromFlags()
	if err != nil {
		return err
	}
	o := build.New(opts)

	if buildDryRun {
		plan, err := o.Plan(cmd.Context(), buildJobs)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := printArgs(out, plan.Configure); err != nil {
			return err
		}
		return printArgs(out, plan.Compile)
	}
	return o.Build(cmd.Context(), buildJobs)
}

// buildOptionsFromFlags merges the options file with the command line.
// Flags win over the file; -D defines are applied after the file's defines.
func buildOptionsFromFlags() (build.Options, error) {
	var opts build.Options

	source := buildSource
	if source == "" {
		source = "."
	}

	file, err := loadOptionsFile(source)
	if err != nil {
		return opts, err
	}
	if file != nil {
		if buildSource == "" && file.SourceDir != "" {
			source = file.SourceDir
		}
		opts.BuildDir = file.BuildDir
		opts.Defines = file.Defines
	}
	opts.SourceDir = source
	if buildDir != "" {
		opts.BuildDir = buildDir
	}

	for _, s := range buildDefines {
		d, err := options.ParseDefine(s)
		if err != nil {
			return opts, err
		}
		opts.Defines.Set(d.Key, d.Value)
	}
	return opts, nil
}

// loadOptionsFile returns the explicit --options file, or the default file
// in source when it exists. Relative paths inside the file are resolved
// against the file's directory.
func loadOptionsFile(source string) (*options.File, error) {
	path := buildOptions
	if path == "" {
		path = filepath.Join(source, options.DefaultFile)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
	}
	file, err := options.Load(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	if file.SourceDir != "" && !filepath.IsAbs(file.SourceDir) {
		file.SourceDir = filepath.Join(base, file.SourceDir)
	}
	if file.BuildDir != "" && !filepath.IsAbs(file.BuildDir) {
		file.BuildDir = filepath.Join(base, file.BuildDir)
	}
	return file, nil
}

// printArgs writes argv as a single shell-quoted command line.
func printArgs(w io.Writer, argv []string) error {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		q, err := syntax.Quote(a, syntax.LangPOSIX)
		if err != nil {
			return fmt.Errorf("quote %q: %w", a, err)
		}
		quoted = append(quoted, q)
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, " "))
	return err
}
