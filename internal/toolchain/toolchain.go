// Package toolchain finds the external executables a build shells out to.
package toolchain

import (
	"github.com/goplus/pyext/internal/env"
	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
	"golang.org/x/sys/execabs"
)

// Locator resolves one tool. An explicit path in the Override variable wins,
// otherwise the first of Candidates found on PATH is used.
type Locator struct {
	Name       string
	Override   string
	Candidates []string
}

// CMake probes cmake3 before cmake, as distributions that ship both keep the
// newer release under the cmake3 name.
var CMake = Locator{
	Name:       "CMake",
	Override:   env.CMakeVar,
	Candidates: []string{"cmake3", "cmake"},
}

// Python is the interpreter whose headers and ABI the extension targets.
var Python = Locator{
	Name:       "Python",
	Override:   env.PythonVar,
	Candidates: []string{"python3", "python"},
}

// Locate returns the absolute path of the tool.
func (l Locator) Locate(e env.Environ) (string, error) {
	if l.Override != "" {
		if p, ok := e.Lookup(l.Override); ok && p != "" {
			abs, err := execabs.LookPath(p)
			if err != nil {
				return "", eris.Wrapf(buildsys.ErrToolNotFound, "%s=%q: %v", l.Override, p, err)
			}
			return abs, nil
		}
	}
	for _, name := range l.Candidates {
		if p, err := execabs.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", eris.Wrapf(buildsys.ErrToolNotFound, "%s must be installed: none of %v found in PATH", l.Name, l.Candidates)
}
