// Package env resolves build requests from the process environment.
package env

import "os"

// Variables read by the orchestrator.
const (
	PackageNameVar = "PY_PKG_NAME"
	MaxJobsVar     = "MAX_JOBS"
	ExtraArgsVar   = "CMAKE_ARGS"
	PythonVar      = "PYTHON_EXECUTABLE"
	CMakeVar       = "CMAKE_EXECUTABLE"
)

// DefaultPackageName is used when PY_PKG_NAME is unset.
const DefaultPackageName = "pydeploy"

// Environ is the view of environment variables a build needs.
type Environ interface {
	Lookup(key string) (string, bool)
	Unset(key string) error
}

// OS is the Environ of the current process.
type OS struct{}

func (OS) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (OS) Unset(key string) error { return os.Unsetenv(key) }

// Map is an in-memory Environ.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Map) Unset(key string) error {
	delete(m, key)
	return nil
}

// Get returns the value of key, or def when key is unset. A variable set
// to the empty string yields "".
func Get(e Environ, key, def string) string {
	if v, ok := e.Lookup(key); ok {
		return v
	}
	return def
}
