package env

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
)

// ResolveJobs picks the build parallelism: an explicit positive count wins,
// then MAX_JOBS, then the number of usable CPUs. Zero means "not given".
func ResolveJobs(explicit int, e Environ) (int, error) {
	if explicit < 0 {
		return 0, eris.Wrapf(buildsys.ErrConfiguration, "job count must be positive, got %d", explicit)
	}
	if explicit > 0 {
		return explicit, nil
	}
	if v, ok := e.Lookup(MaxJobsVar); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return 0, eris.Wrapf(buildsys.ErrConfiguration, "%s=%q is not a positive integer", MaxJobsVar, v)
		}
		return n, nil
	}
	return runtime.NumCPU(), nil
}
