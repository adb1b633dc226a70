package build

import (
	"os"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
)

// PrepareDir creates dir and any missing parents. An existing directory is
// left alone.
func PrepareDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(buildsys.ErrFilesystem, "create build directory: %v", err)
	}
	return nil
}
