// Package python queries the host interpreter for the values a native
// extension build is configured with.
package python

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
	"golang.org/x/mod/semver"
	"golang.org/x/sys/execabs"
)

// Interpreter describes a Python installation.
type Interpreter struct {
	Executable  string
	IncludeDir  string
	Version     string // major.minor, e.g. "3.11"
	ExtSuffix   string // e.g. ".cpython-311-x86_64-linux-gnu.so"; empty when unknown
	PointerBits int
}

// Arch reports the pointer width the interpreter was built for.
func (i *Interpreter) Arch() buildsys.Arch {
	if i.PointerBits == 32 {
		return buildsys.Arch32
	}
	return buildsys.Arch64
}

const probeScript = `import json, struct, sys, sysconfig
print(json.dumps({
    "executable": sys.executable,
    "include": sysconfig.get_paths()["include"],
    "version": "%d.%d.%d" % sys.version_info[:3],
    "ext_suffix": sysconfig.get_config_var("EXT_SUFFIX") or "",
    "pointer_bits": struct.calcsize("P") * 8,
}))
`

type probeResult struct {
	Executable  string `json:"executable"`
	Include     string `json:"include"`
	Version     string `json:"version"`
	ExtSuffix   string `json:"ext_suffix"`
	PointerBits int    `json:"pointer_bits"`
}

// Probe runs exe once and decodes what it reports about itself.
func Probe(ctx context.Context, exe string) (*Interpreter, error) {
	cmd := execabs.CommandContext(ctx, exe, "-c", probeScript)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "probe %s: %v: %s", exe, err, strings.TrimSpace(stderr.String()))
	}
	return parse(out)
}

func parse(out []byte) (*Interpreter, error) {
	var r probeResult
	if err := json.Unmarshal(bytes.TrimSpace(out), &r); err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "decode interpreter info: %v", err)
	}
	version, err := MajorMinor(r.Version)
	if err != nil {
		return nil, err
	}
	if r.Executable == "" || r.Include == "" {
		return nil, eris.Wrap(buildsys.ErrConfiguration, "interpreter did not report its executable and include directory")
	}
	return &Interpreter{
		Executable:  r.Executable,
		IncludeDir:  r.Include,
		Version:     version,
		ExtSuffix:   r.ExtSuffix,
		PointerBits: r.PointerBits,
	}, nil
}

// MajorMinor reduces a dotted version such as "3.11.4" to "3.11".
func MajorMinor(v string) (string, error) {
	sv := "v" + strings.TrimPrefix(v, "v")
	if !semver.IsValid(sv) {
		return "", eris.Wrapf(buildsys.ErrConfiguration, "invalid interpreter version %q", v)
	}
	return strings.TrimPrefix(semver.MajorMinor(sv), "v"), nil
}
