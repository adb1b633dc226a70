// Package options loads the optional build options file.
//
// The file is YAML:
//
//	source_dir: .
//	build_dir: .setuptools-cmake-build
//	defines:
//	  WITH_GPU: OFF
//	  ENABLE_VISION: ON
//
// Entries under defines are emitted in the order they appear in the file.
package options

import (
	"os"
	"strings"

	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the source directory when no file is given.
const DefaultFile = "pyext.yaml"

// File is a decoded options file.
type File struct {
	SourceDir string
	BuildDir  string
	Defines   buildsys.Defines
}

type schema struct {
	SourceDir string    `yaml:"source_dir"`
	BuildDir  string    `yaml:"build_dir"`
	Defines   yaml.Node `yaml:"defines"`
}

// Load reads and parses path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "read options %s: %v", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "options %s", path)
	}
	return f, nil
}

// Parse decodes an options document.
func Parse(data []byte) (*File, error) {
	var s schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "decode: %v", err)
	}
	defines, err := decodeDefines(&s.Defines)
	if err != nil {
		return nil, err
	}
	return &File{SourceDir: s.SourceDir, BuildDir: s.BuildDir, Defines: defines}, nil
}

func decodeDefines(n *yaml.Node) (buildsys.Defines, error) {
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, eris.Wrapf(buildsys.ErrConfiguration, "line %d: defines must be a mapping", n.Line)
	}
	var ds buildsys.Defines
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Value == "" {
			return nil, eris.Wrapf(buildsys.ErrConfiguration, "line %d: define name must be a non-empty string", k.Line)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, eris.Wrapf(buildsys.ErrConfiguration, "line %d: value of %s must be a scalar", v.Line, k.Value)
		}
		if _, dup := ds.Get(k.Value); dup {
			return nil, eris.Wrapf(buildsys.ErrConfiguration, "line %d: duplicate define %s", k.Line, k.Value)
		}
		ds.Set(k.Value, v.Value)
	}
	return ds, nil
}

// ParseDefine splits a KEY=VALUE command line define.
func ParseDefine(s string) (buildsys.Define, error) {
	if k, v, ok := strings.Cut(s, "="); ok && k != "" {
		return buildsys.Define{Key: k, Value: v}, nil
	}
	return buildsys.Define{}, eris.Wrapf(buildsys.ErrConfiguration, "define %q is not KEY=VALUE", s)
}
