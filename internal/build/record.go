package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// recordFile sits in the build directory after a successful build and
// describes how the directory was produced:
//
//	buildDir/
//	  .pyext-build.json   # invocations, jobs, platform, time
//	  CMakeCache.txt
//	  compile_commands.json
//	  ...
const recordFile = ".pyext-build.json"

// record describes one successful build.
type record struct {
	Configure []string  `json:"configure"`
	Compile   []string  `json:"compile"`
	Jobs      int       `json:"jobs"`
	Platform  string    `json:"platform"`
	BuildTime time.Time `json:"build_time"`
}

func newRecord(p *Plan) *record {
	return &record{
		Configure: p.Configure,
		Compile:   p.Compile,
		Jobs:      p.Request.Jobs,
		Platform:  p.Request.Platform.String(),
		BuildTime: time.Now(),
	}
}

// loadRecord reads the record of the last build in dir.
func loadRecord(dir string) (*record, error) {
	data, err := os.ReadFile(filepath.Join(dir, recordFile))
	if err != nil {
		return nil, err
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// saveRecord writes r into dir.
func saveRecord(dir string, r *record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, recordFile), data, 0o644)
}
