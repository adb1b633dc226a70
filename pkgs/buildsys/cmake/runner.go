package cmake

import (
	"context"
	"io"
	"os"

	"golang.org/x/sys/execabs"
)

// Runner executes one external process and waits for it.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) error
}

// ExecRunner runs processes with execabs. Nil writers default to the
// current process's stdout and stderr. The child inherits the process
// environment.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string) error {
	cmd := execabs.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}
