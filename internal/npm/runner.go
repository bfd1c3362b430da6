package npm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner abstracts external command execution for testing.
type Runner interface {
	// Run executes name with args in dir and returns combined output.
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// execRunner runs commands through os/exec.
type execRunner struct{}

// NewExecRunner creates the production Runner.
func NewExecRunner() Runner {
	return execRunner{}
}

// Run executes the command and returns its combined output. A non-zero
// exit is returned as an error wrapping the exec failure.
func (execRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("run %s: %w", name, err)
	}
	return out.String(), nil
}
