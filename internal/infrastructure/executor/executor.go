package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// LocalRunner runs programs on the host directly, without a shell.
type LocalRunner struct {
	logger ports.Logger
}

// NewLocalRunner builds a runner. A nil logger disables debug output.
func NewLocalRunner(logger ports.Logger) *LocalRunner {
	return &LocalRunner{logger: logger}
}

// Run implements ports.CommandRunner. No timeout is applied beyond ctx.
func (r *LocalRunner) Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error) {
	c := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		err = nil
	default:
		result.ExitCode = -1
	}

	if r.logger != nil {
		r.logger.Debug("command finished", map[string]interface{}{
			"command":     name,
			"args":        args,
			"exit_code":   result.ExitCode,
			"duration_ms": duration,
		})
	}
	return result, err
}

var _ ports.CommandRunner = (*LocalRunner)(nil)
