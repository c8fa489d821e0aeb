package rsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/rs/zerolog"
)

// Executor runs rsync commands. It reports the process exit code, -1 when
// the process could not be started, and a non-nil error on any failure.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (exitCode int, err error)
}

// ExecExecutor runs commands as child processes
type ExecExecutor struct {
	logger zerolog.Logger
}

// NewExecExecutor creates an executor backed by os/exec
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{
		logger: logging.GetLogger("rsync.executor"),
	}
}

// Execute runs cmd and waits for it to finish
func (e *ExecExecutor) Execute(ctx context.Context, cmd Command) (int, error) {
	args := cmd.Args()
	logging.LogCommand(e.logger, cmd.Name(), args)

	proc := exec.CommandContext(ctx, cmd.Name(), args...)

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	err := proc.Run()

	if stdout.Len() > 0 {
		e.logger.Debug().Str("output", stdout.String()).Msg("Command stdout")
	}
	if stderr.Len() > 0 {
		e.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return exitCode, err
	}

	return 0, nil
}
