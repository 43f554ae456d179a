package tuitest

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// CmdRunner executes commands as plain subprocesses, capturing stdout,
// stderr, and the exit code. No PTY, no screen; the workhorse for testing
// non-interactive commands.
type CmdRunner struct {
	logger *slog.Logger
}

// NewCmdRunner creates a subprocess runner.
func NewCmdRunner() *CmdRunner {
	return &CmdRunner{logger: discardLogger()}
}

// WithLogger routes debug logging to the given logger.
func (r *CmdRunner) WithLogger(l *slog.Logger) *CmdRunner {
	r.logger = l
	return r
}

var _ Runner = (*CmdRunner)(nil)

// Run executes the command to completion. A non-zero exit code is a result,
// not an error; errors mean the command could not run at all.
func (r *CmdRunner) Run(c *Command) (CommandResult, error) {
	cmd := exec.Command(c.Program(), c.BuildArgs()...)
	if dir := c.GetCwd(); dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.BuildEnv() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running command", "program", c.Program(), "args", c.BuildArgs())
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return CommandResult{}, fmt.Errorf("run %q: %w", c.Program(), err)
		}
	}

	return NewCommandResult(stdout.String(), stderr.String(), cmd.ProcessState.ExitCode()), nil
}
