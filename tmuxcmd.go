package tuitest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

// TmuxCmdRunner executes commands to completion inside a tmux server via
// run-shell. stdout, stderr, and the exit code do not travel through the
// pane; the command is wrapped so each lands in its own temp file, and a
// unique sentinel marker in the run-shell output signals that the wrapper
// finished. This gives tmux-hosted commands the same clean CommandResult a
// plain subprocess gets.
type TmuxCmdRunner struct {
	socket  Socket
	maxWait time.Duration
	logger  *slog.Logger
}

// NewTmuxCmdRunner creates a runner on the given socket.
func NewTmuxCmdRunner(socket Socket) *TmuxCmdRunner {
	return &TmuxCmdRunner{
		socket:  socket,
		maxWait: DefaultSettings().MaxWait,
		logger:  discardLogger(),
	}
}

// WithLogger routes debug logging to the given logger.
func (r *TmuxCmdRunner) WithLogger(l *slog.Logger) *TmuxCmdRunner {
	r.logger = l
	return r
}

var _ Runner = (*TmuxCmdRunner)(nil)

// Run wraps the command so its three output channels survive the trip
// through tmux, run-shells it, and reassembles the result.
func (r *TmuxCmdRunner) Run(c *Command) (CommandResult, error) {
	dir, err := os.MkdirTemp("", "tuitest-cmd-")
	if err != nil {
		return CommandResult{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	var (
		stdoutPath = filepath.Join(dir, "stdout")
		stderrPath = filepath.Join(dir, "stderr")
		exitPath   = filepath.Join(dir, "exit")
		marker     = "tuitest-done-" + uuid.NewString()
	)

	// The wrapper never fails itself: the command's exit code is captured
	// before the sentinel prints, so a missing sentinel means the wrapper
	// (not the command) went wrong.
	script := fmt.Sprintf("{ %s; } >%s 2>%s; printf '%%s' $? >%s; printf '%%s\\n' %s",
		shellCommand(c),
		shellQuote(stdoutPath), shellQuote(stderrPath), shellQuote(exitPath),
		shellQuote(marker))

	// run-shell needs a live server; start-server is a no-op when one exists.
	if _, err := r.socket.Run("start-server"); err != nil {
		return CommandResult{}, fmt.Errorf("tmux start-server: %w", err)
	}

	out, err := r.socket.Run("run-shell", script)
	if err != nil {
		return CommandResult{}, fmt.Errorf("tmux run-shell: %w", err)
	}

	// The sentinel comes back through tmux and may carry escape sequences;
	// strip before matching. run-shell normally blocks until the wrapper is
	// done, but fall back to polling the exit file in case output was routed
	// to a pane instead.
	if !strings.Contains(ansi.Strip(out), marker) {
		r.logger.Debug("sentinel not in run-shell output, polling exit file", "marker", marker)
		if !r.awaitFile(exitPath) {
			return CommandResult{}, fmt.Errorf("tmux run-shell: no sentinel %q and no exit file after %s", marker, r.maxWait)
		}
	}

	stdout, err := os.ReadFile(stdoutPath)
	if err != nil {
		return CommandResult{}, fmt.Errorf("read captured stdout: %w", err)
	}
	stderr, err := os.ReadFile(stderrPath)
	if err != nil {
		return CommandResult{}, fmt.Errorf("read captured stderr: %w", err)
	}
	exitRaw, err := os.ReadFile(exitPath)
	if err != nil {
		return CommandResult{}, fmt.Errorf("read captured exit code: %w", err)
	}
	exitCode, err := strconv.Atoi(strings.TrimSpace(string(exitRaw)))
	if err != nil {
		return CommandResult{}, fmt.Errorf("parse captured exit code %q: %w", exitRaw, err)
	}

	return NewCommandResult(string(stdout), string(stderr), exitCode), nil
}

// awaitFile polls until the file exists and is non-empty, up to maxWait.
func (r *TmuxCmdRunner) awaitFile(path string) bool {
	deadline := time.Now().Add(r.maxWait)
	for time.Now().Before(deadline) {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return true
		}
		time.Sleep(settleInterval)
	}
	return false
}
