package tuitest

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// ptyBackend owns a process attached to a pseudo-terminal. A background
// goroutine drains the PTY into a mutex-guarded buffer so the child never
// blocks on a full kernel buffer while the test is busy elsewhere; a second
// goroutine reaps the process so exit status is available without blocking.
type ptyBackend struct {
	master *os.File
	cmd    *exec.Cmd
	logger *slog.Logger

	mu  sync.Mutex
	buf []byte

	done     chan struct{}
	readDone chan struct{}
	exitCode int

	closeOnce sync.Once
}

// startPty launches the command attached to a new PTY of the given size.
func startPty(c *Command, logger *slog.Logger) (*ptyBackend, error) {
	rows, cols := c.GetPtySize()

	cmd := exec.Command(c.Program(), c.BuildArgs()...)
	if dir := c.GetCwd(); dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.BuildEnv() {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		return nil, fmt.Errorf("spawn %q in pty: %w", c.Program(), err)
	}
	logger.Debug("spawned pty process", "program", c.Program(), "pid", cmd.Process.Pid, "rows", rows, "cols", cols)

	b := &ptyBackend{
		master:   master,
		cmd:      cmd,
		logger:   logger,
		done:     make(chan struct{}),
		readDone: make(chan struct{}),
	}

	go b.readLoop()
	go b.reap()

	return b, nil
}

// readLoop drains the master side into the shared buffer until the PTY
// closes. Read errors after child exit (EIO on Linux) end the loop quietly;
// readDone closes once the final output is in the buffer.
func (b *ptyBackend) readLoop() {
	defer close(b.readDone)
	chunk := make([]byte, 4096)
	for {
		n, err := b.master.Read(chunk)
		if n > 0 {
			b.mu.Lock()
			b.buf = append(b.buf, chunk[:n]...)
			b.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// reap waits for the child and records its exit code.
func (b *ptyBackend) reap() {
	err := b.cmd.Wait()
	b.exitCode = b.cmd.ProcessState.ExitCode()
	if err != nil && b.exitCode < 0 {
		b.logger.Debug("pty process wait", "error", err)
	}
	close(b.done)
}

// ReadAvailable returns and clears whatever the reader has accumulated.
// Never blocks; returns nil when nothing is pending.
func (b *ptyBackend) ReadAvailable() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.buf) == 0 {
		return nil
	}
	out := b.buf
	b.buf = nil
	return out
}

// WriteBytes sends input to the child through the PTY.
func (b *ptyBackend) WriteBytes(p []byte) error {
	if _, err := b.master.Write(p); err != nil {
		return fmt.Errorf("pty write: %w", err)
	}
	return nil
}

// TryWait reports the exit code if the child has exited, without blocking.
func (b *ptyBackend) TryWait() (code int, exited bool) {
	select {
	case <-b.done:
		return b.exitCode, true
	default:
		return 0, false
	}
}

// Wait blocks until the child exits and returns its exit code.
func (b *ptyBackend) Wait() int {
	<-b.done
	return b.exitCode
}

// WaitDrained blocks until the reader goroutine has observed the PTY close,
// so ReadAvailable holds the child's final output. cmd.Wait can return
// before the last PTY chunk has been read; call this after Wait when the
// screen contents matter.
func (b *ptyBackend) WaitDrained() {
	<-b.readDone
}

// Close kills the child if still running, reaps it, and releases the PTY.
// Idempotent.
func (b *ptyBackend) Close() error {
	b.closeOnce.Do(func() {
		if _, exited := b.TryWait(); !exited {
			if err := b.cmd.Process.Kill(); err != nil {
				b.logger.Debug("pty process kill", "error", err)
			}
		}
		<-b.done
		b.master.Close()
	})
	return nil
}
