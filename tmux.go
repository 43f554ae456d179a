package tuitest

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// Socket is a private tmux server, addressed by a unique -L socket name so
// concurrent test runs never touch each other or the developer's own tmux.
// Every tmux operation in this package goes through a Socket; nothing ever
// talks to the default server.
type Socket struct {
	name string
}

// NewSocket creates a socket with a fresh unique name. No server is started
// until the first tmux command runs.
func NewSocket() Socket {
	return Socket{name: "test-tmux-" + uuid.NewString()}
}

// SocketFromName wraps an existing socket name.
func SocketFromName(name string) Socket {
	return Socket{name: name}
}

// Name returns the -L socket name.
func (s Socket) Name() string { return s.name }

// Run executes a tmux command against this socket and returns its stdout.
// SHELL is pinned to /bin/bash so user shell configuration (prompts, rc
// files) cannot leak into test panes.
func (s Socket) Run(args ...string) (string, error) {
	full := append([]string{"-L", s.name}, args...)
	cmd := exec.Command("tmux", full...)
	cmd.Env = append(cmd.Environ(), "SHELL=/bin/bash")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w (stderr: %s)", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ListSessions returns the session names on this socket. A socket with no
// server yet has no sessions.
func (s Socket) ListSessions() []string {
	out, err := s.Run("list-sessions", "-F", "#{session_name}")
	if err != nil {
		return nil
	}
	var sessions []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			sessions = append(sessions, line)
		}
	}
	return sessions
}

// SessionExists reports whether a session with the given name exists.
func (s Socket) SessionExists(name string) bool {
	_, err := s.Run("has-session", "-t", name)
	return err == nil
}

// KillSession tears down one session, ignoring already-gone errors.
func (s Socket) KillSession(name string) {
	s.Run("kill-session", "-t", name) //nolint:errcheck
}

// KillServer tears down the whole server on this socket. Safe to call when
// no server is running.
func (s Socket) KillServer() {
	s.Run("kill-server") //nolint:errcheck
}

// newSessionName returns a unique tmux session name.
func newSessionName() string {
	return "tuitest-" + uuid.NewString()[:8]
}
