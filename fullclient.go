package tuitest

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rafaeltab/tuitest/keys"
	"github.com/rafaeltab/tuitest/vt"
)

// FullClientTester runs commands inside a tmux session and observes the
// attached client's own PTY, so the screen includes everything a user at the
// keyboard would see: the program output plus the tmux UI (status bar,
// borders). Input is raw bytes into the client, which means full key support
// and the ability to exercise tmux keybindings themselves.
type FullClientTester struct {
	socket   Socket
	settings Settings
	logger   *slog.Logger
	fail     Failer
}

// NewFullClientTester creates a tester on the given socket.
func NewFullClientTester(socket Socket) *FullClientTester {
	return &FullClientTester{
		socket:   socket,
		settings: DefaultSettings(),
		logger:   discardLogger(),
		fail:     panicFailer{},
	}
}

// SettleTimeout overrides the settle timeout.
func (t *FullClientTester) SettleTimeout(d time.Duration) *FullClientTester {
	t.settings.SettleTimeout = d
	return t
}

// WithLogger routes debug logging to the given logger.
func (t *FullClientTester) WithLogger(l *slog.Logger) *FullClientTester {
	t.logger = l
	return t
}

// WithFailer routes assertion failures to f, typically a *testing.T.
func (t *FullClientTester) WithFailer(f Failer) *FullClientTester {
	t.fail = f
	return t
}

// Run creates a detached session, attaches a real tmux client to it under a
// fresh PTY, and types the command into the pane. The asserter observes the
// client PTY.
func (t *FullClientTester) Run(cmd *Command) (*FullClientAsserter, error) {
	rows, cols := cmd.GetPtySize()
	session := newSessionName()

	if _, err := t.socket.Run("new-session", "-d",
		"-s", session,
		"-x", fmt.Sprint(cols),
		"-y", fmt.Sprint(rows)); err != nil {
		return nil, fmt.Errorf("start full-client session: %w", err)
	}

	// The attached client is itself a program under a PTY; the same backend
	// that runs applications directly runs the tmux client here.
	attach := NewCommand("tmux").
		Args("-L", t.socket.Name(), "attach-session", "-t", session).
		PtySize(rows, cols)
	backend, err := startPty(attach, t.logger)
	if err != nil {
		t.socket.KillSession(session)
		return nil, fmt.Errorf("attach tmux client: %w", err)
	}
	t.logger.Debug("attached tmux client", "session", session, "rows", rows, "cols", cols)

	// Type the command into the pane through the server so it runs in the
	// session's shell regardless of client startup timing.
	if _, err := t.socket.Run("send-keys", "-t", session, shellCommand(cmd), "Enter"); err != nil {
		backend.Close()
		t.socket.KillSession(session)
		return nil, fmt.Errorf("send command to pane: %w", err)
	}

	return &FullClientAsserter{
		backend:  backend,
		socket:   t.socket,
		session:  session,
		terminal: vt.NewBuffer(int(rows), int(cols)),
		settings: t.settings,
		fail:     t.fail,
	}, nil
}

// FullClientAsserter drives a program through an attached tmux client.
type FullClientAsserter struct {
	backend  *ptyBackend
	socket   Socket
	session  string
	terminal *vt.Buffer
	settings Settings
	fail     Failer
}

var _ Asserter = (*FullClientAsserter)(nil)

func (a *FullClientAsserter) pump() {
	if bytes := a.backend.ReadAvailable(); len(bytes) > 0 {
		a.terminal.Write(bytes)
	}
}

// WaitForSettle waits with the configured timeouts.
func (a *FullClientAsserter) WaitForSettle() {
	a.WaitForSettleMs(int(a.settings.SettleTimeout/time.Millisecond), int(a.settings.MaxWait/time.Millisecond))
}

// WaitForSettleMs waits until the client screen has been stable for
// timeoutMs, giving up after maxWaitMs.
func (a *FullClientAsserter) WaitForSettleMs(timeoutMs, maxWaitMs int) {
	settle(a.pump, a.terminal.Render,
		time.Duration(timeoutMs)*time.Millisecond,
		time.Duration(maxWaitMs)*time.Millisecond)
}

// WaitMs sleeps for the given duration while keeping output flowing.
func (a *FullClientAsserter) WaitMs(ms int) {
	pumpFor(time.Duration(ms)*time.Millisecond, a.pump)
}

// ExpectCompletion waits for the screen to settle and returns 0. The command
// runs in the pane's shell; its exit status never reaches the client PTY.
func (a *FullClientAsserter) ExpectCompletion() int {
	a.WaitForSettle()
	return 0
}

// ExpectExitCode waits for completion and fails unless the code matches.
func (a *FullClientAsserter) ExpectExitCode(expected int) {
	actual := a.ExpectCompletion()
	if actual != expected {
		a.fail.Fatalf("Expected exit code %d, got %d. Screen:\n%s", expected, actual, a.Screen())
	}
}

// TypeText writes the literal bytes into the client.
func (a *FullClientAsserter) TypeText(text string) {
	if err := a.backend.WriteBytes([]byte(text)); err != nil {
		a.fail.Fatalf("Failed to type text: %v", err)
	}
}

// PressKey sends one key as raw bytes into the client.
func (a *FullClientAsserter) PressKey(k keys.Key) {
	bytes, err := k.Bytes()
	if err != nil {
		a.fail.Fatalf("Failed to press key: %v", err)
		return
	}
	if err := a.backend.WriteBytes(bytes); err != nil {
		a.fail.Fatalf("Failed to press key: %v", err)
	}
}

// SendKeys sends one key combination built from the list.
func (a *FullClientAsserter) SendKeys(ks []keys.Key) {
	combined, err := keys.Combine(ks)
	if err != nil {
		a.fail.Fatalf("SendKeys: %v", err)
		return
	}
	a.PressKey(combined)
}

// FindText finds exactly one occurrence of text on the current screen.
func (a *FullClientAsserter) FindText(text string) TextMatch {
	return findOne(a.terminal, text, a.settings.DumpOnFailure, a.fail)
}

// FindAllText finds every occurrence of text, ordered top to bottom.
func (a *FullClientAsserter) FindAllText(text string) []TextMatch {
	return findAll(a.terminal, text, a.settings.DumpOnFailure, a.fail)
}

// Screen returns the current rendered screen, tmux UI included.
func (a *FullClientAsserter) Screen() string {
	return a.terminal.Render()
}

// DumpScreen prints the screen to stderr.
func (a *FullClientAsserter) DumpScreen() {
	fmt.Fprintf(os.Stderr, "=== Screen Dump ===\n%s\n===================\n", a.Screen())
}

// Close detaches the client and kills the session.
func (a *FullClientAsserter) Close() error {
	a.socket.KillSession(a.session)
	return a.backend.Close()
}
