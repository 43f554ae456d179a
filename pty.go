package tuitest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/rafaeltab/tuitest/keys"
	"github.com/rafaeltab/tuitest/vt"
)

// PtyTester runs commands directly in a pseudo-terminal, with no tmux
// involvement. It is the fastest backend: full key support, direct exit
// codes, and the fewest layers to debug. $TMUX is not set for the child.
type PtyTester struct {
	rows, cols uint16
	settings   Settings
	logger     *slog.Logger
	fail       Failer
}

// NewPtyTester creates a tester with default geometry and settings.
func NewPtyTester() *PtyTester {
	return &PtyTester{
		rows:     DefaultRows,
		cols:     DefaultCols,
		settings: DefaultSettings(),
		logger:   discardLogger(),
		fail:     panicFailer{},
	}
}

// TerminalSize overrides the default PTY geometry. A Command with its own
// PtySize takes precedence.
func (t *PtyTester) TerminalSize(rows, cols uint16) *PtyTester {
	t.rows = rows
	t.cols = cols
	return t
}

// SettleTimeout overrides the settle timeout.
func (t *PtyTester) SettleTimeout(d time.Duration) *PtyTester {
	t.settings.SettleTimeout = d
	return t
}

// WithLogger routes debug logging to the given logger.
func (t *PtyTester) WithLogger(l *slog.Logger) *PtyTester {
	t.logger = l
	return t
}

// WithFailer routes assertion failures to f, typically a *testing.T.
func (t *PtyTester) WithFailer(f Failer) *PtyTester {
	t.fail = f
	return t
}

// Run spawns the command in a fresh PTY and returns its asserter. The caller
// must Close the asserter; Close kills the process if it is still running.
func (t *PtyTester) Run(cmd *Command) (*PtyAsserter, error) {
	rows, cols := cmd.GetPtySize()
	if rows == DefaultRows && cols == DefaultCols {
		rows, cols = t.rows, t.cols
	}
	sized := *cmd
	sized.rows, sized.cols = rows, cols

	backend, err := startPty(&sized, t.logger)
	if err != nil {
		return nil, err
	}
	return &PtyAsserter{
		backend:  backend,
		terminal: vt.NewBuffer(int(rows), int(cols)),
		settings: t.settings,
		fail:     t.fail,
	}, nil
}

// PtyAsserter drives a program running in a raw PTY.
type PtyAsserter struct {
	backend  *ptyBackend
	terminal *vt.Buffer
	settings Settings
	fail     Failer
}

var _ Asserter = (*PtyAsserter)(nil)

// pump moves any pending PTY output into the terminal buffer.
func (a *PtyAsserter) pump() {
	if bytes := a.backend.ReadAvailable(); len(bytes) > 0 {
		a.terminal.Write(bytes)
	}
}

// WaitForSettle waits with the configured timeouts.
func (a *PtyAsserter) WaitForSettle() {
	a.WaitForSettleMs(int(a.settings.SettleTimeout/time.Millisecond), int(a.settings.MaxWait/time.Millisecond))
}

// WaitForSettleMs waits until the screen has been stable for timeoutMs,
// giving up after maxWaitMs.
func (a *PtyAsserter) WaitForSettleMs(timeoutMs, maxWaitMs int) {
	settle(a.pump, a.terminal.Render,
		time.Duration(timeoutMs)*time.Millisecond,
		time.Duration(maxWaitMs)*time.Millisecond)
}

// WaitMs sleeps for the given duration while keeping output flowing.
func (a *PtyAsserter) WaitMs(ms int) {
	pumpFor(time.Duration(ms)*time.Millisecond, a.pump)
}

// ExpectCompletion blocks until the process exits, drains its final output
// into the screen, and returns its exit code.
func (a *PtyAsserter) ExpectCompletion() int {
	code := a.backend.Wait()
	a.backend.WaitDrained()
	a.pump()
	return code
}

// ExpectExitCode waits for exit and fails unless the code matches.
func (a *PtyAsserter) ExpectExitCode(expected int) {
	actual := a.ExpectCompletion()
	if actual != expected {
		a.fail.Fatalf("Expected exit code %d, got %d. Screen:\n%s", expected, actual, a.Screen())
	}
}

// TypeText writes the literal bytes of text, bypassing key encoding.
func (a *PtyAsserter) TypeText(text string) {
	if err := a.backend.WriteBytes([]byte(text)); err != nil {
		a.fail.Fatalf("Failed to type text: %v", err)
	}
}

// PressKey sends one key.
func (a *PtyAsserter) PressKey(k keys.Key) {
	bytes, err := k.Bytes()
	if err != nil {
		a.fail.Fatalf("Failed to press key: %v", err)
		return
	}
	if err := a.backend.WriteBytes(bytes); err != nil {
		a.fail.Fatalf("Failed to press key: %v", err)
	}
}

// SendKeys sends one key combination: any number of bare modifiers plus
// exactly one concrete key. Independent keystrokes go through repeated
// PressKey calls instead.
func (a *PtyAsserter) SendKeys(ks []keys.Key) {
	combined, err := keys.Combine(ks)
	if err != nil {
		a.fail.Fatalf("SendKeys: %v", err)
		return
	}
	a.PressKey(combined)
}

// FindText finds exactly one occurrence of text on the current screen.
func (a *PtyAsserter) FindText(text string) TextMatch {
	return findOne(a.terminal, text, a.settings.DumpOnFailure, a.fail)
}

// FindAllText finds every occurrence of text, ordered top to bottom.
func (a *PtyAsserter) FindAllText(text string) []TextMatch {
	return findAll(a.terminal, text, a.settings.DumpOnFailure, a.fail)
}

// Screen returns the current rendered screen.
func (a *PtyAsserter) Screen() string {
	return a.terminal.Render()
}

// DumpScreen prints the screen to stderr.
func (a *PtyAsserter) DumpScreen() {
	fmt.Fprintf(os.Stderr, "=== Screen Dump ===\n%s\n===================\n", a.Screen())
}

// Close kills the process if still running and releases the PTY.
func (a *PtyAsserter) Close() error {
	return a.backend.Close()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
