package tuitest

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rafaeltab/tuitest/keys"
	"github.com/rafaeltab/tuitest/vt"
)

// TmuxCaptureTester runs commands inside a detached tmux pane and observes
// them with capture-pane. The captured content is the application's output
// without any tmux UI; input goes through send-keys, so only keys tmux can
// name are available.
type TmuxCaptureTester struct {
	socket   Socket
	settings Settings
	logger   *slog.Logger
	fail     Failer
}

// NewTmuxCaptureTester creates a tester on the given socket.
func NewTmuxCaptureTester(socket Socket) *TmuxCaptureTester {
	return &TmuxCaptureTester{
		socket:   socket,
		settings: DefaultSettings(),
		logger:   discardLogger(),
		fail:     panicFailer{},
	}
}

// SettleTimeout overrides the settle timeout.
func (t *TmuxCaptureTester) SettleTimeout(d time.Duration) *TmuxCaptureTester {
	t.settings.SettleTimeout = d
	return t
}

// WithLogger routes debug logging to the given logger.
func (t *TmuxCaptureTester) WithLogger(l *slog.Logger) *TmuxCaptureTester {
	t.logger = l
	return t
}

// WithFailer routes assertion failures to f, typically a *testing.T.
func (t *TmuxCaptureTester) WithFailer(f Failer) *TmuxCaptureTester {
	t.fail = f
	return t
}

// Run starts the command in a new detached session sized to the command's
// PTY geometry and returns its asserter.
func (t *TmuxCaptureTester) Run(cmd *Command) (*CapturePaneAsserter, error) {
	rows, cols := cmd.GetPtySize()
	session := newSessionName()

	args := []string{
		"new-session", "-d",
		"-s", session,
		"-x", fmt.Sprint(cols),
		"-y", fmt.Sprint(rows),
	}
	if dir := cmd.GetCwd(); dir != "" {
		args = append(args, "-c", dir)
	}
	args = append(args, shellCommand(cmd))

	if _, err := t.socket.Run(args...); err != nil {
		return nil, fmt.Errorf("start capture-pane session: %w", err)
	}
	t.logger.Debug("started tmux session", "session", session, "program", cmd.Program())

	a := &CapturePaneAsserter{
		socket:   t.socket,
		session:  session,
		terminal: vt.NewBuffer(int(rows), int(cols)),
		settings: t.settings,
		logger:   t.logger,
		fail:     t.fail,
	}
	a.capture()
	return a, nil
}

// CapturePaneAsserter drives a program in a tmux pane via capture-pane and
// send-keys.
type CapturePaneAsserter struct {
	socket   Socket
	session  string
	terminal *vt.Buffer
	settings Settings
	logger   *slog.Logger
	fail     Failer
}

var _ Asserter = (*CapturePaneAsserter)(nil)

// capture refreshes the terminal from the pane. Each capture is a full
// screen, so the buffer is cleared and reprocessed rather than appended to.
func (a *CapturePaneAsserter) capture() {
	out, err := a.socket.Run("capture-pane", "-t", a.session,
		"-p", // print to stdout
		"-e", // include escape sequences, colors survive
		"-J", // join wrapped lines
	)
	if err != nil {
		// Pane gone usually means the program exited; keep the last screen.
		a.logger.Debug("capture-pane failed", "session", a.session, "error", err)
		return
	}
	a.terminal.Clear()
	a.terminal.Write([]byte(out))
}

// WaitForSettle waits with the configured timeouts.
func (a *CapturePaneAsserter) WaitForSettle() {
	a.WaitForSettleMs(int(a.settings.SettleTimeout/time.Millisecond), int(a.settings.MaxWait/time.Millisecond))
}

// WaitForSettleMs waits until the captured screen has been stable for
// timeoutMs, giving up after maxWaitMs.
func (a *CapturePaneAsserter) WaitForSettleMs(timeoutMs, maxWaitMs int) {
	settle(a.capture, a.terminal.Render,
		time.Duration(timeoutMs)*time.Millisecond,
		time.Duration(maxWaitMs)*time.Millisecond)
}

// WaitMs sleeps for the given duration while keeping captures fresh.
func (a *CapturePaneAsserter) WaitMs(ms int) {
	pumpFor(time.Duration(ms)*time.Millisecond, a.capture)
}

// ExpectCompletion waits for the screen to settle and returns 0. Observing a
// pane from outside gives no real exit status; completion here means the
// program stopped drawing.
func (a *CapturePaneAsserter) ExpectCompletion() int {
	a.WaitForSettle()
	return 0
}

// ExpectExitCode waits for completion and fails unless the code matches.
func (a *CapturePaneAsserter) ExpectExitCode(expected int) {
	actual := a.ExpectCompletion()
	if actual != expected {
		a.fail.Fatalf("Expected exit code %d, got %d. Screen:\n%s", expected, actual, a.Screen())
	}
}

// TypeText sends the text literally, with tmux key lookup disabled.
func (a *CapturePaneAsserter) TypeText(text string) {
	if _, err := a.socket.Run("send-keys", "-t", a.session, "-l", text); err != nil {
		a.fail.Fatalf("Failed to type text: %v", err)
	}
}

// PressKey sends one key by its tmux name.
func (a *CapturePaneAsserter) PressKey(k keys.Key) {
	name, err := k.TmuxName()
	if err != nil {
		a.fail.Fatalf("Failed to press key: %v", err)
		return
	}
	if _, err := a.socket.Run("send-keys", "-t", a.session, name); err != nil {
		a.fail.Fatalf("Failed to press key: %v", err)
	}
}

// SendKeys sends one key combination built from the list.
func (a *CapturePaneAsserter) SendKeys(ks []keys.Key) {
	combined, err := keys.Combine(ks)
	if err != nil {
		a.fail.Fatalf("SendKeys: %v", err)
		return
	}
	a.PressKey(combined)
}

// FindText finds exactly one occurrence of text on the current screen.
func (a *CapturePaneAsserter) FindText(text string) TextMatch {
	return findOne(a.terminal, text, a.settings.DumpOnFailure, a.fail)
}

// FindAllText finds every occurrence of text, ordered top to bottom.
func (a *CapturePaneAsserter) FindAllText(text string) []TextMatch {
	return findAll(a.terminal, text, a.settings.DumpOnFailure, a.fail)
}

// Screen returns the current rendered screen.
func (a *CapturePaneAsserter) Screen() string {
	return a.terminal.Render()
}

// DumpScreen prints the screen to stderr.
func (a *CapturePaneAsserter) DumpScreen() {
	fmt.Fprintf(os.Stderr, "=== Screen Dump ===\n%s\n===================\n", a.Screen())
}

// Close kills the session, and with it the program if still running.
func (a *CapturePaneAsserter) Close() error {
	a.socket.KillSession(a.session)
	return nil
}

// shellCommand renders a Command as a single bash command line: env exports,
// optional cd, then the program with single-quoted arguments.
func shellCommand(c *Command) string {
	env := c.BuildEnv()
	envKeys := make([]string, 0, len(env))
	for k := range env {
		envKeys = append(envKeys, k)
	}
	sort.Strings(envKeys)

	var parts []string
	for _, k := range envKeys {
		parts = append(parts, fmt.Sprintf("export %s=%s", k, shellQuote(env[k])))
	}
	if dir := c.GetCwd(); dir != "" {
		parts = append(parts, "cd "+shellQuote(dir))
	}
	run := []string{shellQuote(c.Program())}
	for _, arg := range c.BuildArgs() {
		run = append(run, shellQuote(arg))
	}
	parts = append(parts, strings.Join(run, " "))
	return strings.Join(parts, "; ")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
