// Package tuitest drives terminal programs under test. A tester launches a
// command through one of several backends (a raw PTY, a tmux pane observed
// with capture-pane, or a full tmux client) and returns an Asserter: a handle
// for sending input, waiting for the screen to settle, and asserting on what
// is visually present.
//
// Non-interactive commands go through a Runner instead, which captures
// stdout, stderr, and the exit code without any screen emulation. Both
// contracts share the same Command description, so one command specification
// can run through either kind of backend.
package tuitest

import (
	"fmt"

	"github.com/rafaeltab/tuitest/keys"
)

// Failer receives assertion and usage failures. *testing.T satisfies it, so
// tests plug straight in; outside a test the default failer panics.
type Failer interface {
	Fatalf(format string, args ...any)
}

// panicFailer is the failer used when none is provided.
type panicFailer struct{}

func (panicFailer) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// Asserter is the uniform contract over all screen-driving backends. Test
// code written against it runs unchanged on a direct PTY, a tmux pane, or a
// full tmux client.
type Asserter interface {
	// Lifecycle.
	WaitForSettle()
	WaitForSettleMs(timeoutMs, maxWaitMs int)
	WaitMs(ms int)
	ExpectCompletion() int
	ExpectExitCode(expected int)

	// Input.
	TypeText(text string)
	PressKey(k keys.Key)
	SendKeys(ks []keys.Key)

	// Queries.
	FindText(text string) TextMatch
	FindAllText(text string) []TextMatch
	Screen() string

	// Debug.
	DumpScreen()

	// Close tears down the session, killing the underlying process if it is
	// still running. Always safe to defer.
	Close() error
}

// Runner executes a command to completion and captures its output. No screen
// emulation is involved.
type Runner interface {
	Run(cmd *Command) (CommandResult, error)
}
