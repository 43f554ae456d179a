package tuitest

import "log/slog"

// Factory hands out testers that share one tmux socket, one logger, and one
// failer. A test suite typically creates a Factory up front, picks backends
// per test, and closes the factory at the end to tear down the tmux server.
type Factory struct {
	socket Socket
	logger *slog.Logger
	fail   Failer
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLogger routes debug logging from every tester to l.
func WithLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = l }
}

// WithFailer routes assertion failures from every tester to fail, typically
// a *testing.T.
func WithFailer(fail Failer) FactoryOption {
	return func(f *Factory) { f.fail = fail }
}

// WithSocket uses an existing tmux socket instead of a fresh one.
func WithSocket(s Socket) FactoryOption {
	return func(f *Factory) { f.socket = s }
}

// NewFactory creates a factory with a fresh isolated tmux socket.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		socket: NewSocket(),
		logger: discardLogger(),
		fail:   panicFailer{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Socket returns the factory's tmux socket.
func (f *Factory) Socket() Socket { return f.socket }

// Pty returns a direct-PTY tester.
func (f *Factory) Pty() *PtyTester {
	return NewPtyTester().WithLogger(f.logger).WithFailer(f.fail)
}

// Cmd returns a plain subprocess runner.
func (f *Factory) Cmd() *CmdRunner {
	return NewCmdRunner().WithLogger(f.logger)
}

// TmuxCapture returns a capture-pane tester on the factory socket.
func (f *Factory) TmuxCapture() *TmuxCaptureTester {
	return NewTmuxCaptureTester(f.socket).WithLogger(f.logger).WithFailer(f.fail)
}

// TmuxFullClient returns a full-client tester on the factory socket.
func (f *Factory) TmuxFullClient() *FullClientTester {
	return NewFullClientTester(f.socket).WithLogger(f.logger).WithFailer(f.fail)
}

// TmuxCmd returns a run-shell runner on the factory socket.
func (f *Factory) TmuxCmd() *TmuxCmdRunner {
	return NewTmuxCmdRunner(f.socket).WithLogger(f.logger)
}

// Close kills the tmux server on the factory socket, and with it any
// sessions tests left behind.
func (f *Factory) Close() error {
	f.socket.KillServer()
	return nil
}
