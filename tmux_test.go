package tuitest

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireTmux(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("tmux not installed")
	}
}

func TestSocketNamesAreUnique(t *testing.T) {
	a, b := NewSocket(), NewSocket()
	require.NotEqual(t, a.Name(), b.Name())
	require.Contains(t, a.Name(), "test-tmux-")
}

func TestSocketFromName(t *testing.T) {
	s := SocketFromName("my-socket")
	require.Equal(t, "my-socket", s.Name())
}

func TestSocketSessionLifecycle(t *testing.T) {
	requireTmux(t)
	s := NewSocket()
	defer s.KillServer()

	require.False(t, s.SessionExists("demo"))
	require.Empty(t, s.ListSessions())

	_, err := s.Run("new-session", "-d", "-s", "demo", "sleep 60")
	require.NoError(t, err)
	require.True(t, s.SessionExists("demo"))
	require.Contains(t, s.ListSessions(), "demo")

	s.KillSession("demo")
	require.False(t, s.SessionExists("demo"))
}

func TestSocketRunErrorIncludesStderr(t *testing.T) {
	requireTmux(t)
	s := NewSocket()
	defer s.KillServer()

	_, err := s.Run("kill-session", "-t", "does-not-exist")
	require.Error(t, err)
	require.Contains(t, err.Error(), "tmux kill-session")
	require.Contains(t, err.Error(), "stderr:")
}

func TestTmuxCmdRunnerCapturesStreams(t *testing.T) {
	requireTmux(t)
	f := NewFactory()
	defer f.Close()

	res, err := f.TmuxCmd().Run(NewCommand("sh").Args("-c", "printf out; printf err >&2; exit 4"))
	require.NoError(t, err)
	require.Equal(t, "out", res.Stdout)
	require.Equal(t, "err", res.Stderr)
	require.Equal(t, 4, res.ExitCode)
	require.False(t, res.Success)
}

func TestTmuxCmdRunnerSuccess(t *testing.T) {
	requireTmux(t)
	f := NewFactory()
	defer f.Close()

	res, err := f.TmuxCmd().Run(NewCommand("echo").Arg("hello from tmux"))
	require.NoError(t, err)
	require.Equal(t, "hello from tmux\n", res.Stdout)
	require.True(t, res.Success)
}

func TestCapturePaneFindsText(t *testing.T) {
	requireTmux(t)
	fail := &recordFailer{}
	f := NewFactory(WithFailer(fail))
	defer f.Close()

	a, err := f.TmuxCapture().Run(NewCommand("sh").Args("-c", `printf 'pane ready\n'; sleep 10`))
	require.NoError(t, err)
	defer a.Close()

	a.WaitForSettle()
	a.FindText("pane ready").AssertVisible()
	require.False(t, fail.failed(), "failures: %v", fail.failures)
}

func TestCapturePaneExpectCompletionReturnsZero(t *testing.T) {
	requireTmux(t)
	f := NewFactory()
	defer f.Close()

	a, err := f.TmuxCapture().Run(NewCommand("sh").Args("-c", "echo done"))
	require.NoError(t, err)
	defer a.Close()

	// Observing a pane from outside yields no real exit status.
	require.Zero(t, a.ExpectCompletion())
}

func TestFullClientShowsStatusBar(t *testing.T) {
	requireTmux(t)
	fail := &recordFailer{}
	f := NewFactory(WithFailer(fail))
	defer f.Close()

	a, err := f.TmuxFullClient().Run(NewCommand("sh").Args("-c", `printf 'client ready\n'; sleep 10`))
	require.NoError(t, err)
	defer a.Close()

	a.WaitForSettle()
	a.FindText("client ready").AssertVisible()
	require.False(t, fail.failed(), "failures: %v", fail.failures)
}

func TestFactoryClosesServer(t *testing.T) {
	requireTmux(t)
	f := NewFactory()
	_, err := f.Socket().Run("new-session", "-d", "-s", "tmp", "sleep 60")
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.False(t, f.Socket().SessionExists("tmp"))
}
