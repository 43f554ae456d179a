package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunPropagatesExitCode(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"run", "--", "sh", "-c", "echo before; exit 3"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		runCmd.SilenceErrors = false
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Equal(t, 3, ExitCode(err))
	require.Contains(t, out.String(), "before")
}

func TestExitCodeFallsBackToOne(t *testing.T) {
	require.Equal(t, 1, ExitCode(errors.New("spawn failed")))
}
