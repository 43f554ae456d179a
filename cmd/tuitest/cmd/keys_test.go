package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafaeltab/tuitest/keys"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want keys.Key
	}{
		{"Enter", keys.Enter},
		{"escape", keys.Esc},
		{"a", keys.Char('a')},
		{"Space", keys.Char(' ')},
		{"F5", keys.F(5)},
		{"f12", keys.F(12)},
		{"Ctrl+c", keys.Ctrl('c')},
		{"Alt+Left", keys.Left.WithMod(keys.ModAlt)},
		{"Ctrl+Shift+R", keys.Char('R').WithMod(keys.ModCtrl | keys.ModShift)},
	}
	for _, tt := range tests {
		got, err := parseKey(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseKeyErrors(t *testing.T) {
	_, err := parseKey("Hyper+x")
	require.Error(t, err)
	_, err = parseKey("NotAKey")
	require.Error(t, err)
}

func TestKeysCommandOutput(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"keys", "Ctrl+c", "Enter"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "Ctrl+c")
	require.Contains(t, out.String(), `bytes="\x03"`)
	require.Contains(t, out.String(), "tmux=C-c")
	require.Contains(t, out.String(), "tmux=Enter")
}
