package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rafaeltab/tuitest/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys <key>...",
	Short: "Print byte and tmux encodings for key names",
	Long: `Show how the harness encodes keys for each backend: the raw bytes a
PTY backend writes and the name a tmux backend passes to send-keys.

Key names: single characters, Enter, Esc, Tab, Backspace, Up, Down, Left,
Right, Home, End, PageUp, PageDown, Delete, Insert, F1-F12. Prefix with
modifiers joined by '+', e.g. Ctrl+c, Alt+Left, Ctrl+Shift+R.

Examples:
  tuitest keys Enter Ctrl+c
  tuitest keys Ctrl+Shift+R F5 Alt+Left
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	for _, name := range args {
		key, err := parseKey(name)
		if err != nil {
			return err
		}

		bytes, err := key.Bytes()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		tmux, err := key.TmuxName()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%-16s bytes=%q tmux=%s\n", key, bytes, tmux)
	}
	return nil
}

// parseKey turns "Ctrl+Shift+R" style names into a Key.
func parseKey(s string) (keys.Key, error) {
	parts := strings.Split(s, "+")
	var mods keys.Mod
	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(part) {
		case "ctrl":
			mods |= keys.ModCtrl
		case "alt":
			mods |= keys.ModAlt
		case "shift":
			mods |= keys.ModShift
		case "super":
			mods |= keys.ModSuper
		default:
			return keys.Key{}, fmt.Errorf("unknown modifier %q in %q", part, s)
		}
	}

	base, err := parseBaseKey(parts[len(parts)-1])
	if err != nil {
		return keys.Key{}, err
	}
	return base.WithMod(mods), nil
}

func parseBaseKey(s string) (keys.Key, error) {
	named := map[string]keys.Key{
		"enter": keys.Enter, "esc": keys.Esc, "escape": keys.Esc,
		"tab": keys.Tab, "backspace": keys.Backspace,
		"up": keys.Up, "down": keys.Down, "left": keys.Left, "right": keys.Right,
		"home": keys.Home, "end": keys.End,
		"pageup": keys.PageUp, "pagedown": keys.PageDown,
		"delete": keys.Delete, "insert": keys.Insert,
		"space": keys.Char(' '),
	}
	if k, ok := named[strings.ToLower(s)]; ok {
		return k, nil
	}

	var n int
	if _, err := fmt.Sscanf(strings.ToUpper(s), "F%d", &n); err == nil && n >= 1 && n <= 12 {
		return keys.F(n), nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return keys.Char(runes[0]), nil
	}
	return keys.Key{}, fmt.Errorf("unknown key %q", s)
}
