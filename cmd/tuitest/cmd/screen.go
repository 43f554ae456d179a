package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafaeltab/tuitest"
)

var screenCmd = &cobra.Command{
	Use:   "screen [flags] -- program [args...]",
	Short: "Run a command in a PTY, wait for settle, and print the screen",
	Long: `Run a command under the direct-PTY backend, wait until its output has
settled, then print the rendered screen. This shows exactly the text a
test assertion would see.

Examples:
  tuitest screen -- htop
  tuitest screen --rows 10 --cols 40 --settle 200 -- ls --color=always
  tuitest screen --config defaults.yaml -- git log --oneline
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.Flags().Uint16("rows", 0, "terminal rows (default 24)")
	screenCmd.Flags().Uint16("cols", 0, "terminal columns (default 80)")
	screenCmd.Flags().Int("settle", 0, "settle timeout in ms (default 100)")
	screenCmd.Flags().Int("max-wait", 0, "max settle wait in ms (default 5000)")
	screenCmd.Flags().StringArray("env", nil, "environment variable KEY=VALUE (repeatable)")
	screenCmd.Flags().String("cwd", "", "working directory")
}

func runScreen(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	command, err := buildCommand(cmd, args)
	if err != nil {
		return err
	}

	rows := pickUint16(cmd, "rows", cfg.Rows, tuitest.DefaultRows)
	cols := pickUint16(cmd, "cols", cfg.Cols, tuitest.DefaultCols)
	command.PtySize(rows, cols)

	settleMs := pickInt(cmd, "settle", cfg.SettleTimeoutMs, 100)
	maxWaitMs := pickInt(cmd, "max-wait", cfg.MaxWaitMs, 5000)

	tester := tuitest.NewPtyTester().
		WithLogger(logger).
		SettleTimeout(time.Duration(settleMs) * time.Millisecond)

	asserter, err := tester.Run(command)
	if err != nil {
		return err
	}
	defer asserter.Close()

	asserter.WaitForSettleMs(settleMs, maxWaitMs)
	fmt.Fprintln(cmd.OutOrStdout(), asserter.Screen())
	return nil
}

// pickUint16 resolves flag > config file > built-in default.
func pickUint16(cmd *cobra.Command, name string, fromConfig, fallback uint16) uint16 {
	if v, err := cmd.Flags().GetUint16(name); err == nil && v != 0 {
		return v
	}
	if fromConfig != 0 {
		return fromConfig
	}
	return fallback
}

func pickInt(cmd *cobra.Command, name string, fromConfig, fallback int) int {
	if v, err := cmd.Flags().GetInt(name); err == nil && v != 0 {
		return v
	}
	if fromConfig != 0 {
		return fromConfig
	}
	return fallback
}
