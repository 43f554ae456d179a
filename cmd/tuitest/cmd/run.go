package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafaeltab/tuitest"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- program [args...]",
	Short: "Run a command to completion and print its captured output",
	Long: `Execute a command through a non-interactive runner, print the captured
stdout and stderr, and exit with the command's own exit code.

Examples:
  tuitest run -- ls -l
  tuitest run --tmux -- git status
  tuitest run --env FOO=bar --cwd /tmp -- sh -c 'echo "$FOO" "$PWD"'
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

// exitCodeError carries the child's non-zero exit code up to main, so
// deferred teardown (the tmux server, in particular) runs before the
// process exits.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// ExitCode maps an Execute error to the process exit code, passing a child
// command's own code through.
func ExitCode(err error) int {
	var ec exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	return 1
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("tmux", false, "run inside a tmux server via run-shell")
	runCmd.Flags().StringArray("env", nil, "environment variable KEY=VALUE (repeatable)")
	runCmd.Flags().String("cwd", "", "working directory")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	command, err := buildCommand(cmd, args)
	if err != nil {
		return err
	}

	var runner tuitest.Runner
	useTmux, _ := cmd.Flags().GetBool("tmux")
	if useTmux {
		factory := tuitest.NewFactory(tuitest.WithLogger(logger))
		defer factory.Close()
		runner = factory.TmuxCmd()
	} else {
		runner = tuitest.NewCmdRunner().WithLogger(logger)
	}

	res, err := runner.Run(command)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
	fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
	if res.ExitCode != 0 {
		cmd.SilenceErrors = true
		return exitCodeError{code: res.ExitCode}
	}
	return nil
}

// buildCommand assembles a harness Command from args and shared flags.
func buildCommand(cmd *cobra.Command, args []string) (*tuitest.Command, error) {
	command := tuitest.NewCommand(args[0]).Args(args[1:]...)

	if envs, err := cmd.Flags().GetStringArray("env"); err == nil {
		for _, kv := range envs {
			k, v, ok := splitEnv(kv)
			if !ok {
				return nil, fmt.Errorf("invalid --env %q, want KEY=VALUE", kv)
			}
			command.Env(k, v)
		}
	}
	if cwd, err := cmd.Flags().GetString("cwd"); err == nil && cwd != "" {
		command.Cwd(cwd)
	}
	return command, nil
}

func splitEnv(kv string) (key, value string, ok bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			if i == 0 {
				return "", "", false
			}
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}
