package tuitest

// Command describes a program to execute: name, arguments, environment,
// working directory, and the PTY geometry for screen-driving backends.
// Builder methods return the receiver for chaining and may be called in any
// order before the command is handed to a tester.
type Command struct {
	program string
	args    []string
	env     map[string]string
	cwd     string
	rows    uint16
	cols    uint16
}

// DefaultRows and DefaultCols are the PTY geometry used when PtySize is
// never called.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// NewCommand creates a command for the given program.
func NewCommand(program string) *Command {
	return &Command{
		program: program,
		env:     make(map[string]string),
		rows:    DefaultRows,
		cols:    DefaultCols,
	}
}

// Arg appends a single argument.
func (c *Command) Arg(arg string) *Command {
	c.args = append(c.args, arg)
	return c
}

// Args appends multiple arguments.
func (c *Command) Args(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// Env sets one environment variable.
func (c *Command) Env(key, value string) *Command {
	c.env[key] = value
	return c
}

// Envs sets multiple environment variables.
func (c *Command) Envs(env map[string]string) *Command {
	for k, v := range env {
		c.env[k] = v
	}
	return c
}

// Cwd sets the working directory.
func (c *Command) Cwd(dir string) *Command {
	c.cwd = dir
	return c
}

// PtySize sets the terminal geometry for screen-driving backends. Runners
// ignore it.
func (c *Command) PtySize(rows, cols uint16) *Command {
	c.rows = rows
	c.cols = cols
	return c
}

// Program returns the program name.
func (c *Command) Program() string { return c.program }

// BuildArgs returns a copy of the argument list.
func (c *Command) BuildArgs() []string {
	return append([]string(nil), c.args...)
}

// BuildEnv returns a copy of the environment map.
func (c *Command) BuildEnv() map[string]string {
	out := make(map[string]string, len(c.env))
	for k, v := range c.env {
		out[k] = v
	}
	return out
}

// GetCwd returns the working directory, empty if unset.
func (c *Command) GetCwd() string { return c.cwd }

// GetPtySize returns the PTY geometry.
func (c *Command) GetPtySize() (rows, cols uint16) { return c.rows, c.cols }

// CommandResult is the captured outcome of a Runner execution.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Success  bool
}

// NewCommandResult builds a result, deriving Success from the exit code.
func NewCommandResult(stdout, stderr string, exitCode int) CommandResult {
	return CommandResult{
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Success:  exitCode == 0,
	}
}
