package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:   "tuitest",
	Short: "Debug tooling for the terminal test harness",
	Long: `tuitest runs commands through the harness backends from the shell,
so test authors can see what a test would see: the rendered screen after
settle, captured stdout/stderr/exit codes, and key encodings.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	configPath string
	debug      bool
)

// Config are the file-loadable defaults shared by the run and screen
// commands. All fields are optional; zero values fall back to built-ins.
type Config struct {
	Rows            uint16 `yaml:"rows"`
	Cols            uint16 `yaml:"cols"`
	SettleTimeoutMs int    `yaml:"settle_timeout_ms"`
	MaxWaitMs       int    `yaml:"max_wait_ms"`
	DumpOnFailure   *bool  `yaml:"dump_on_failure"`
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML defaults file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the --config file when given.
func loadConfig() (Config, error) {
	var cfg Config
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", configPath, err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger, debug level behind --debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
