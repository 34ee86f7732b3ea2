package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/config"
)

type globalFlags struct {
	configPath string
	policy     string
	logLevel   string
}

func main() {
	flags := &globalFlags{}
	rootCmd := newRootCmd(flags)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidValues) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(flags *globalFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "regform",
		Short: "Registration form with declarative validation",
		Long: `regform serves, prompts for and validates a five field registration
form (first name, last name, gender, age, email).

Two validation policies are available:
  strict    age required; email length checked before format (default)
  nullable  blank age accepted as null; email required`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&flags.policy, "policy", "p", "", "validation policy (overrides config and "+config.EnvPolicy+")")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		serveCmd(flags),
		promptCmd(flags),
		validateCmd(flags),
		schemaCmd(flags),
		policiesCmd(),
	)
	return rootCmd
}

// loadConfig layers the config file, the environment and the flags.
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if p := strings.TrimSpace(f.policy); p != "" {
		cfg.Policy = p
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (f *globalFlags) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
