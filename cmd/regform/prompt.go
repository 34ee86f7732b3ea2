package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func promptCmd(flags *globalFlags) *cobra.Command {
	var attempts int

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively",
		Long: `Prompt for every field, then re-prompt only the fields that failed
validation until the form is accepted. The accepted record is printed as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			logger := flags.logger()
			opts, err := cfg.ControllerOptions()
			if err != nil {
				return err
			}
			c, err := formstate.New(append(opts, formstate.WithLogger(logger))...)
			if err != nil {
				return err
			}
			c.Mount()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			record, err := tui.New(tui.WithMaxAttempts(attempts)).Run(ctx, c, formstate.LogSubmission(logger))
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(record); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().IntVar(&attempts, "attempts", 0, "give up after this many submits (0 = unlimited)")
	return cmd
}
