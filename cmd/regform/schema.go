package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/openapi"
)

func schemaCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
		path   string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the active policy as an OpenAPI 3 document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			policy, err := cfg.PolicyValue()
			if err != nil {
				return err
			}
			doc, err := openapi.Export(cmd.Context(), policy, openapi.WithPath(path), openapi.WithTitle(cfg.Title))
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "json", "":
				data = append(doc.JSON(), '\n')
			case "yaml", "yml":
				if data, err = doc.YAML(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "OpenAPI document written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&path, "path", "/register", "path of the submit operation")
	return cmd
}
