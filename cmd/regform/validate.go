package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/validation"
)

// errInvalidValues makes the process exit with status 1 after the field
// errors have been printed.
var errInvalidValues = errors.New("values are invalid")

func validateCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a YAML or JSON file of field values",
		Long: `Validate a file of raw field values against the active policy.

A valid file prints the normalized record; an invalid one prints one line per
failing field and exits with status 1.

Example file:
  firstName: Jane
  lastName: Doe
  gender: female
  age: 30
  email: jane@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			policy, err := cfg.PolicyValue()
			if err != nil {
				return err
			}
			values, err := config.LoadValues(args[0])
			if err != nil {
				return err
			}
			validator, err := validation.New(policy)
			if err != nil {
				return err
			}

			record, errs := validator.Validate(values)
			out := cmd.OutOrStdout()
			asJSON := strings.EqualFold(format, "json")

			if !errs.Valid() {
				if asJSON {
					if err := json.NewEncoder(out).Encode(errs); err != nil {
						return err
					}
				} else {
					for _, fieldErr := range errs.Errors() {
						fmt.Fprintln(out, fieldErr.Error())
					}
				}
				return errInvalidValues
			}

			doc, err := openapi.Export(cmd.Context(), policy)
			if err != nil {
				return err
			}
			if err := doc.ValidateRecord(record); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(record); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}
