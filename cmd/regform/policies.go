package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/schema"
)

func policiesCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List the validation policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if verbose {
				descriptions := make([]schema.Description, 0, len(schema.Names()))
				for _, name := range schema.Names() {
					policy, err := schema.Lookup(name)
					if err != nil {
						return err
					}
					descriptions = append(descriptions, policy.Describe())
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(descriptions); err != nil {
					return err
				}
				return enc.Close()
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, name := range schema.Names() {
				policy, err := schema.Lookup(name)
				if err != nil {
					return err
				}
				marker := ""
				if name == schema.DefaultPolicy {
					marker = " (default)"
				}
				fmt.Fprintf(w, "%s%s\t%s\n", name, marker, policy.Description())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every rule as YAML")
	return cmd
}
