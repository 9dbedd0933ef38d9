package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List content types and attestation options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat)
			}

			fmt.Fprintln(out, a.styles.title.Render("Content types"))
			for _, ct := range cat.ContentTypes {
				fmt.Fprintf(out, "  %s\n", ct)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, a.styles.title.Render("Attestations"))
			for _, option := range cat.Attestations {
				fmt.Fprintf(out, "  %s\n    %s\n", a.styles.label.Render(option.ID), a.styles.muted.Render(option.Text))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}
