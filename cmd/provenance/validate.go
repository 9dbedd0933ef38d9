package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	provenance "github.com/PageDAO/PageProvenanceService"
	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/record"
)

var errInvalidRecord = errors.New("record is invalid")

func newValidateCommand(a *app) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a record file or URL without rendering it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.loadRecord(cmd, location)
			if err != nil {
				return err
			}
			if err := a.checkRecord(cmd, rec); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.styles.success.Render("Record is valid"))
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "record", "", "record file path or http(s) URL (JSON or YAML)")
	_ = cmd.MarkFlagRequired("record")
	return cmd
}

func (a *app) loadRecord(cmd *cobra.Command, location string) (model.ProvenanceRecord, error) {
	return provenance.LoadRecord(cmd.Context(), location,
		record.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
}

// checkRecord prints every validation message and fails when any exist.
func (a *app) checkRecord(cmd *cobra.Command, rec model.ProvenanceRecord) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}
	errs := form.ValidateRecord(cat, rec)
	if len(errs) == 0 {
		return nil
	}
	out := cmd.OutOrStdout()
	for _, field := range errs.Fields() {
		fmt.Fprintf(out, "%s %s\n", a.styles.failure.Render(field.Label()+":"), errs[field])
	}
	return fmt.Errorf("provenance: %w (%d problems)", errInvalidRecord, len(errs))
}
