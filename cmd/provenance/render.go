package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/orchestrator"
	"github.com/PageDAO/PageProvenanceService/pkg/tui"
)

func newRenderCommand(a *app) *cobra.Command {
	var location, output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a record file or URL to an artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.loadRecord(cmd, location)
			if err != nil {
				return err
			}
			if err := a.checkRecord(cmd, rec); err != nil {
				return err
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			artifact, err := orch.Generate(cmd.Context(), orchestrator.Request{Record: rec})
			if err != nil {
				return err
			}
			return a.writeArtifact(cmd, artifact, output)
		},
	}
	cmd.Flags().StringVar(&location, "record", "", "record file path or http(s) URL (JSON or YAML)")
	cmd.Flags().String("format", "", "artifact format: pdf, html, text or json (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory; - writes to stdout (default ./<artifact name>)")
	_ = cmd.MarkFlagRequired("record")
	return cmd
}

func newFillCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a record interactively and render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}
			session := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithTheme(tui.Theme{
					InfoPrefix:  a.styles.muted.Render("· "),
					ErrorPrefix: a.styles.failure.Render("! "),
				}),
				tui.WithLogger(a.logger.Named("tui")),
			)
			err = a.fill(cmd, orch, session, output)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), a.styles.muted.Render("Aborted; nothing was written"))
				return nil
			}
			return err
		},
	}
	cmd.Flags().String("format", "", "artifact format: pdf, html, text or json (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory; - writes to stdout (default ./<artifact name>)")
	return cmd
}

// sessionRunner is the part of tui.Session fill depends on.
type sessionRunner interface {
	Run(ctx context.Context, controller *form.Controller) (form.Result, error)
}

func (a *app) fill(cmd *cobra.Command, orch *orchestrator.Orchestrator, session sessionRunner, output string) error {
	preview := orchestrator.NewPreview(orch, orchestrator.Request{})
	controller := form.New(orch.Catalog(),
		form.WithRecord(model.NewRecord()),
		form.WithHandoff(preview),
		form.WithLogger(a.logger.Named("form")),
	)
	if _, err := session.Run(cmd.Context(), controller); err != nil {
		return err
	}
	artifact, ok := preview.Artifact()
	if !ok {
		return errors.New("provenance: submission produced no artifact")
	}
	return a.writeArtifact(cmd, artifact, output)
}

// writeArtifact writes to stdout for "-", into a directory when output is
// one, or to the named file.
func (a *app) writeArtifact(cmd *cobra.Command, artifact orchestrator.Artifact, output string) error {
	output = strings.TrimSpace(output)
	if output == "-" {
		_, err := cmd.OutOrStdout().Write(artifact.Body)
		return err
	}

	path := output
	switch {
	case path == "":
		path = artifact.Name
	default:
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, artifact.Name)
		}
	}
	if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
		return fmt.Errorf("provenance: write artifact: %w", err)
	}

	a.logger.Debug("artifact written", zap.String("path", path), zap.Int("bytes", len(artifact.Body)))
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, a.styles.success.Render("Artifact written to "+path))
	fmt.Fprintf(out, "%s %s\n", a.styles.label.Render("Serial:"), artifact.Document.Serial)
	if len(artifact.Document.Defects) > 0 {
		fmt.Fprintln(out, a.styles.failure.Render(fmt.Sprintf("%d catalog defects recorded", len(artifact.Document.Defects))))
	}
	return nil
}
