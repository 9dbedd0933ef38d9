package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/internal/config"
	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
)

const validRecord = `contractAddress: "0xABC"
title: Dune
author: F. Herbert
approvedSources:
  - https://example.com/dune
attestations:
  - originalWork
`

const invalidRecord = `contractAddress: ""
title: Dune
author: F. Herbert
approvedSources: []
attestations: []
`

func writeRecord(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--record", writeRecord(t, validRecord))
	require.NoError(t, err)
	assert.Contains(t, out, "Record is valid")

	out, err = execute(t, "validate", "--record", writeRecord(t, invalidRecord))
	require.ErrorIs(t, err, errInvalidRecord)
	assert.Contains(t, out, "Contract Address: "+form.MessageContractAddressRequired)
	assert.Contains(t, out, "Attestations: "+form.MessageAttestationRequired)
}

func TestValidateRequiresRecordFlag(t *testing.T) {
	_, err := execute(t, "validate")
	require.Error(t, err)
}

func TestCatalogCommandJSON(t *testing.T) {
	out, err := execute(t, "catalog", "--json")
	require.NoError(t, err)

	var cat model.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	assert.NotEmpty(t, cat.ContentTypes)
	assert.NotEmpty(t, cat.Attestations)
}

func TestCatalogCommandList(t *testing.T) {
	out, err := execute(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Content types")
	assert.Contains(t, out, "originalWork")
}

func TestRenderCommandToStdout(t *testing.T) {
	out, err := execute(t, "render", "--record", writeRecord(t, validRecord), "--format", "text", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE\n  Dune")
}

func TestRenderCommandIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", "--record", writeRecord(t, validRecord), "--format", "json", "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Artifact written to")

	matches, err := filepath.Glob(filepath.Join(dir, "provenance-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestRenderCommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "render", "--record", writeRecord(t, validRecord), "--format", "docx", "--output", "-")
	require.ErrorContains(t, err, `unknown format "docx"`)
}

func TestRenderCommandRejectsInvalidRecord(t *testing.T) {
	_, err := execute(t, "render", "--record", writeRecord(t, invalidRecord), "--format", "text", "--output", "-")
	require.ErrorIs(t, err, errInvalidRecord)
}

func TestRenderCommandUsesConfiguredPDFFont(t *testing.T) {
	t.Setenv("PROVENANCE_RENDER_PDF_FONT", filepath.Join(t.TempDir(), "missing.ttf"))
	_, err := execute(t, "render", "--record", writeRecord(t, validRecord), "--format", "pdf", "--output", "-")
	require.ErrorContains(t, err, "read font")
}

func TestRenderCommandAppliesFooterTemplate(t *testing.T) {
	t.Setenv("PROVENANCE_SERVICE_FOOTER", "Certified copy of {{ title }}.")
	out, err := execute(t, "render", "--record", writeRecord(t, validRecord), "--format", "text", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Certified copy of Dune.")
}

// scriptedSession fills the controller the way a terminal user would.
type scriptedSession struct {
	values map[form.FieldName]string
	source string
	attest string
}

func (s scriptedSession) Run(ctx context.Context, controller *form.Controller) (form.Result, error) {
	for field, value := range s.values {
		if err := controller.SetField(field, value); err != nil {
			return form.Result{}, err
		}
	}
	// The new record starts with one blank source entry.
	if err := controller.SetSource(0, s.source); err != nil {
		return form.Result{}, err
	}
	if err := controller.ToggleAttestation(s.attest, true); err != nil {
		return form.Result{}, err
	}
	return controller.Submit(ctx)
}

func TestFillWritesArtifact(t *testing.T) {
	cfg, err := config.Load(config.WithoutEnv(), config.WithSearchPaths())
	require.NoError(t, err)
	cfg.Render.Default = "text"

	var out bytes.Buffer
	a := &app{cfg: cfg, logger: zap.NewNop(), styles: newStyles(&out)}
	orch, err := a.orchestrator()
	require.NoError(t, err)

	cmd := newFillCommand(a)
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	session := scriptedSession{
		values: map[form.FieldName]string{
			form.FieldContractAddress: "0xABC",
			form.FieldTitle:           "Dune",
			form.FieldAuthor:          "F. Herbert",
		},
		source: "https://example.com/dune",
		attest: "originalWork",
	}
	require.NoError(t, a.fill(cmd, orch, session, "-"))
	assert.Contains(t, out.String(), "TITLE\n  Dune")
}

func TestFillReportsRejectedRecord(t *testing.T) {
	cfg, err := config.Load(config.WithoutEnv(), config.WithSearchPaths())
	require.NoError(t, err)

	a := &app{cfg: cfg, logger: zap.NewNop(), styles: newStyles(&bytes.Buffer{})}
	orch, err := a.orchestrator()
	require.NoError(t, err)

	cmd := newFillCommand(a)
	cmd.SetContext(context.Background())

	session := scriptedSession{source: "https://example.com/dune", attest: "originalWork"}
	require.Error(t, a.fill(cmd, orch, session, "-"))
}
