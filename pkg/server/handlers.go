package server

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/orchestrator"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

const maxFormBytes = 1 << 20

// HTTPError is an error carrying the status code it should be served with.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with an HTTP status.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	controller := form.New(s.orch.Catalog())
	s.writeForm(w, r, http.StatusOK, controller.Record(), nil)
}

func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("server: parse form: %w", err)})
		return
	}

	action, index, err := parseAction(r.PostForm)
	if err != nil {
		s.writeError(w, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}

	var artifact *orchestrator.Artifact
	handoff := form.HandoffFunc(func(ctx context.Context, record model.ProvenanceRecord) error {
		out, err := s.preview(ctx, record)
		if err != nil {
			return err
		}
		artifact = &out
		return nil
	})
	controller, decodeErrs := decodeRecord(r.PostForm, s.orch.Catalog(),
		form.WithHandoff(handoff),
		form.WithIssuer(s.issuer),
		form.WithLogger(s.logger),
	)

	switch action {
	case actionAddSource:
		_ = controller.AddSource()
		s.writeForm(w, r, http.StatusOK, controller.Record(), decodeErrs)
		return
	case actionRemoveSource:
		if err := controller.RemoveSource(index); err != nil {
			s.writeForm(w, r, http.StatusBadRequest, controller.Record(), decodeErrs,
				fmt.Sprintf("Source %d does not exist", index+1))
			return
		}
		s.writeForm(w, r, http.StatusOK, controller.Record(), decodeErrs)
		return
	}

	if len(decodeErrs) > 0 {
		_, errs := controller.Validate()
		s.writeForm(w, r, http.StatusUnprocessableEntity, controller.Record(), merge(errs, decodeErrs))
		return
	}

	result, err := controller.Submit(r.Context())
	if err != nil {
		s.logger.Error("form submission failed", zap.Error(err))
		s.writeForm(w, r, http.StatusBadGateway, controller.Record(), nil,
			"The artifact could not be generated. Please try again.")
		return
	}
	if !result.Valid {
		s.writeForm(w, r, http.StatusUnprocessableEntity, controller.Record(), result.Errors)
		return
	}
	if artifact == nil {
		s.writeError(w, errors.New("server: submission produced no preview"))
		return
	}
	writeBody(w, http.StatusOK, artifact.ContentType, artifact.Body)
}

// handleArtifact exports a record posted from the preview's download form.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("server: parse form: %w", err)})
		return
	}

	format := strings.TrimSpace(r.PostForm.Get(formatField))
	if format == "" {
		format = s.orch.DefaultRenderer()
	}
	if !s.orch.HasRenderer(format) {
		s.writeError(w, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("server: unknown format %q", format)})
		return
	}

	controller, decodeErrs := decodeRecord(r.PostForm, s.orch.Catalog())
	valid, errs := controller.Validate()
	if !valid || len(decodeErrs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: merge(errs, decodeErrs).Map()})
		return
	}

	s.writeArtifact(w, r.Context(), controller.Record(), format)
}

func (s *Server) preview(ctx context.Context, record model.ProvenanceRecord) (orchestrator.Artifact, error) {
	return s.orch.Generate(ctx, orchestrator.Request{
		Record:       record,
		Renderer:     previewRenderer,
		ThemeName:    s.themeName,
		ThemeVariant: s.themeVariant,
		RenderOptions: render.RenderOptions{
			Download: &render.DownloadForm{
				Action:  "/artifact",
				Fields:  recordFields(s.orch.Catalog(), record),
				Formats: s.downloadFormats(),
			},
		},
	})
}

// downloadFormats lists the default renderer first.
func (s *Server) downloadFormats() []string {
	def := s.orch.DefaultRenderer()
	formats := []string{def}
	for _, name := range s.orch.Renderers() {
		if name != def {
			formats = append(formats, name)
		}
	}
	return formats
}

func (s *Server) writeArtifact(w http.ResponseWriter, ctx context.Context, record model.ProvenanceRecord, format string) {
	artifact, err := s.orch.Generate(ctx, orchestrator.Request{
		Record:       record,
		Renderer:     format,
		ThemeName:    s.themeName,
		ThemeVariant: s.themeVariant,
	})
	if err != nil {
		s.writeError(w, fmt.Errorf("server: generate artifact: %w", err))
		return
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Name}))
	writeBody(w, http.StatusOK, artifact.ContentType, artifact.Body)
}

func (s *Server) writeForm(w http.ResponseWriter, r *http.Request, status int, record model.ProvenanceRecord, errs form.Errors, formErrors ...string) {
	opts, err := s.orch.Presentation(previewRenderer, s.themeName, s.themeVariant)
	if err != nil {
		s.writeError(w, err)
		return
	}
	scriptURL := ""
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		scriptURL = opts.Theme.AssetURL(defaultScriptAsset)
	}

	view := buildFormView("/", s.serviceTitle, scriptURL, s.orch.Catalog(), record, errs, formErrors...)
	body, err := s.pages.RenderForm(r.Context(), view, opts)
	if err != nil {
		s.writeError(w, fmt.Errorf("server: render form: %w", err))
		return
	}
	writeBody(w, status, s.pages.ContentType(), body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.Error(err))
	}
	http.Error(w, http.StatusText(code), code)
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
