package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/model"
	"github.com/PageDAO/PageProvenanceService/pkg/openapi"
)

type problemsResponse struct {
	Problems []openapi.Problem `json:"problems"`
}

type errorsResponse struct {
	Errors map[string]string `json:"errors"`
}

// handleAPIArtifact checks the payload against the contract, then runs the
// same validation as the form before rendering.
func (s *Server) handleAPIArtifact(w http.ResponseWriter, r *http.Request) {
	format := strings.TrimSpace(r.URL.Query().Get(formatField))
	if format == "" {
		format = s.orch.DefaultRenderer()
	}
	if !s.orch.HasRenderer(format) {
		writeJSON(w, http.StatusBadRequest, problemsResponse{Problems: []openapi.Problem{
			{Path: "?format", Reason: fmt.Sprintf("unknown format %q", format)},
		}})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		s.writeError(w, StatusError{Code: http.StatusRequestEntityTooLarge, Err: fmt.Errorf("server: read body: %w", err)})
		return
	}

	if err := s.validator.ValidateRecord(payload); err != nil {
		var payloadErr *openapi.PayloadError
		if errors.As(err, &payloadErr) {
			writeJSON(w, http.StatusBadRequest, problemsResponse{Problems: payloadErr.Problems})
			return
		}
		s.writeError(w, err)
		return
	}

	var record model.ProvenanceRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		writeJSON(w, http.StatusBadRequest, problemsResponse{Problems: []openapi.Problem{
			{Path: "/", Reason: err.Error()},
		}})
		return
	}

	controller := form.New(s.orch.Catalog(), form.WithRecord(record))
	if valid, errs := controller.Validate(); !valid {
		writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs.Map()})
		return
	}
	s.writeArtifact(w, r.Context(), controller.Record(), format)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Catalog())
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(value)
}
