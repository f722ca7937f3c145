package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/vvka-141/pkgmeta/internal/metadata"
)

// validateResponse is the body of /api/v1/validate.
type validateResponse struct {
	Valid      bool               `json:"valid"`
	Generation int                `json:"generation"`
	Failures   []metadata.Failure `json:"failures"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"latestGeneration": metadata.LatestGeneration,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}

	var (
		report metadata.Report
		gen    int
		err    error
	)
	if r.URL.Query().Get("migrate") == "true" {
		doc, err = metadata.MigrateToLatest(doc)
		if err != nil {
			respondError(w, http.StatusBadRequest, "cannot migrate document", err)
			return
		}
		gen = metadata.LatestGeneration
		report = metadata.Validate(doc, metadata.LatestSpecification())
	} else {
		gen, err = metadata.CurrentGeneration(doc)
		if err == nil {
			report, err = metadata.ValidateDocument(doc)
		}
		if err != nil {
			respondError(w, http.StatusBadRequest, "unsupported generation", err)
			return
		}
	}

	resp := validateResponse{
		Valid:      report.Valid(),
		Generation: gen,
		Failures:   make([]metadata.Failure, 0, len(report)),
	}
	for _, name := range report.Fields() {
		resp.Failures = append(resp.Failures, report[name])
	}

	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, resp)
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}

	migrated, err := metadata.MigrateToLatest(doc)
	if err != nil {
		respondError(w, http.StatusBadRequest, "cannot migrate document", err)
		return
	}
	respondJSON(w, http.StatusOK, migrated)
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	gen := metadata.LatestGeneration
	if raw := r.URL.Query().Get("generation"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "generation must be an integer", err)
			return
		}
		gen = n
	}

	var overrides map[string]any
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "request body too large", err)
		return
	}
	if len(body) > 0 {
		doc, err := metadata.Decode(body)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		overrides = doc
	}

	doc, err := metadata.GenerateTemplateFor(gen, overrides)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unsupported generation", err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// decodeDocument reads the request body as a metadata document. It writes
// the error response itself and reports whether decoding succeeded.
func decodeDocument(w http.ResponseWriter, r *http.Request) (metadata.Document, bool) {
	doc, err := metadata.DecodeReader(http.MaxBytesReader(w, r.Body, maxBodyBytes), "request body")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large", err)
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return nil, false
	}
	return doc, true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
