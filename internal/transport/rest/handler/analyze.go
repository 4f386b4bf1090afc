package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"peacemaker/internal/model"
	"peacemaker/internal/service"

	"github.com/gorilla/mux"
)

const maxRequestBody = 64 << 10

// AnalyzeHandler handles scoring and scale reference endpoints
type AnalyzeHandler struct {
	analyzer *service.AnalyzerService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer *service.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Analyze handles POST /v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), &req)
	if err != nil {
		writeError(w, analyzeStatus(err), service.UserMessage(err))
		return
	}

	display, err := h.analyzer.Describe(analysis)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &model.AnalyzeResponse{
		Analysis: analysis,
		Display:  display,
	})
}

func analyzeStatus(err error) int {
	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrMalformedResponse), errors.Is(err, service.ErrRemoteFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// ListScales handles GET /v1/scales
func (h *AnalyzeHandler) ListScales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default": h.analyzer.Scales().Default().Name,
		"scales":  h.analyzer.Scales().All(),
	})
}

// GetScale handles GET /v1/scales/{name}
func (h *AnalyzeHandler) GetScale(w http.ResponseWriter, r *http.Request) {
	desc, err := h.analyzer.Scales().Lookup(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// Topics handles GET /v1/topics
func (h *AnalyzeHandler) Topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"topics": h.analyzer.Topics(),
		"other":  model.OtherTopic,
	})
}
