package handler

import (
	"errors"
	"net/http"
	"strconv"

	"peacemaker/internal/service"
	"peacemaker/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// HistoryHandler serves stored analyses to admins
type HistoryHandler struct {
	analyzer *service.AnalyzerService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(analyzer *service.AnalyzerService) *HistoryHandler {
	return &HistoryHandler{analyzer: analyzer}
}

// List handles GET /v1/analyses?scale=&limit=
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	analyses, err := h.analyzer.ListAnalyses(r.Context(), r.URL.Query().Get("scale"), limit)
	if err != nil {
		writeError(w, historyStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": analyses})
}

// Get handles GET /v1/analyses/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdminID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	analysis, err := h.analyzer.GetAnalysis(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, historyStatus(err), err.Error())
		return
	}
	if analysis == nil {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func historyStatus(err error) int {
	if errors.Is(err, service.ErrHistoryDisabled) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
