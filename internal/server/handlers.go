package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/spacesedan/reviewpulse/internal/analysis"
	"github.com/spacesedan/reviewpulse/internal/models"
)

type handlers struct {
	analyzer          *analysis.Analyzer
	classifierHealthy *atomic.Bool
}

func (h *handlers) healthCheck(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	classifierHealthy := true
	if h.classifierHealthy != nil {
		classifierHealthy = h.classifierHealthy.Load()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "ok",
		"service":            "product-review-analyzer",
		"classifier_healthy": classifierHealthy,
	})
}

func (h *handlers) analyzeReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ReviewText) == "" {
		writeError(w, http.StatusBadRequest, "review_text is required")
		return
	}

	lang := models.ParseLanguage(string(req.Language))

	record, err := h.analyzer.Analyze(r.Context(), req.ReviewText, lang)
	if err != nil {
		slog.Error("[Server] Failed to persist analysis",
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to store analysis")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.analyzer.List(r.Context())
	if err != nil {
		slog.Error("[Server] Failed to list reviews",
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to fetch reviews")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("[Server] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
