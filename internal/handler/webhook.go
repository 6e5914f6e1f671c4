// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/glossline-ai/sales-agent/internal/middleware"
	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/internal/service"
	"github.com/glossline-ai/sales-agent/internal/store"
	"github.com/glossline-ai/sales-agent/pkg/logger"
)

// WebhookHandler handles the sales webhook endpoints.
type WebhookHandler struct {
	orchestrator *service.Orchestrator
	logger       *logger.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(orchestrator *service.Orchestrator, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		orchestrator: orchestrator,
		logger:       log,
	}
}

// Handle handles POST /webhook: one inbound customer message, one decision
// record back. Invalid input is rejected before any state mutation.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req model.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateSenderID(req.Sender); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateMessageText(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.orchestrator.HandleMessage(r.Context(), req.Sender, req.Text)
	if err != nil {
		h.logger.Error("failed to process message",
			zap.String("sender_id", req.Sender),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Status handles GET /webhook/status/{sender}
func (h *WebhookHandler) Status(w http.ResponseWriter, r *http.Request) {
	sender := chi.URLParam(r, "sender")
	if err := middleware.ValidateSenderID(sender); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.orchestrator.Stats(r.Context(), sender)
	if err != nil {
		h.logger.Error("failed to get conversation stats",
			zap.String("sender_id", sender),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to get conversation status")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Delete handles DELETE /webhook/conversation/{sender}: the explicit reset
// operation.
func (h *WebhookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sender := chi.URLParam(r, "sender")
	if err := middleware.ValidateSenderID(sender); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.orchestrator.Reset(r.Context(), sender); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		h.logger.Error("failed to delete conversation",
			zap.String("sender_id", sender),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "conversation deleted",
	})
}

// Recommendations handles GET /webhook/recommendations/{sender}?query=
func (h *WebhookHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	sender := chi.URLParam(r, "sender")
	if err := middleware.ValidateSenderID(sender); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	recommendations, err := h.orchestrator.Recommend(r.Context(), sender, query)
	if err != nil {
		h.logger.Error("failed to get recommendations",
			zap.String("sender_id", sender),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to get recommendations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sender_id":       sender,
		"query":           query,
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}
