// Package webhooks serves the processor's event callback route.
//
// Authenticity of the payload is not verified here; that is deferred to
// whatever fronts this engine (the subscription URL is not guessable and the
// destination tag must still resolve).
package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chris/paypal-settlement-engine/pkg/engine"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// Reconciler matches a processor event back to the settlement that caused it.
type Reconciler interface {
	HandleWebhook(ctx context.Context, event *models.WebhookEvent) error
}

// WebhooksHandler holds the dependencies for the webhook route.
type WebhooksHandler struct {
	Engine Reconciler
	Logger *slog.Logger
}

// NewWebhooksHandler creates a new WebhooksHandler.
func NewWebhooksHandler(eng Reconciler, logger *slog.Logger) *WebhooksHandler {
	return &WebhooksHandler{Engine: eng, Logger: logger}
}

// HandleWebhook reconciles an inbound processor event.
//
// An event whose destination tag resolves to no account is acknowledged with
// 200 and dropped: there is no caller to answer, and rejecting it would only
// make the processor redeliver an event that can never be reconciled.
func (h *WebhooksHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var event models.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid event payload", http.StatusBadRequest)
		return
	}

	if err := h.Engine.HandleWebhook(r.Context(), &event); err != nil {
		switch {
		case errors.Is(err, engine.ErrUnexpectedEvent):
			h.Logger.Warn("ignoring webhook event", slog.String("event_type", event.EventType), slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrTagNotFound):
			h.Logger.Warn("orphaned webhook notification, dropping", slog.Any("error", err))
			w.WriteHeader(http.StatusOK)
		case errors.Is(err, engine.ErrUpstream):
			http.Error(w, "Failed to notify connector", http.StatusBadGateway)
		default:
			h.Logger.Error("webhook reconciliation failed", slog.Any("error", err))
			http.Error(w, "Failed to reconcile event", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
