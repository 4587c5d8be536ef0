// Package handlers wires the engine's HTTP surface onto a chi router.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chris/paypal-settlement-engine/pkg/engine"
	"github.com/chris/paypal-settlement-engine/pkg/handlers/accounts"
	"github.com/chris/paypal-settlement-engine/pkg/handlers/messages"
	"github.com/chris/paypal-settlement-engine/pkg/handlers/settlements"
	"github.com/chris/paypal-settlement-engine/pkg/handlers/webhooks"
	"github.com/chris/paypal-settlement-engine/pkg/protocol"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// ApiHandler composes the per-resource handlers behind the engine's routes.
type ApiHandler struct {
	Accounts    *accounts.AccountsHandler
	Messages    *messages.MessagesHandler
	Settlements *settlements.SettlementsHandler
	Webhooks    *webhooks.WebhooksHandler
}

// New creates an ApiHandler around the shared dependencies.
func New(store storage.Storage, proto *protocol.Handler, eng *engine.Engine, logger *slog.Logger) *ApiHandler {
	return &ApiHandler{
		Accounts:    accounts.NewAccountsHandler(store),
		Messages:    messages.NewMessagesHandler(store, proto),
		Settlements: settlements.NewSettlementsHandler(store, eng),
		Webhooks:    webhooks.NewWebhooksHandler(eng, logger),
	}
}

// RegisterRoutes mounts the engine's HTTP surface on the router.
func (h *ApiHandler) RegisterRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.Accounts.CreateAccount)
		r.Get("/", h.Accounts.ListAccounts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				h.Accounts.GetAccountById(w, req, chi.URLParam(req, "id"))
			})
			r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
				h.Accounts.DeleteAccount(w, req, chi.URLParam(req, "id"))
			})
			r.Post("/messages", func(w http.ResponseWriter, req *http.Request) {
				h.Messages.HandleMessage(w, req, chi.URLParam(req, "id"))
			})
			r.Post("/settlement", func(w http.ResponseWriter, req *http.Request) {
				h.Settlements.CreateSettlement(w, req, chi.URLParam(req, "id"))
			})
			// The id segment is not used for reconciliation; the destination
			// tag inside the event identifies the account.
			r.Post("/webhooks", h.Webhooks.HandleWebhook)
		})
	})
}
