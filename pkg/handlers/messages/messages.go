// Package messages serves the peer message relay route. Bodies are opaque
// bytes; dispatch on the message type happens in the protocol handler.
package messages

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/chris/paypal-settlement-engine/pkg/protocol"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// MessageHandler dispatches a raw peer message for a local account.
type MessageHandler interface {
	Handle(ctx context.Context, accountID string, raw []byte) ([]byte, error)
}

// MessagesHandler holds the dependencies for the message relay route.
type MessagesHandler struct {
	Store    storage.AccountStore
	Protocol MessageHandler
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(store storage.AccountStore, proto MessageHandler) *MessagesHandler {
	return &MessagesHandler{Store: store, Protocol: proto}
}

// HandleMessage dispatches an inbound peer message addressed to accountID and
// writes the protocol reply.
func (h *MessagesHandler) HandleMessage(w http.ResponseWriter, r *http.Request, accountID string) {
	if _, err := h.Store.GetAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			log.Printf("ERROR: failed to look up account %s: %v", accountID, err)
			http.Error(w, "Failed to look up account", http.StatusInternalServerError)
		}
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read message body", http.StatusBadRequest)
		return
	}

	reply, err := h.Protocol.Handle(r.Context(), accountID, raw)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownMessageType) || errors.Is(err, protocol.ErrMalformedMessage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			log.Printf("ERROR: failed to handle message for %s: %v", accountID, err)
			http.Error(w, "Failed to handle message", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(reply)
}
