// Package settlements serves the connector's settlement trigger route.
package settlements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"

	"github.com/chris/paypal-settlement-engine/pkg/engine"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// Settler is the orchestration the route triggers.
type Settler interface {
	Settle(ctx context.Context, account *models.Account, amount *big.Int, scale uint) error
}

// SettlementsHandler holds the dependencies for the settlement route.
type SettlementsHandler struct {
	Store  storage.AccountStore
	Engine Settler
}

// NewSettlementsHandler creates a new SettlementsHandler.
func NewSettlementsHandler(store storage.AccountStore, eng Settler) *SettlementsHandler {
	return &SettlementsHandler{Store: store, Engine: eng}
}

// settlementRequest is the connector's request body. Amount is a decimal
// integer string so connector-scale amounts above 2^53 survive JSON.
type settlementRequest struct {
	Scale  uint   `json:"scale"`
	Amount string `json:"amount"`
}

// CreateSettlement triggers a settlement for the account.
func (h *SettlementsHandler) CreateSettlement(w http.ResponseWriter, r *http.Request, accountID string) {
	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			log.Printf("ERROR: failed to look up account %s: %v", accountID, err)
			http.Error(w, "Failed to look up account", http.StatusInternalServerError)
		}
		return
	}

	var body settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	amount, ok := new(big.Int).SetString(body.Amount, 10)
	if !ok || amount.Sign() < 0 {
		http.Error(w, fmt.Sprintf("Invalid amount %q", body.Amount), http.StatusBadRequest)
		return
	}

	if err := h.Engine.Settle(r.Context(), account, amount, body.Scale); err != nil {
		switch {
		case errors.Is(err, engine.ErrBelowMinimum):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, engine.ErrUpstream):
			http.Error(w, "Settlement did not proceed", http.StatusBadGateway)
		default:
			log.Printf("ERROR: settlement for %s failed: %v", accountID, err)
			http.Error(w, "Settlement did not proceed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
