// Package accounts serves the account directory CRUD routes.
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store storage.AccountStore
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.AccountStore) *AccountsHandler {
	return &AccountsHandler{Store: store}
}

// newAccount is the request body for account registration.
type newAccount struct {
	Id          string `json:"id"`
	PayoutEmail string `json:"payout_email,omitempty"`
}

// CreateAccount registers a new account.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var body newAccount
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.Id == "" {
		http.Error(w, "Account id is required", http.StatusBadRequest)
		return
	}

	account := &models.Account{Id: body.Id, PayoutEmail: body.PayoutEmail}

	created, err := h.Store.CreateAccount(r.Context(), account)
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			http.Error(w, "Account already exists", http.StatusConflict)
		} else {
			log.Printf("ERROR: failed to create account: %v", err)
			http.Error(w, "Failed to create account", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetAccountById returns a single account.
func (h *AccountsHandler) GetAccountById(w http.ResponseWriter, r *http.Request, accountID string) {
	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			log.Printf("ERROR: failed to get account: %v", err)
			http.Error(w, "Failed to retrieve account", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(account); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// DeleteAccount removes an account.
func (h *AccountsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	if err := h.Store.DeleteAccount(r.Context(), accountID); err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			log.Printf("ERROR: failed to delete account: %v", err)
			http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts returns all registered accounts.
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		log.Printf("ERROR: failed to list accounts: %v", err)
		http.Error(w, "Failed to retrieve accounts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(accounts); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
