package storage

import (
	"context"

	"github.com/chris/paypal-settlement-engine/pkg/models"
)

// AccountStore defines the directory operations for connector accounts.
// Accounts are created once, read many times, and never updated in place.
type AccountStore interface {
	// CreateAccount registers a new account. It returns ErrAccountExists if
	// the id is already taken.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount returns the account with the given id, or ErrAccountNotFound.
	GetAccount(ctx context.Context, id string) (*models.Account, error)

	// DeleteAccount removes the account. Deleting an unknown id returns
	// ErrAccountNotFound.
	DeleteAccount(ctx context.Context, id string) error

	// ListAccounts returns every registered account.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
