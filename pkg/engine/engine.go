// Package engine coordinates settlement: it turns a connector's "settle this
// balance" request into a PayPal payout, and an inbound PayPal webhook back
// into a connector credit.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"math/big"

	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/paypal"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// ErrBelowMinimum is returned when a settlement request normalizes below the
// configured minimum payout. No payout is attempted.
var ErrBelowMinimum = errors.New("amount below minimum settlement")

// ErrUpstream marks failures of the peer exchange or the payout submission.
// The attempt is aborted and not retried; retry policy belongs to the caller.
var ErrUpstream = errors.New("upstream failure")

// ErrUnexpectedEvent is returned for webhook events the engine does not
// reconcile: wrong type, non-success status, or an unparsable payload.
var ErrUnexpectedEvent = errors.New("unexpected webhook event")

// PeerClient is the engine's view of the connector: a message relay to the
// counterparty and a settlement callback.
type PeerClient interface {
	RequestPaymentDetails(ctx context.Context, accountID string) (*models.PaymentDetails, error)
	NotifySettlement(ctx context.Context, accountID string, amount *big.Int, scale uint) error
}

// Config carries the engine's settlement parameters.
type Config struct {
	// PpEmail is this engine's own PayPal identity.
	PpEmail  string
	Currency string
	// AssetScale is the precision the connector accounts in.
	AssetScale uint
	// ProcessorScale is the precision of the payout currency at PayPal
	// (2 for USD).
	ProcessorScale uint
	// MinUnits is the smallest payout worth submitting, in processor-scale
	// minor units.
	MinUnits *big.Int
}

// Engine holds the collaborators a settlement touches. One Engine is built at
// startup and shared by every request handler; it carries no per-request
// state.
type Engine struct {
	Peer    PeerClient
	Payouts paypal.Client
	Tags    storage.TagStore
	Logger  *slog.Logger
	Config  Config
}

// New creates an Engine.
func New(peer PeerClient, payouts paypal.Client, tags storage.TagStore, logger *slog.Logger, cfg Config) *Engine {
	if cfg.MinUnits == nil {
		cfg.MinUnits = big.NewInt(0)
	}
	return &Engine{
		Peer:    peer,
		Payouts: payouts,
		Tags:    tags,
		Logger:  logger,
		Config:  cfg,
	}
}
