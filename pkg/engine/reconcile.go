package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chris/paypal-settlement-engine/pkg/assets"
	"github.com/chris/paypal-settlement-engine/pkg/metrics"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/paypal"
)

// HandleWebhook reconciles a processor completion event against the account
// whose settlement caused it, and reports the settled amount to the
// connector.
//
// This is the only path that confirms settlement. An event that cannot be
// reconciled never reaches the connector: wrong types and malformed payloads
// come back as ErrUnexpectedEvent, an unallocated destination tag as an error
// wrapping storage.ErrTagNotFound (an orphaned notification; the caller
// decides whether to drop it).
func (e *Engine) HandleWebhook(ctx context.Context, event *models.WebhookEvent) error {
	metrics.WebhooksReceived.Inc()

	if event.EventType != paypal.EventPayoutItemSucceeded {
		return fmt.Errorf("event type %q: %w", event.EventType, ErrUnexpectedEvent)
	}
	if event.Resource.TransactionStatus != paypal.TransactionStatusSuccess {
		return fmt.Errorf("transaction status %q: %w", event.Resource.TransactionStatus, ErrUnexpectedEvent)
	}

	item := event.Resource.PayoutItem
	tag, err := paypal.ParseNoteTag(item.Note)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedEvent, err)
	}

	accountID, err := e.Tags.ResolveTag(ctx, tag)
	if err != nil {
		metrics.WebhooksOrphaned.Inc()
		return fmt.Errorf("resolving destination tag %d: %w", tag, err)
	}

	units, err := assets.ParseValueString(item.Amount.Value, e.Config.ProcessorScale)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedEvent, err)
	}

	// Exact inverse of the normalization on the payout path, truncation
	// included.
	amount := assets.Normalize(units, e.Config.ProcessorScale, e.Config.AssetScale)

	log := e.Logger.With(
		slog.String("account", accountID),
		slog.String("amount", amount.String()),
		slog.Uint64("destination_tag", uint64(tag)),
	)

	if err := e.Peer.NotifySettlement(ctx, accountID, amount, e.Config.AssetScale); err != nil {
		log.Error("failed to notify connector of settlement", slog.Any("error", err))
		return fmt.Errorf("%w: settlement notification: %w", ErrUpstream, err)
	}

	log.Info("settlement reconciled", slog.String("receiver", item.Receiver))
	metrics.WebhooksReconciled.Inc()

	return nil
}
