package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/chris/paypal-settlement-engine/pkg/assets"
	"github.com/chris/paypal-settlement-engine/pkg/metrics"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/paypal"
)

// Settle pays out the requested amount to the account's counterparty.
//
// The amount arrives at the scale the connector chose for this request and is
// normalized to processor scale before anything else happens. The
// counterparty's identity and destination tag come from a live
// payment-details exchange, never from local state, so a peer that rotated
// its PayPal account is always paid at its current identity.
//
// Settle returns once PayPal has accepted the submission. Completion is
// reported asynchronously through the webhook path; a caller that gets nil
// here knows only that exactly one payout was submitted.
//
// Any failure before submission aborts the attempt with no payout and no
// retry. A synchronous submission failure is the same: logged, aborted, done.
func (e *Engine) Settle(ctx context.Context, account *models.Account, amount *big.Int, scale uint) error {
	metrics.SettlementsInitiated.Inc()

	units := assets.Normalize(amount, scale, e.Config.ProcessorScale)

	log := e.Logger.With(
		slog.String("account", account.Id),
		slog.String("amount", units.String()),
		slog.String("currency", e.Config.Currency),
	)

	if units.Cmp(e.Config.MinUnits) < 0 {
		log.Warn("settlement below minimum, refusing", slog.String("minimum", e.Config.MinUnits.String()))
		return fmt.Errorf("%s %s: %w", units, e.Config.Currency, ErrBelowMinimum)
	}

	details, err := e.Peer.RequestPaymentDetails(ctx, account.Id)
	if err != nil {
		log.Error("payment details exchange failed, aborting settlement", slog.Any("error", err))
		metrics.SettlementsFailed.Inc()
		return fmt.Errorf("%w: payment details exchange: %w", ErrUpstream, err)
	}

	payout := paypal.Payout{
		Receiver: details.PpEmail,
		Value:    assets.ToValueString(units, e.Config.ProcessorScale),
		Currency: e.Config.Currency,
		Note:     paypal.BuildNote(e.Config.PpEmail, details.PpEmail, details.DestinationTag),
	}

	batchID, err := e.Payouts.SubmitPayout(ctx, payout)
	if err != nil {
		log.Error("payout submission failed, aborting settlement",
			slog.String("receiver", details.PpEmail), slog.Any("error", err))
		metrics.SettlementsFailed.Inc()
		return fmt.Errorf("%w: payout submission: %w", ErrUpstream, err)
	}

	log.Info("payout submitted",
		slog.String("receiver", details.PpEmail),
		slog.Uint64("destination_tag", uint64(details.DestinationTag)),
		slog.String("batch_id", batchID),
	)
	metrics.PayoutsSubmitted.Inc()

	return nil
}
