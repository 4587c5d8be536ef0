// Package paypal adapts the PayPal REST API to the two capabilities the
// engine needs from its payment processor: submitting a payout and keeping a
// webhook subscription alive for payout completions.
package paypal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	paypalsdk "github.com/plutov/paypal/v4"
)

// EventPayoutItemSucceeded is the webhook event type confirming a single
// payout item cleared. It is the only event the engine subscribes to.
const EventPayoutItemSucceeded = "PAYMENT.PAYOUTS-ITEM.SUCCEEDED"

// TransactionStatusSuccess is the payout item status carried by a successful
// completion event.
const TransactionStatusSuccess = "SUCCESS"

// Payout describes a single payout submission.
type Payout struct {
	// Receiver is the counterparty's PayPal email.
	Receiver string
	// Value is the amount as a processor-scale decimal string, e.g. "10.00".
	Value    string
	Currency string
	// Note travels with the payout and comes back on the webhook; it carries
	// the destination tag.
	Note string
}

// Client is the processor capability the engine depends on. Narrowed to an
// interface so the orchestrator can be tested without PayPal.
type Client interface {
	// SubmitPayout submits a payout and returns the processor's batch id.
	// Submission is not completion: success here only means PayPal accepted
	// the request. Completion arrives later via webhook.
	SubmitPayout(ctx context.Context, p Payout) (string, error)

	// EnsureWebhook subscribes listenerURL to payout completion events.
	// Re-subscribing an already-registered listener is a no-op.
	EnsureWebhook(ctx context.Context, listenerURL string) error
}

// RESTClient implements Client on the PayPal REST SDK.
type RESTClient struct {
	pp      *paypalsdk.Client
	ppEmail string
}

// New creates a RESTClient and fetches an initial access token. mode selects
// the sandbox or live API base, defaulting to sandbox.
func New(ctx context.Context, clientID, secret, mode, ppEmail string) (*RESTClient, error) {
	apiBase := paypalsdk.APIBaseSandBox
	if mode == "live" {
		apiBase = paypalsdk.APIBaseLive
	}

	pp, err := paypalsdk.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("failed to create PayPal client: %w", err)
	}
	if _, err := pp.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("failed to authenticate with PayPal: %w", err)
	}

	return &RESTClient{pp: pp, ppEmail: ppEmail}, nil
}

// Make sure we conform to the interface
var _ Client = (*RESTClient)(nil)

// SubmitPayout submits a single-item payout batch.
func (c *RESTClient) SubmitPayout(ctx context.Context, p Payout) (string, error) {
	payout := paypalsdk.Payout{
		SenderBatchHeader: &paypalsdk.SenderBatchHeader{
			SenderBatchID: uuid.NewString(),
			EmailSubject:  fmt.Sprintf("Settlement from %s", c.ppEmail),
		},
		Items: []paypalsdk.PayoutItem{
			{
				RecipientType: "EMAIL",
				Receiver:      p.Receiver,
				Amount: &paypalsdk.AmountPayout{
					Value:    p.Value,
					Currency: p.Currency,
				},
				Note: p.Note,
			},
		},
	}

	resp, err := c.pp.CreatePayout(ctx, payout)
	if err != nil {
		return "", fmt.Errorf("payout submission failed: %w", err)
	}

	return resp.BatchHeader.PayoutBatchID, nil
}

// EnsureWebhook registers listenerURL for payout completion events. PayPal
// rejects duplicate listener URLs; that rejection means the subscription is
// already in place and is not an error.
func (c *RESTClient) EnsureWebhook(ctx context.Context, listenerURL string) error {
	_, err := c.pp.CreateWebhook(ctx, &paypalsdk.CreateWebhookRequest{
		URL: listenerURL,
		EventTypes: []paypalsdk.WebhookEventType{
			{Name: EventPayoutItemSucceeded},
		},
	})
	if err != nil {
		if strings.Contains(err.Error(), "WEBHOOK_URL_ALREADY_EXISTS") {
			return nil
		}
		return fmt.Errorf("failed to create webhook subscription: %w", err)
	}
	return nil
}
