package models

import (
	"time"
)

// Account represents a connector account registered with this engine.
// The engine never mutates an account after creation; it is directory data.
type Account struct {
	Id string `json:"id" dynamodbav:"id"`
	// PayoutEmail is the counterparty's PayPal identity, if known locally.
	// It is optional: the authoritative identity is learned over the
	// payment-details exchange, not read from here.
	PayoutEmail string    `json:"payout_email,omitempty" dynamodbav:"payout_email,omitempty"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// PaymentDetails is the wire reply to a paymentDetails message: "pay me at
// PpEmail and put DestinationTag in the payout note so I can tell whose
// balance the money settles".
type PaymentDetails struct {
	PpEmail        string `json:"ppEmail"`
	DestinationTag uint32 `json:"destinationTag"`
}

// WebhookEvent is the subset of a PayPal webhook notification the engine
// consumes. Events are transient; they are reconciled once and dropped.
type WebhookEvent struct {
	EventType string          `json:"event_type"`
	Resource  WebhookResource `json:"resource"`
}

// WebhookResource carries the payout item a PAYMENT.PAYOUTS-ITEM.* event
// refers to.
type WebhookResource struct {
	TransactionStatus string     `json:"transaction_status"`
	PayoutItem        PayoutItem `json:"payout_item"`
}

// PayoutItem mirrors the payout item the engine originally submitted. Note
// carries the destination tag, Receiver the PayPal identity that was paid.
type PayoutItem struct {
	Note     string       `json:"note"`
	Receiver string       `json:"receiver"`
	Amount   PayoutAmount `json:"amount"`
}

// PayoutAmount is a processor-scale decimal amount, e.g. {"USD", "10.00"}.
type PayoutAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}
