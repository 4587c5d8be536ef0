// Package protocol implements the peer-to-peer message exchange two
// settlement engines use to discover each other's payment identity before a
// payout is sent.
package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// MessageType identifies the kind of a peer message. The set is closed;
// anything else is a protocol error.
type MessageType string

const (
	// MessageTypePaymentDetails asks "how do I pay you for this account?".
	MessageTypePaymentDetails MessageType = "paymentDetails"
)

// ErrUnknownMessageType is returned for any message kind outside the closed
// set. Surfaced to the peer as a client error, never retried.
var ErrUnknownMessageType = errors.New("unknown message type")

// ErrMalformedMessage is returned when a message body cannot be decoded.
var ErrMalformedMessage = errors.New("malformed message")

// Message is the envelope for inbound peer messages.
type Message struct {
	Type MessageType `json:"type"`
}

// NewPaymentDetailsRequest builds the wire form of a paymentDetails request.
func NewPaymentDetailsRequest() ([]byte, error) {
	return json.Marshal(Message{Type: MessageTypePaymentDetails})
}

// Handler answers peer messages addressed to a local account.
type Handler struct {
	Tags storage.TagStore
	// PpEmail is this engine's own PayPal identity, handed to peers so
	// they know where to send money.
	PpEmail string
}

// NewHandler creates a Handler.
func NewHandler(tags storage.TagStore, ppEmail string) *Handler {
	return &Handler{Tags: tags, PpEmail: ppEmail}
}

// Handle dispatches a raw peer message for the given local account and
// returns the serialized reply.
//
// A paymentDetails request replies with this engine's identity and the
// account's destination tag. Tag allocation is the only side effect, and it
// is idempotent: asking twice yields the same tag.
func (h *Handler) Handle(ctx context.Context, accountID string, raw []byte) ([]byte, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch msg.Type {
	case MessageTypePaymentDetails:
		tag, err := h.Tags.GetOrAllocateTag(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate destination tag for %s: %w", accountID, err)
		}
		reply, err := json.Marshal(models.PaymentDetails{
			PpEmail:        h.PpEmail,
			DestinationTag: tag,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payment details: %w", err)
		}
		return reply, nil
	default:
		return nil, fmt.Errorf("%q: %w", msg.Type, ErrUnknownMessageType)
	}
}
