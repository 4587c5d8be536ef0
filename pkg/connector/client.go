// Package connector talks to the counterparty's settlement engine endpoints
// exposed by the connector: the message relay used for the payment-details
// exchange, and the settlement callback that credits a settled balance.
package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/protocol"
	"github.com/google/uuid"
)

// DefaultTimeout bounds every exchange with the connector. Exceeding it fails
// the in-flight settlement attempt; nothing is retried here.
const DefaultTimeout = 10 * time.Second

// Client is the HTTP client for a connector's account endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client for the connector at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// RequestPaymentDetails asks the counterparty how to pay it for the given
// account. Each send carries a fresh Idempotency-Key: the relay dedupes a
// single delivery only, so a retried logical request is a new exchange by
// design.
func (c *Client) RequestPaymentDetails(ctx context.Context, accountID string) (*models.PaymentDetails, error) {
	msg, err := protocol.NewPaymentDetailsRequest()
	if err != nil {
		return nil, fmt.Errorf("failed to build paymentDetails message: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/messages", c.BaseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(msg))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paymentDetails exchange with %s failed: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paymentDetails response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paymentDetails exchange returned status %d: %s", resp.StatusCode, body)
	}

	var details models.PaymentDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("malformed paymentDetails response: %w", err)
	}
	if details.PpEmail == "" {
		return nil, fmt.Errorf("paymentDetails response is missing a payment identity")
	}

	return &details, nil
}

// settlementRequest is the body of the connector's settlement callback.
type settlementRequest struct {
	Amount string `json:"amount"`
	Scale  uint   `json:"scale"`
}

// NotifySettlement tells the connector that the account's balance was settled
// for the given amount. This is the only place settlement completion is
// reported.
func (c *Client) NotifySettlement(ctx context.Context, accountID string, amount *big.Int, scale uint) error {
	body, err := json.Marshal(settlementRequest{Amount: amount.String(), Scale: scale})
	if err != nil {
		return fmt.Errorf("failed to marshal settlement notification: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/settlement", c.BaseURL, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("settlement notification to %s failed: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("settlement notification returned status %d", resp.StatusCode)
	}
	return nil
}
