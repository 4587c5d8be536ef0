package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	enginemocks "github.com/chris/paypal-settlement-engine/pkg/engine/mocks"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/paypal"
	paypalmocks "github.com/chris/paypal-settlement-engine/pkg/paypal/mocks"
	storagemocks "github.com/chris/paypal-settlement-engine/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestEngine(peer *enginemocks.PeerClient, payouts *paypalmocks.Client, tags *storagemocks.Storage) *Engine {
	return New(peer, payouts, tags, slog.New(slog.NewTextHandler(io.Discard, nil)), Config{
		PpEmail:        "engine@example.com",
		Currency:       "USD",
		AssetScale:     9,
		ProcessorScale: 2,
		MinUnits:       big.NewInt(100),
	})
}

func TestSettle(t *testing.T) {
	account := &models.Account{Id: "alice"}
	details := &models.PaymentDetails{PpEmail: "peer@example.com", DestinationTag: 908}

	t.Run("Success", func(t *testing.T) {
		mockPeer := new(enginemocks.PeerClient)
		mockPayouts := new(paypalmocks.Client)
		e := newTestEngine(mockPeer, mockPayouts, new(storagemocks.Storage))

		mockPeer.On("RequestPaymentDetails", mock.Anything, "alice").Return(details, nil)

		var submitted paypal.Payout
		mockPayouts.On("SubmitPayout", mock.Anything, mock.MatchedBy(func(p paypal.Payout) bool {
			submitted = p
			return true
		})).Return("BATCH-1", nil)

		// 2.5 units at scale 9 -> 250 cents.
		err := e.Settle(context.Background(), account, big.NewInt(2500000000), 9)

		assert.NoError(t, err)
		assert.Equal(t, "peer@example.com", submitted.Receiver)
		assert.Equal(t, "2.50", submitted.Value)
		assert.Equal(t, "USD", submitted.Currency)
		assert.Equal(t, "Settlement from engine@example.com to peer@example.com (908)", submitted.Note)
		mockPeer.AssertExpectations(t)
		mockPayouts.AssertExpectations(t)
	})

	t.Run("Sub-Cent Remainder Is Truncated", func(t *testing.T) {
		mockPeer := new(enginemocks.PeerClient)
		mockPayouts := new(paypalmocks.Client)
		e := newTestEngine(mockPeer, mockPayouts, new(storagemocks.Storage))

		mockPeer.On("RequestPaymentDetails", mock.Anything, "alice").Return(details, nil)
		mockPayouts.On("SubmitPayout", mock.Anything, mock.MatchedBy(func(p paypal.Payout) bool {
			return p.Value == "2.50"
		})).Return("BATCH-2", nil)

		err := e.Settle(context.Background(), account, big.NewInt(2509999999), 9)

		assert.NoError(t, err)
		mockPayouts.AssertExpectations(t)
	})

	t.Run("Below Minimum", func(t *testing.T) {
		mockPeer := new(enginemocks.PeerClient)
		mockPayouts := new(paypalmocks.Client)
		e := newTestEngine(mockPeer, mockPayouts, new(storagemocks.Storage))

		// 0.5 units -> 50 cents, under the 100 cent minimum.
		err := e.Settle(context.Background(), account, big.NewInt(500000000), 9)

		assert.ErrorIs(t, err, ErrBelowMinimum)
		mockPeer.AssertNotCalled(t, "RequestPaymentDetails", mock.Anything, mock.Anything)
		mockPayouts.AssertNotCalled(t, "SubmitPayout", mock.Anything, mock.Anything)
	})

	t.Run("Peer Exchange Fails", func(t *testing.T) {
		mockPeer := new(enginemocks.PeerClient)
		mockPayouts := new(paypalmocks.Client)
		e := newTestEngine(mockPeer, mockPayouts, new(storagemocks.Storage))

		mockPeer.On("RequestPaymentDetails", mock.Anything, "alice").Return(nil, errors.New("timeout"))

		err := e.Settle(context.Background(), account, big.NewInt(2500000000), 9)

		assert.ErrorIs(t, err, ErrUpstream)
		// A failed quote must never reach payout submission.
		mockPayouts.AssertNotCalled(t, "SubmitPayout", mock.Anything, mock.Anything)
		mockPeer.AssertExpectations(t)
	})

	t.Run("Payout Submission Fails", func(t *testing.T) {
		mockPeer := new(enginemocks.PeerClient)
		mockPayouts := new(paypalmocks.Client)
		e := newTestEngine(mockPeer, mockPayouts, new(storagemocks.Storage))

		mockPeer.On("RequestPaymentDetails", mock.Anything, "alice").Return(details, nil)
		mockPayouts.On("SubmitPayout", mock.Anything, mock.Anything).Once().Return("", errors.New("auth failure"))

		err := e.Settle(context.Background(), account, big.NewInt(2500000000), 9)

		assert.ErrorIs(t, err, ErrUpstream)
		// Exactly one submission attempt, no retry.
		mockPayouts.AssertExpectations(t)
	})
}
