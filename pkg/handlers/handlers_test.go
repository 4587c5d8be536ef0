package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/paypal-settlement-engine/pkg/engine"
	enginemocks "github.com/chris/paypal-settlement-engine/pkg/engine/mocks"
	"github.com/chris/paypal-settlement-engine/pkg/handlers"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/paypal"
	paypalmocks "github.com/chris/paypal-settlement-engine/pkg/paypal/mocks"
	"github.com/chris/paypal-settlement-engine/pkg/protocol"
	"github.com/chris/paypal-settlement-engine/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Full-stack routing test: real router, real protocol handler, real engine,
// mocked storage and clients.
func TestRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newRouter := func(store *mocks.Storage, peer *enginemocks.PeerClient, payouts *paypalmocks.Client) *chi.Mux {
		eng := engine.New(peer, payouts, store, logger, engine.Config{
			PpEmail:        "engine@example.com",
			Currency:       "USD",
			AssetScale:     9,
			ProcessorScale: 2,
			MinUnits:       big.NewInt(100),
		})
		proto := protocol.NewHandler(store, "engine@example.com")

		r := chi.NewRouter()
		handlers.New(store, proto, eng, logger).RegisterRoutes(r)
		return r
	}

	t.Run("Message Route Returns Payment Details", func(t *testing.T) {
		store := new(mocks.Storage)
		store.On("GetAccount", mock.Anything, "alice").Return(&models.Account{Id: "alice"}, nil)
		store.On("GetOrAllocateTag", mock.Anything, "alice").Return(uint32(908), nil)

		r := newRouter(store, new(enginemocks.PeerClient), new(paypalmocks.Client))

		body, _ := protocol.NewPaymentDetailsRequest()
		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/messages", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var details models.PaymentDetails
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &details))
		assert.Equal(t, uint32(908), details.DestinationTag)
	})

	t.Run("Settlement Route Submits Payout", func(t *testing.T) {
		store := new(mocks.Storage)
		store.On("GetAccount", mock.Anything, "alice").Return(&models.Account{Id: "alice"}, nil)

		peer := new(enginemocks.PeerClient)
		peer.On("RequestPaymentDetails", mock.Anything, "alice").
			Return(&models.PaymentDetails{PpEmail: "peer@example.com", DestinationTag: 908}, nil)

		payouts := new(paypalmocks.Client)
		payouts.On("SubmitPayout", mock.Anything, mock.MatchedBy(func(p paypal.Payout) bool {
			return p.Value == "2.50" && p.Receiver == "peer@example.com"
		})).Return("BATCH-1", nil)

		r := newRouter(store, peer, payouts)

		body, _ := json.Marshal(map[string]interface{}{"amount": "2500000000", "scale": 9})
		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/settlement", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		payouts.AssertExpectations(t)
	})

	t.Run("Webhook Route Notifies Connector", func(t *testing.T) {
		store := new(mocks.Storage)
		store.On("ResolveTag", mock.Anything, uint32(908)).Return("alice", nil)

		peer := new(enginemocks.PeerClient)
		peer.On("NotifySettlement", mock.Anything, "alice", big.NewInt(2500000000), uint(9)).Return(nil)

		r := newRouter(store, peer, new(paypalmocks.Client))

		event := `{"event_type":"PAYMENT.PAYOUTS-ITEM.SUCCEEDED","resource":{"transaction_status":"SUCCESS","payout_item":{"note":"Settlement from a to b (908)","receiver":"peer@example.com","amount":{"currency":"USD","value":"2.50"}}}}`
		req := httptest.NewRequest(http.MethodPost, "/accounts/whatever/webhooks", bytes.NewReader([]byte(event)))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		peer.AssertExpectations(t)
	})
}
