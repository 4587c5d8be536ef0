package messages_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/paypal-settlement-engine/pkg/handlers/messages"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/protocol"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
	"github.com/chris/paypal-settlement-engine/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleMessage(t *testing.T) {
	t.Run("Payment Details", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{Id: "alice"}, nil)
		mockStorage.On("GetOrAllocateTag", mock.Anything, "alice").Return(uint32(908), nil)

		h := messages.NewMessagesHandler(mockStorage, protocol.NewHandler(mockStorage, "engine@example.com"))

		body, _ := protocol.NewPaymentDetailsRequest()
		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/messages", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.HandleMessage(rr, req, "alice")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))

		var details models.PaymentDetails
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &details))
		assert.Equal(t, "engine@example.com", details.PpEmail)
		assert.Equal(t, uint32(908), details.DestinationTag)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Message Type", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{Id: "alice"}, nil)

		h := messages.NewMessagesHandler(mockStorage, protocol.NewHandler(mockStorage, "engine@example.com"))

		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/messages", bytes.NewReader([]byte(`{"type":"mystery"}`)))
		rr := httptest.NewRecorder()

		h.HandleMessage(rr, req, "alice")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetOrAllocateTag", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "nobody").Return(nil, storage.ErrAccountNotFound)

		h := messages.NewMessagesHandler(mockStorage, protocol.NewHandler(mockStorage, "engine@example.com"))

		body, _ := protocol.NewPaymentDetailsRequest()
		req := httptest.NewRequest(http.MethodPost, "/accounts/nobody/messages", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.HandleMessage(rr, req, "nobody")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{Id: "alice"}, nil)

		h := messages.NewMessagesHandler(mockStorage, protocol.NewHandler(mockStorage, "engine@example.com"))

		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/messages", bytes.NewReader([]byte("not json")))
		rr := httptest.NewRecorder()

		h.HandleMessage(rr, req, "alice")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
