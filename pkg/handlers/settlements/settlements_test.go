package settlements_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/paypal-settlement-engine/pkg/engine"
	"github.com/chris/paypal-settlement-engine/pkg/handlers/settlements"
	"github.com/chris/paypal-settlement-engine/pkg/models"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
	"github.com/chris/paypal-settlement-engine/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSettler struct {
	mock.Mock
}

func (m *mockSettler) Settle(ctx context.Context, account *models.Account, amount *big.Int, scale uint) error {
	args := m.Called(ctx, account, amount, scale)
	return args.Error(0)
}

func settlementBody(t *testing.T, amount string, scale uint) *bytes.Reader {
	body, err := json.Marshal(map[string]interface{}{"amount": amount, "scale": scale})
	assert.NoError(t, err)
	return bytes.NewReader(body)
}

func TestCreateSettlement(t *testing.T) {
	account := &models.Account{Id: "alice"}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(account, nil)

		settler := new(mockSettler)
		settler.On("Settle", mock.Anything, account, big.NewInt(2500000000), uint(9)).Return(nil)

		h := settlements.NewSettlementsHandler(mockStorage, settler)

		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/settlement", settlementBody(t, "2500000000", 9))
		rr := httptest.NewRecorder()

		h.CreateSettlement(rr, req, "alice")

		assert.Equal(t, http.StatusOK, rr.Code)
		settler.AssertExpectations(t)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "nobody").Return(nil, storage.ErrAccountNotFound)

		settler := new(mockSettler)
		h := settlements.NewSettlementsHandler(mockStorage, settler)

		req := httptest.NewRequest(http.MethodPost, "/accounts/nobody/settlement", settlementBody(t, "100", 9))
		rr := httptest.NewRecorder()

		h.CreateSettlement(rr, req, "nobody")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(account, nil)

		settler := new(mockSettler)
		h := settlements.NewSettlementsHandler(mockStorage, settler)

		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/settlement", settlementBody(t, "2.5", 9))
		rr := httptest.NewRecorder()

		h.CreateSettlement(rr, req, "alice")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Below Minimum", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(account, nil)

		settler := new(mockSettler)
		settler.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(engine.ErrBelowMinimum)

		h := settlements.NewSettlementsHandler(mockStorage, settler)

		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/settlement", settlementBody(t, "1", 9))
		rr := httptest.NewRecorder()

		h.CreateSettlement(rr, req, "alice")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(account, nil)

		settler := new(mockSettler)
		settler.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(engine.ErrUpstream)

		h := settlements.NewSettlementsHandler(mockStorage, settler)

		req := httptest.NewRequest(http.MethodPost, "/accounts/alice/settlement", settlementBody(t, "2500000000", 9))
		rr := httptest.NewRecorder()

		h.CreateSettlement(rr, req, "alice")

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}
