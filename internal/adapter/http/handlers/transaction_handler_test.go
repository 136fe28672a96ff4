package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chapa_billing/internal/adapter/http/handlers/mocks"
	"chapa_billing/internal/domain/entities"
	"chapa_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newTransactionRouter(h *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/transactions", h.InitiateTransaction)
	r.GET("/v1/transactions/:tx_ref", h.GetTransactionByTxRef)
	r.POST("/v1/transactions/:tx_ref/verify", h.VerifyTransaction)
	return r
}

func TestTransactionHandler_InitiateTransaction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockITransactionUseCase(ctrl)
		r := newTransactionRouter(NewTransactionHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(`{"email":"a@b.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockITransactionUseCase(ctrl)
		r := newTransactionRouter(NewTransactionHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(`{"email":"a@b.com","amount":-5,"first_name":"A","last_name":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockITransactionUseCase(ctrl)
		r := newTransactionRouter(NewTransactionHandler(uc))

		uc.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(entities.Transaction{}, usecase.ErrPaymentGatewayUnavailable)

		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(`{"email":"a@b.com","amount":100,"first_name":"A","last_name":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockITransactionUseCase(ctrl)
		r := newTransactionRouter(NewTransactionHandler(uc))

		now := time.Now().UTC()
		uc.EXPECT().InitiatePayment(gomock.Any(), usecase.InitiatePaymentInput{
			Email: "a@b.com", Amount: 100, FirstName: "A", LastName: "B",
		}).Return(entities.Transaction{
			ID: "id-1", TxRef: "tx-1", Email: "a@b.com", Amount: 100, Currency: "ETB",
			CheckoutURL: "https://checkout.chapa.co/pay/123",
			Status:      entities.TransactionStatusPending,
			CreatedAt:   now, UpdatedAt: now,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", bytes.NewBufferString(`{"email":"a@b.com","amount":100,"first_name":"A","last_name":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body["tx_ref"] != "tx-1" {
			t.Fatalf("unexpected body %v", body)
		}
		if body["checkout_url"] != "https://checkout.chapa.co/pay/123" {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestTransactionHandler_VerifyTransaction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockITransactionUseCase(ctrl)
		r := newTransactionRouter(NewTransactionHandler(uc))

		uc.EXPECT().VerifyPayment(gomock.Any(), "tx-x").Return(entities.Transaction{}, usecase.ErrTransactionNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/transactions/tx-x/verify", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockITransactionUseCase(ctrl)
		r := newTransactionRouter(NewTransactionHandler(uc))

		uc.EXPECT().VerifyPayment(gomock.Any(), "tx-1").Return(entities.Transaction{ID: "id-1", TxRef: "tx-1", Status: entities.TransactionStatusSuccess}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/transactions/tx-1/verify", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body["status"] != "success" {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestTransactionHandler_GetTransactionByTxRef(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockITransactionUseCase(ctrl)
	r := newTransactionRouter(NewTransactionHandler(uc))

	uc.EXPECT().GetByTxRef(gomock.Any(), "tx-1").Return(entities.Transaction{ID: "id-1", TxRef: "tx-1", Status: entities.TransactionStatusPending}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions/tx-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
