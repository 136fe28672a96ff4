package handlers

import (
	"errors"
	"log"
	"net/http"

	request "chapa_billing/internal/adapter/http/dto/request"
	response "chapa_billing/internal/adapter/http/dto/response"
	"chapa_billing/internal/usecase"
	"chapa_billing/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidTransactionPayload = pkg.NewDomainErrorSimple("INVALID_TRANSACTION_INPUT", "Invalid transaction payload", http.StatusBadRequest)
)

// TransactionHandler handles HTTP requests for payment transactions.

type TransactionHandler struct {
	usecase usecase.ITransactionUseCase
}

func NewTransactionHandler(uc usecase.ITransactionUseCase) *TransactionHandler {
	return &TransactionHandler{usecase: uc}
}

// InitiateTransaction creates a pending transaction and a Chapa hosted
// checkout, returning the checkout URL the customer should be sent to.
func (h *TransactionHandler) InitiateTransaction(c *gin.Context) {
	var payload request.InitiateTransactionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid payload err=%v", err)
		c.JSON(errInvalidTransactionPayload.HTTPStatus, errInvalidTransactionPayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		log.Printf("[payment][handler] invalid amount amount=%v", payload.Amount)
		c.JSON(errInvalidTransactionPayload.HTTPStatus, errInvalidTransactionPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.InitiatePayment(c.Request.Context(), in)
	if err != nil {
		log.Printf("[payment][handler] initiate failed email=%s err=%v", in.Email, err)
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] initiate success tx_ref=%s", created.TxRef)

	c.JSON(http.StatusCreated, response.FromTransaction(created))
}

// VerifyTransaction reconciles a transaction against the gateway.
func (h *TransactionHandler) VerifyTransaction(c *gin.Context) {
	txRef := c.Param("tx_ref")
	log.Printf("[payment][handler] verify start tx_ref=%s", txRef)

	verified, err := h.usecase.VerifyPayment(c.Request.Context(), txRef)
	if err != nil {
		log.Printf("[payment][handler] verify failed tx_ref=%s err=%v", txRef, err)
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] verify success tx_ref=%s status=%s", txRef, verified.Status)

	c.JSON(http.StatusOK, response.FromTransaction(verified))
}

// GetTransactionByTxRef returns the stored transaction.
func (h *TransactionHandler) GetTransactionByTxRef(c *gin.Context) {
	txRef := c.Param("tx_ref")

	tx, err := h.usecase.GetByTxRef(c.Request.Context(), txRef)
	if err != nil {
		log.Printf("[payment][handler] get failed tx_ref=%s err=%v", txRef, err)
		appErr := mapTransactionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTransaction(tx))
}

func mapTransactionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTxRef), errors.Is(err, usecase.ErrInvalidPaymentRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainErrorSimple("TRANSACTION_NOT_FOUND", "Transaction not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentGatewayRejected):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_REJECTED", "Payment provider rejected the transaction", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigure):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
