package interfaces

import (
	"context"
	"encoding/json"

	"chapa_billing/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment provider (Chapa).
//
// The billing-service uses it to initialize a hosted checkout, to verify a
// transaction after the customer pays, and to persist the provider
// response payload for traceability.
type IPaymentGateway interface {
	InitializePayment(ctx context.Context, tx entities.Transaction) (checkoutURL string, providerStatus string, providerResponse json.RawMessage, err error)
	VerifyPayment(ctx context.Context, txRef string) (providerStatus string, providerResponse json.RawMessage, err error)
}
