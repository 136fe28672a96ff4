package entities

import (
	"encoding/json"
	"time"
)

// TransactionStatus represents the payment lifecycle as reported by Chapa.
//
// Domain notes:
//   - A transaction is created pending when checkout is initialized.
//   - Verify reconciles the status against the gateway.

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction is the payment transaction persisted by the billing-service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (tx_ref-index): tx_ref
//
// Chapa payload:
//   - ChapaPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - ChapaPayload is an optional parsed representation, useful for
//     querying/debugging. (We persist both because gateway responses vary
//     in schema across API versions.)

type Transaction struct {
	ID          string            `json:"id"`
	TxRef       string            `json:"tx_ref"`
	Email       string            `json:"email"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	CallbackURL string            `json:"callback_url,omitempty"`
	CheckoutURL string            `json:"checkout_url,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	ChapaPayloadRaw json.RawMessage        `json:"chapa_payload_raw,omitempty"`
	ChapaPayload    map[string]interface{} `json:"chapa_payload,omitempty"`
}
