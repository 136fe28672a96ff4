package response

import (
	"time"

	"chapa_billing/internal/domain/entities"
)

type TransactionResponse struct {
	ID          string    `json:"id"`
	TxRef       string    `json:"tx_ref"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	CallbackURL string    `json:"callback_url,omitempty"`
	CheckoutURL string    `json:"checkout_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	ChapaPayloadRaw string                 `json:"chapa_payload_raw,omitempty"`
	ChapaPayload    map[string]interface{} `json:"chapa_payload,omitempty"`
}

func FromTransaction(tx entities.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		TxRef:           tx.TxRef,
		Email:           tx.Email,
		FirstName:       tx.FirstName,
		LastName:        tx.LastName,
		Amount:          tx.Amount,
		Currency:        tx.Currency,
		CallbackURL:     tx.CallbackURL,
		CheckoutURL:     tx.CheckoutURL,
		Status:          string(tx.Status),
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
		ChapaPayloadRaw: string(tx.ChapaPayloadRaw),
		ChapaPayload:    tx.ChapaPayload,
	}
}
