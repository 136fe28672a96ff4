package request

import (
	"errors"
	"strings"

	"chapa_billing/internal/usecase"
)

var (
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")
)

// CustomizationRequest mirrors the hosted-checkout branding fields.
type CustomizationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

// InitiateTransactionRequest is the payload for POST /v1/transactions.
//
// Field-shape validation (email pattern, amount boundaries) is enforced by
// the gateway client; binding tags only gate presence.
type InitiateTransactionRequest struct {
	Email         string                `json:"email" binding:"required"`
	Amount        float64               `json:"amount" binding:"required"`
	FirstName     string                `json:"first_name" binding:"required"`
	LastName      string                `json:"last_name" binding:"required"`
	Currency      string                `json:"currency"`
	CallbackURL   string                `json:"callback_url"`
	Customization *CustomizationRequest `json:"customization"`
}

// ToInput converts the payload into the use-case input, rejecting amounts
// the gateway would refuse anyway before a network call is attempted.
func (r InitiateTransactionRequest) ToInput() (usecase.InitiatePaymentInput, error) {
	if r.Amount <= 0 {
		return usecase.InitiatePaymentInput{}, ErrInvalidTransactionAmount
	}
	return usecase.InitiatePaymentInput{
		Email:       strings.TrimSpace(r.Email),
		Amount:      r.Amount,
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		Currency:    strings.TrimSpace(r.Currency),
		CallbackURL: strings.TrimSpace(r.CallbackURL),
	}, nil
}
