package request

import (
	"errors"
	"testing"
)

func TestInitiateTransactionRequest_ToInput(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		req := InitiateTransactionRequest{
			Email:       " a@b.com ",
			Amount:      100,
			FirstName:   " A ",
			LastName:    "B",
			Currency:    "etb ",
			CallbackURL: " https://merchant.example/return ",
		}

		in, err := req.ToInput()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Email != "a@b.com" || in.FirstName != "A" || in.Currency != "etb" {
			t.Fatalf("fields not trimmed: %#v", in)
		}
		if in.CallbackURL != "https://merchant.example/return" {
			t.Fatalf("unexpected callback url %q", in.CallbackURL)
		}
		if in.Amount != 100 {
			t.Fatalf("unexpected amount %v", in.Amount)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		req := InitiateTransactionRequest{Email: "a@b.com", Amount: 0, FirstName: "A", LastName: "B"}
		if _, err := req.ToInput(); !errors.Is(err, ErrInvalidTransactionAmount) {
			t.Fatalf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		req := InitiateTransactionRequest{Email: "a@b.com", Amount: -10, FirstName: "A", LastName: "B"}
		if _, err := req.ToInput(); !errors.Is(err, ErrInvalidTransactionAmount) {
			t.Fatalf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})
}
