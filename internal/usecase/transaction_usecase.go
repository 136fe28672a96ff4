package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"chapa_billing/internal/domain/entities"
	"chapa_billing/internal/usecase/interfaces"
	"chapa_billing/pkg/chapa"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrInvalidTxRef               = errors.New("invalid tx_ref")
	ErrInvalidPaymentRequest      = errors.New("invalid payment request")
	ErrPaymentGatewayRejected     = errors.New("payment gateway rejected the transaction")
	ErrPaymentGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrPaymentGatewayNotConfigure = errors.New("payment gateway not configured")
)

// InitiatePaymentInput is the validated service-level payload for starting
// a checkout. Field-shape validation (email pattern, amount boundaries)
// belongs to the gateway client; this layer checks presence only.
type InitiatePaymentInput struct {
	Email       string
	Amount      float64
	FirstName   string
	LastName    string
	Currency    string
	CallbackURL string
}

// ITransactionUseCase encapsulates the payment flow:
//   - InitiatePayment creates a pending transaction and a hosted checkout.
//   - VerifyPayment reconciles the transaction against the gateway.

type ITransactionUseCase interface {
	InitiatePayment(ctx context.Context, in InitiatePaymentInput) (entities.Transaction, error)
	VerifyPayment(ctx context.Context, txRef string) (entities.Transaction, error)
	GetByTxRef(ctx context.Context, txRef string) (entities.Transaction, error)
}

type TransactionUseCase struct {
	repo    interfaces.ITransactionRepository
	gateway interfaces.IPaymentGateway
}

var _ ITransactionUseCase = (*TransactionUseCase)(nil)

func NewTransactionUseCase(repo interfaces.ITransactionRepository, gateway interfaces.IPaymentGateway) *TransactionUseCase {
	return &TransactionUseCase{repo: repo, gateway: gateway}
}

func (u *TransactionUseCase) InitiatePayment(ctx context.Context, in InitiatePaymentInput) (entities.Transaction, error) {
	log.Printf("[payment][usecase] initiate start email=%s amount=%.2f", in.Email, in.Amount)

	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Email == "" || in.FirstName == "" || in.LastName == "" {
		log.Printf("[payment][usecase] missing required fields email=%q", in.Email)
		return entities.Transaction{}, ErrInvalidPaymentRequest
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured")
		return entities.Transaction{}, ErrPaymentGatewayNotConfigure
	}
	if u.repo == nil {
		return entities.Transaction{}, errors.New("transaction repository not configured")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "ETB"
	}

	now := time.Now().UTC()
	tx := entities.Transaction{
		ID:          uuid.NewString(),
		TxRef:       "tx-" + uuid.NewString(),
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Amount:      in.Amount,
		Currency:    currency,
		CallbackURL: strings.TrimSpace(in.CallbackURL),
		Status:      entities.TransactionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	log.Printf("[payment][usecase] calling payment gateway tx_ref=%s", tx.TxRef)
	checkoutURL, providerStatus, providerResp, err := u.gateway.InitializePayment(ctx, tx)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed tx_ref=%s err=%v", tx.TxRef, err)
		return entities.Transaction{}, classifyGatewayError(err)
	}
	if !strings.EqualFold(providerStatus, "success") {
		log.Printf("[payment][usecase] payment gateway rejected tx_ref=%s provider_status=%s", tx.TxRef, providerStatus)
		return entities.Transaction{}, ErrPaymentGatewayRejected
	}

	tx.CheckoutURL = checkoutURL
	tx.ChapaPayloadRaw = providerResp
	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err == nil {
		tx.ChapaPayload = parsed
	} else {
		log.Printf("[payment][usecase] provider response unmarshal failed tx_ref=%s err=%v", tx.TxRef, err)
	}

	created, err := u.repo.Create(ctx, tx)
	if err != nil {
		log.Printf("[payment][usecase] transaction create failed tx_ref=%s err=%v", tx.TxRef, err)
		return entities.Transaction{}, err
	}
	log.Printf("[payment][usecase] initiate success tx_ref=%s checkout_url=%s", created.TxRef, created.CheckoutURL)
	return created, nil
}

func (u *TransactionUseCase) VerifyPayment(ctx context.Context, txRef string) (entities.Transaction, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return entities.Transaction{}, ErrInvalidTxRef
	}
	if u.gateway == nil {
		return entities.Transaction{}, ErrPaymentGatewayNotConfigure
	}
	log.Printf("[payment][usecase] verify start tx_ref=%s", txRef)

	tx, err := u.repo.GetByTxRef(ctx, txRef)
	if err != nil {
		return entities.Transaction{}, err
	}
	if tx.ID == "" {
		log.Printf("[payment][usecase] transaction not found tx_ref=%s", txRef)
		return entities.Transaction{}, ErrTransactionNotFound
	}

	providerStatus, providerResp, err := u.gateway.VerifyPayment(ctx, txRef)
	if err != nil {
		log.Printf("[payment][usecase] gateway verify failed tx_ref=%s err=%v", txRef, err)
		return entities.Transaction{}, classifyGatewayError(err)
	}

	tx.Status = mapProviderStatus(providerStatus)
	tx.ChapaPayloadRaw = providerResp
	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err == nil {
		tx.ChapaPayload = parsed
	}
	tx.UpdatedAt = time.Now().UTC()

	saved, err := u.repo.Save(ctx, tx)
	if err != nil {
		log.Printf("[payment][usecase] transaction save failed tx_ref=%s err=%v", txRef, err)
		return entities.Transaction{}, err
	}
	log.Printf("[payment][usecase] verify success tx_ref=%s status=%s", txRef, saved.Status)
	return saved, nil
}

func (u *TransactionUseCase) GetByTxRef(ctx context.Context, txRef string) (entities.Transaction, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return entities.Transaction{}, ErrInvalidTxRef
	}
	tx, err := u.repo.GetByTxRef(ctx, txRef)
	if err != nil {
		return entities.Transaction{}, err
	}
	if tx.ID == "" {
		return entities.Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

// mapProviderStatus folds Chapa verify statuses onto the entity lifecycle.
// Unknown statuses stay pending so a later verify can settle them.
func mapProviderStatus(providerStatus string) entities.TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "success":
		return entities.TransactionStatusSuccess
	case "failed", "cancelled":
		return entities.TransactionStatusFailed
	default:
		return entities.TransactionStatusPending
	}
}

func classifyGatewayError(err error) error {
	switch {
	case errors.Is(err, chapa.ErrInvalidAmount), errors.Is(err, chapa.ErrInvalidEmail), errors.Is(err, chapa.ErrInvalidArgument):
		return ErrInvalidPaymentRequest
	default:
		var te *chapa.TransportError
		if errors.As(err, &te) {
			return ErrPaymentGatewayUnavailable
		}
		return err
	}
}
