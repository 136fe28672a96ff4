package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"chapa_billing/internal/domain/entities"
	"chapa_billing/pkg/chapa"
)

var ErrMissingChapaSecretKey = errors.New("missing CHAPA_SECRET_KEY")
var ErrChapaGatewayNotConfigured = errors.New("chapa gateway not configured")

// ChapaGateway adapts the Chapa client to the IPaymentGateway port.
type ChapaGateway struct {
	client   *chapa.Client
	mockMode bool
}

// NewChapaGateway builds the gateway from environment configuration:
//   - CHAPA_SECRET_KEY (required outside mock mode)
//   - CHAPA_BASE_URL (optional; e.g. a sandbox host)
//   - CHAPA_API_VERSION (optional)
func NewChapaGateway(secretKey string) (*ChapaGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &ChapaGateway{mockMode: true}, nil
	}

	if secretKey == "" {
		log.Printf("[payment][gateway] missing CHAPA_SECRET_KEY")
		return nil, ErrMissingChapaSecretKey
	}

	opts := []chapa.Option{}
	if base := strings.TrimSpace(os.Getenv("CHAPA_BASE_URL")); base != "" {
		opts = append(opts, chapa.WithBaseURL(base))
	}
	if version := strings.TrimSpace(os.Getenv("CHAPA_API_VERSION")); version != "" {
		opts = append(opts, chapa.WithAPIVersion(version))
	}

	client, err := chapa.NewClient(secretKey, opts...)
	if err != nil {
		log.Printf("[payment][gateway] failed creating chapa client err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Chapa client initialized")

	return &ChapaGateway{client: client}, nil
}

func (g *ChapaGateway) InitializePayment(ctx context.Context, tx entities.Transaction) (string, string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock initialize start tx_ref=%s", tx.TxRef)
		checkoutURL := "https://checkout.chapa.co/checkout/payment/" + mockID()
		resp := map[string]any{
			"message": "Hosted Link",
			"status":  "success",
			"data":    map[string]any{"checkout_url": checkoutURL},
		}
		b, err := json.Marshal(resp)
		if err != nil {
			return "", "", nil, err
		}
		log.Printf("[payment][gateway] mock initialize success tx_ref=%s", tx.TxRef)
		return checkoutURL, "success", b, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", "", nil, ErrChapaGatewayNotConfigured
	}
	log.Printf("[payment][gateway] initialize start tx_ref=%s amount=%.2f", tx.TxRef, tx.Amount)

	res, err := g.client.Initialize(ctx, chapa.InitializeRequest{
		Email:       tx.Email,
		Amount:      tx.Amount,
		FirstName:   tx.FirstName,
		LastName:    tx.LastName,
		TxRef:       tx.TxRef,
		Currency:    tx.Currency,
		CallbackURL: tx.CallbackURL,
	}, nil)
	if err != nil {
		log.Printf("[payment][gateway] initialize failed tx_ref=%s err=%v", tx.TxRef, err)
		return "", "", nil, err
	}

	payload, status, err := decodeGatewayResult(res)
	if err != nil {
		log.Printf("[payment][gateway] initialize decode failed tx_ref=%s err=%v", tx.TxRef, err)
		return "", "", nil, err
	}

	checkoutURL := ""
	if data, ok := payload["data"].(map[string]any); ok {
		checkoutURL, _ = data["checkout_url"].(string)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] initialize done tx_ref=%s provider_status=%s", tx.TxRef, status)
	return checkoutURL, status, b, nil
}

func (g *ChapaGateway) VerifyPayment(ctx context.Context, txRef string) (string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock verify start tx_ref=%s", txRef)
		now := time.Now().UTC().Format(time.RFC3339Nano)
		resp := map[string]any{
			"message": "Payment details",
			"status":  "success",
			"data": map[string]any{
				"tx_ref":     txRef,
				"status":     "success",
				"created_at": now,
				"updated_at": now,
			},
		}
		b, err := json.Marshal(resp)
		if err != nil {
			return "", nil, err
		}
		return "success", b, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", nil, ErrChapaGatewayNotConfigured
	}
	log.Printf("[payment][gateway] verify start tx_ref=%s", txRef)

	res, err := g.client.Verify(ctx, txRef, nil)
	if err != nil {
		log.Printf("[payment][gateway] verify failed tx_ref=%s err=%v", txRef, err)
		return "", nil, err
	}

	payload, status, err := decodeGatewayResult(res)
	if err != nil {
		log.Printf("[payment][gateway] verify decode failed tx_ref=%s err=%v", txRef, err)
		return "", nil, err
	}

	// The settlement status of the payment itself lives under data.status;
	// the envelope status only says whether the lookup worked.
	if data, ok := payload["data"].(map[string]any); ok {
		if s, ok := data["status"].(string); ok && s != "" {
			status = s
		}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}
	log.Printf("[payment][gateway] verify done tx_ref=%s provider_status=%s", txRef, status)
	return status, b, nil
}

// decodeGatewayResult narrows the client's polymorphic result to the JSON
// envelope every Chapa endpoint answers with.
func decodeGatewayResult(res any) (map[string]any, string, error) {
	payload, ok := res.(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("unexpected gateway response type %T", res)
	}
	status, _ := payload["status"].(string)
	return payload, status, nil
}

func mockID() string {
	return strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "CHAPA_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
