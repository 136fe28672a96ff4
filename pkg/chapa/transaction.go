package chapa

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customization carries the optional hosted-checkout branding fields. Each
// set field is flattened into a bracketed form key, e.g. customization[title].
type Customization struct {
	Title       string
	Description string
	Logo        string
}

// InitializeRequest is the payload for Initialize.
//
// Amount is deliberately polymorphic: the gateway accepts integers,
// decimal numbers and numeric strings, with different boundary rules per
// shape (see validateAmount).
type InitializeRequest struct {
	Email     string
	Amount    any
	FirstName string
	LastName  string
	TxRef     string

	// Currency defaults to ETB when empty.
	Currency      string
	CallbackURL   string
	Customization *Customization
}

// Initialize starts a transaction: POST /{version}/transaction/initialize.
//
// The result follows the configured response format: the decoded JSON
// value in FormatRaw, an *Object tree in FormatObject, or the body string
// when the gateway answers with something that is not JSON. headers may be
// nil; when given they apply to this call only.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest, headers map[string]any) (any, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w %q", ErrInvalidEmail, req.Email)
	}
	if err := validateFlat("headers", headers); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "ETB"
	}

	data := map[string]any{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"tx_ref":     req.TxRef,
		"currency":   currency,
		"amount":     req.Amount,
		"email":      req.Email,
	}
	if req.CallbackURL != "" {
		data["callback_url"] = req.CallbackURL
	}
	if cu := req.Customization; cu != nil {
		if cu.Title != "" {
			data["customization[title]"] = cu.Title
		}
		if cu.Description != "" {
			data["customization[description]"] = cu.Description
		}
		if cu.Logo != "" {
			data["customization[logo]"] = cu.Logo
		}
	}

	res, err := c.do(ctx, c.endpoint("transaction/initialize"), http.MethodPost, data, nil, headers)
	if err != nil {
		return nil, err
	}
	return c.adapt(res), nil
}

// Verify checks a transaction: GET /{version}/transaction/verify/{txID}.
// GET is not in the SendRequest allow-list, so Verify dispatches through
// the internal path reserved for read-only operations.
func (c *Client) Verify(ctx context.Context, transactionID string, headers map[string]any) (any, error) {
	if err := validateFlat("headers", headers); err != nil {
		return nil, err
	}
	res, err := c.do(ctx, c.endpoint("transaction/verify/"+transactionID), http.MethodGet, nil, nil, headers)
	if err != nil {
		return nil, err
	}
	return c.adapt(res), nil
}

// validateAmount keeps the gateway's asymmetric boundary rules: integer
// amounts only reject negatives (zero passes), while decimal numbers and
// numeric strings must be unsigned and strictly positive (zero and any
// signed form fail).
func validateAmount(amount any) error {
	switch n := amount.(type) {
	case int:
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, n)
		}
		return nil
	case int8:
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, n)
		}
		return nil
	case int16:
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, n)
		}
		return nil
	case int32:
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, n)
		}
		return nil
	case int64:
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmount, n)
		}
		return nil
	case uint, uint8, uint16, uint32, uint64:
		return nil
	case float32, float64, string:
		return validateDecimalAmount(scalarString(n))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, amount)
	}
}

func validateDecimalAmount(s string) error {
	digits := strings.Replace(s, ".", "", 1)
	if digits == "" || strings.ContainsFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return nil
}
