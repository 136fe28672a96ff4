package chapa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	// Integer amounts only reject negatives; decimal/string amounts must be
	// unsigned and strictly positive. The zero boundary differs on purpose.
	valid := []any{0, 100, int64(5), uint(3), 12.5, "12.5", "100", "0.01"}
	for _, amount := range valid {
		if err := validateAmount(amount); err != nil {
			t.Fatalf("amount %v (%T): unexpected error: %v", amount, amount, err)
		}
	}

	invalid := []any{-1, int64(-20), -0.5, 0.0, "0", "abc", "-5", "1.2.3", "", " 10", true, nil, []any{1}}
	for _, amount := range invalid {
		if err := validateAmount(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v (%T): expected ErrInvalidAmount, got %v", amount, amount, err)
		}
	}
}

func TestInitialize_Validation(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk_test_x", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := InitializeRequest{
		Email:     "a@b.com",
		Amount:    100,
		FirstName: "A",
		LastName:  "B",
		TxRef:     "tx1",
	}

	t.Run("negative integer amount", func(t *testing.T) {
		req := base
		req.Amount = -1
		if _, err := c.Initialize(context.Background(), req, nil); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("non-numeric string amount", func(t *testing.T) {
		req := base
		req.Amount = "abc"
		if _, err := c.Initialize(context.Background(), req, nil); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		req := base
		req.Email = "not-an-email"
		if _, err := c.Initialize(context.Background(), req, nil); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("non-flat headers", func(t *testing.T) {
		if _, err := c.Initialize(context.Background(), base, map[string]any{"X": map[string]any{}}); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	// Validation failures must never reach the wire.
	if hits != 0 {
		t.Fatalf("expected no requests, got %d", hits)
	}

	t.Run("decimal string amount succeeds", func(t *testing.T) {
		req := base
		req.Amount = "12.5"
		if _, err := c.Initialize(context.Background(), req, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hits != 1 {
			t.Fatalf("expected 1 request, got %d", hits)
		}
	})
}

func TestInitialize_Dispatch(t *testing.T) {
	var (
		hits int
		path string
		auth string
		form url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hosted Link","status":"success","data":{"checkout_url":"https://checkout.chapa.co/pay/123"}}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk_test_x", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := c.Initialize(context.Background(), InitializeRequest{
		Email:       "a@b.com",
		Amount:      100,
		FirstName:   "A",
		LastName:    "B",
		TxRef:       "tx1",
		CallbackURL: "https://merchant.example/return",
		Customization: &Customization{
			Title:       "My Shop",
			Description: "Order #42",
		},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hits != 1 {
		t.Fatalf("expected exactly one request, got %d", hits)
	}
	if path != "/v1/transaction/initialize" {
		t.Fatalf("unexpected path %q", path)
	}
	if auth != "Bearer sk_test_x" {
		t.Fatalf("unexpected Authorization %q", auth)
	}

	want := map[string]string{
		"amount":                     "100",
		"email":                      "a@b.com",
		"first_name":                 "A",
		"last_name":                  "B",
		"tx_ref":                     "tx1",
		"currency":                   "ETB",
		"callback_url":               "https://merchant.example/return",
		"customization[title]":       "My Shop",
		"customization[description]": "Order #42",
	}
	for k, v := range want {
		if got := form.Get(k); got != v {
			t.Fatalf("form[%q]: expected %q, got %q", k, v, got)
		}
	}
	if form.Has("customization[logo]") {
		t.Fatalf("unset customization field must not be sent")
	}

	m, ok := res.(map[string]any)
	if !ok {
		t.Fatalf("raw mode must return the decoded mapping, got %T", res)
	}
	data, ok := m["data"].(map[string]any)
	if !ok || data["checkout_url"] != "https://checkout.chapa.co/pay/123" {
		t.Fatalf("unexpected payload %#v", m)
	}
}

func TestVerify(t *testing.T) {
	var (
		method string
		path   string
		body   int64
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		body = r.ContentLength
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Payment details","status":"success","data":{"tx_ref":"tx1","status":"success"}}`))
	}))
	defer srv.Close()

	t.Run("raw mode", func(t *testing.T) {
		c, err := NewClient("sk_test_x", WithBaseURL(srv.URL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		res, err := c.Verify(context.Background(), "tx1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if method != http.MethodGet {
			t.Fatalf("expected GET, got %s", method)
		}
		if path != "/v1/transaction/verify/tx1" {
			t.Fatalf("unexpected path %q", path)
		}
		if body > 0 {
			t.Fatalf("verify must not send a body, got %d bytes", body)
		}
		if _, ok := res.(map[string]any); !ok {
			t.Fatalf("expected mapping, got %T", res)
		}
	})

	t.Run("object mode", func(t *testing.T) {
		c, err := NewClient("sk_test_x", WithBaseURL(srv.URL), WithResponseFormat(FormatObject))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		res, err := c.Verify(context.Background(), "tx1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		obj, ok := res.(*Object)
		if !ok {
			t.Fatalf("expected *Object, got %T", res)
		}
		if obj.String("status") != "success" {
			t.Fatalf("unexpected envelope status %q", obj.String("status"))
		}
		if obj.Object("data").String("tx_ref") != "tx1" {
			t.Fatalf("nested field not addressable: %#v", obj)
		}
	})
}
