package chapa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponseFormat is returned by NewClient when the configured
	// response format is not FormatRaw or FormatObject.
	ErrInvalidResponseFormat = errors.New("chapa: response format must be \"raw\" or \"object\"")

	// ErrInvalidMethod is returned by SendRequest for methods outside {POST, PUT}.
	ErrInvalidMethod = errors.New("chapa: invalid method")

	// ErrInvalidArgument is returned when data, params or headers are not
	// flat string-keyed mappings (a value is itself a mapping or a sequence).
	ErrInvalidArgument = errors.New("chapa: invalid argument")

	// ErrInvalidAmount is returned by Initialize for amounts that are neither
	// non-negative integers nor positive decimal numbers/strings.
	ErrInvalidAmount = errors.New("chapa: invalid amount")

	// ErrInvalidEmail is returned by Initialize for addresses that do not
	// look like local@domain.tld.
	ErrInvalidEmail = errors.New("chapa: invalid email")
)

// TransportError wraps a failure of the underlying HTTP round trip. The
// client performs no retries; transport failures surface unchanged.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chapa: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
