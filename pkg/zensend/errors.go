package zensend

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument is returned, wrapped with detail, when a call is rejected
// locally before any request is made.
var ErrInvalidArgument = errors.New("zensend: invalid argument")

// ClientError is returned when the provider (or something in front of it)
// answers with anything other than a success envelope.
//
// HTTPStatus is always set. The remaining fields are populated only when the
// response carried a failure object; CostInPence and NewBalanceInPence are
// valid when the provider billed the failed call.
type ClientError struct {
	HTTPStatus        int
	FailCode          string
	Parameter         string
	CostInPence       decimal.NullDecimal
	NewBalanceInPence decimal.NullDecimal
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("zensend: HTTP Code: %d. Fail Code: %s. Parameter: %s",
		e.HTTPStatus, e.FailCode, e.Parameter)
}

// DecodeError reports a JSON response body that could not be parsed.
type DecodeError struct {
	HTTPStatus int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("zensend: decode response (HTTP %d): %v", e.HTTPStatus, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
