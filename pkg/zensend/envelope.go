package zensend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

const contentTypeJSON = "application/json"

// envelope is the provider's response wrapper. Exactly one branch is expected.
type envelope[T any] struct {
	Success *T             `json:"success"`
	Failure *providerError `json:"failure"`
}

type providerError struct {
	FailCode          string              `json:"failcode"`
	Parameter         string              `json:"parameter"`
	CostInPence       decimal.NullDecimal `json:"cost_in_pence"`
	NewBalanceInPence decimal.NullDecimal `json:"new_balance_in_pence"`
}

// decode turns a provider response into its success payload or an error.
// The caller still owns resp.Body and must close it.
func decode[T any](resp *http.Response) (*T, error) {
	if resp.Header.Get("Content-Type") != contentTypeJSON {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ClientError{HTTPStatus: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zensend: read response: %w", err)
	}

	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{HTTPStatus: resp.StatusCode, Err: err}
	}

	if env.Success != nil {
		return env.Success, nil
	}

	return nil, newClientError(resp.StatusCode, env.Failure)
}

func newClientError(status int, f *providerError) *ClientError {
	if f == nil {
		return &ClientError{HTTPStatus: status}
	}
	return &ClientError{
		HTTPStatus:        status,
		FailCode:          f.FailCode,
		Parameter:         f.Parameter,
		CostInPence:       f.CostInPence,
		NewBalanceInPence: f.NewBalanceInPence,
	}
}
