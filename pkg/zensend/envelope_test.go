package zensend

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func response(status int, contentType, body string) *http.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecode_SuccessWinsOverFailure(t *testing.T) {
	resp := response(http.StatusOK, "application/json",
		`{"success":{"balance":12.5},"failure":{"failcode":"IGNORED"}}`)

	got, err := decode[Balance](resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Balance.String() != "12.5" {
		t.Fatalf("unexpected balance %s", got.Balance)
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	resp := response(http.StatusOK, "application/json",
		`{"version":3,"success":{"name":"n","api_key":"k","created":"2024-01-01","limits":{"daily":10}}}`)

	got, err := decode[CreateSubAccountResult](resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "n" || got.APIKey != "k" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestDecode_FailureCarriesAllFields(t *testing.T) {
	resp := response(http.StatusBadRequest, "application/json",
		`{"failure":{"failcode":"INVALID_PARAMETER","parameter":"NUMBERS","cost_in_pence":1.5,"new_balance_in_pence":98.5,"extra":true}}`)

	_, err := decode[SMSResult](resp)

	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ClientError, got %v", err)
	}
	if ce.HTTPStatus != http.StatusBadRequest || ce.FailCode != "INVALID_PARAMETER" || ce.Parameter != "NUMBERS" {
		t.Fatalf("unexpected error %+v", ce)
	}
	if ce.CostInPence.Decimal.String() != "1.5" || ce.NewBalanceInPence.Decimal.String() != "98.5" {
		t.Fatalf("unexpected billing %+v / %+v", ce.CostInPence, ce.NewBalanceInPence)
	}
}

func TestDecode_NeitherBranchIsStatusOnly(t *testing.T) {
	for _, body := range []string{`{}`, `{"success":null}`, `{"other":1}`} {
		_, err := decode[Balance](response(http.StatusBadGateway, "application/json", body))

		var ce *ClientError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected *ClientError, got %v", body, err)
		}
		if ce.HTTPStatus != http.StatusBadGateway || ce.FailCode != "" || ce.CostInPence.Valid {
			t.Fatalf("%s: expected status-only error, got %+v", body, ce)
		}
	}
}

func TestDecode_ContentTypeMustMatchExactly(t *testing.T) {
	cases := []string{"", "text/html", "application/json; charset=utf-8", "text/plain"}

	for _, ct := range cases {
		// A perfectly valid success body is ignored when the content type is off.
		_, err := decode[Balance](response(http.StatusOK, ct, `{"success":{"balance":1}}`))

		var ce *ClientError
		if !errors.As(err, &ce) {
			t.Fatalf("content type %q: expected *ClientError, got %v", ct, err)
		}
		if ce.HTTPStatus != http.StatusOK || ce.FailCode != "" {
			t.Fatalf("content type %q: expected status-only error, got %+v", ct, ce)
		}
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := decode[Balance](response(http.StatusOK, "application/json", `<html>`))

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if de.HTTPStatus != http.StatusOK {
		t.Fatalf("unexpected status %d", de.HTTPStatus)
	}
}

func TestClientError_Message(t *testing.T) {
	e := &ClientError{HTTPStatus: 403, FailCode: "NOT_AUTHORIZED"}
	want := "zensend: HTTP Code: 403. Fail Code: NOT_AUTHORIZED. Parameter: "
	if e.Error() != want {
		t.Fatalf("got %q, want %q", e.Error(), want)
	}
}
