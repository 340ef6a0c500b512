package message

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

func validDraft() Draft {
	return Draft{
		Originator: " ZenSend ",
		Body:       " hello ",
		Numbers:    []string{" 447700900001", "447700900002"},
	}
}

func TestNewMessage_Valid(t *testing.T) {
	d := validDraft()
	d.OriginatorType = "alpha"
	d.Encoding = "ucs2"
	d.TimeToLiveInMinutes = 30

	m, err := NewMessage(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", m.Status)
	}
	if m.Originator != "ZenSend" || m.Body != "hello" || m.Numbers[0] != "447700900001" {
		t.Fatalf("expected trimmed fields, got %+v", m)
	}
	if m.OriginatorType != zensend.OriginatorAlpha || m.Encoding != zensend.EncodingUCS2 {
		t.Fatalf("unexpected options %s %s", m.OriginatorType, m.Encoding)
	}

	sms := m.SMS()
	if sms.TimeToLiveInMinutes != 30 || len(sms.Numbers) != 2 {
		t.Fatalf("unexpected provider message %+v", sms)
	}
}

func TestNewMessage_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{"no originator", func(d *Draft) { d.Originator = " " }, ErrEmptyOriginator},
		{"no body", func(d *Draft) { d.Body = "" }, ErrEmptyBody},
		{"no numbers", func(d *Draft) { d.Numbers = nil }, ErrNoRecipients},
		{"comma in number", func(d *Draft) { d.Numbers = []string{"4478,7878787"} }, ErrInvalidNumber},
		{"blank number", func(d *Draft) { d.Numbers = []string{"1", " "} }, ErrInvalidNumber},
		{"bad originator type", func(d *Draft) { d.OriginatorType = "shortcode" }, ErrInvalidOption},
		{"bad encoding", func(d *Draft) { d.Encoding = "utf8" }, ErrInvalidOption},
		{"negative ttl", func(d *Draft) { d.TimeToLiveInMinutes = -1 }, ErrInvalidOption},
		{"too many numbers", func(d *Draft) {
			d.Numbers = make([]string, MaxNumbers+1)
			for i := range d.Numbers {
				d.Numbers[i] = fmt.Sprintf("44770090%04d", i)
			}
		}, ErrTooManyRecipients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			if _, err := NewMessage(d); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMarkSent(t *testing.T) {
	m, _ := NewMessage(validDraft())

	m.MarkSent(&zensend.SMSResult{
		TxGUID:            "tx-1",
		SMSParts:          2,
		CostInPence:       decimal.RequireFromString("0.08"),
		NewBalanceInPence: decimal.RequireFromString("3985.8"),
	})

	if m.Status != StatusSuccess || m.TxGUID != "tx-1" || m.SMSParts != 2 || m.SentAt == nil {
		t.Fatalf("unexpected state %+v", m)
	}
	if !m.CostInPence.Valid || m.CostInPence.Decimal.String() != "0.08" {
		t.Fatalf("unexpected cost %+v", m.CostInPence)
	}
}

func TestMarkFailed_KeepsProviderBilling(t *testing.T) {
	m, _ := NewMessage(validDraft())

	err := fmt.Errorf("send: %w", &zensend.ClientError{
		HTTPStatus:        503,
		FailCode:          "SYSTEM_FAILURE",
		Parameter:         "NUMBERS",
		CostInPence:       decimal.NewNullDecimal(decimal.RequireFromString("15")),
		NewBalanceInPence: decimal.NewNullDecimal(decimal.RequireFromString("4046")),
	})
	m.MarkFailed(err)

	if m.Status != StatusFailed || m.FailCode != "SYSTEM_FAILURE" || m.FailParameter != "NUMBERS" {
		t.Fatalf("unexpected state %+v", m)
	}
	if !m.CostInPence.Valid || !m.NewBalanceInPence.Valid {
		t.Fatalf("expected billed amounts to be kept")
	}
}

func TestMarkFailed_TransportError(t *testing.T) {
	m, _ := NewMessage(validDraft())

	m.MarkFailed(errors.New("dial tcp: connection refused"))

	if m.Status != StatusFailed || m.FailCode != "" || m.CostInPence.Valid {
		t.Fatalf("unexpected state %+v", m)
	}
}

func TestClaimAndRelease(t *testing.T) {
	m, _ := NewMessage(validDraft())

	m.Claim()
	if m.Status != StatusSending {
		t.Fatalf("expected SENDING, got %s", m.Status)
	}
	m.Release()
	if m.Status != StatusPending {
		t.Fatalf("expected PENDING after release, got %s", m.Status)
	}

	m.Claim()
	m.MarkFailed(errors.New("boom"))
	m.Release()
	if m.Status != StatusFailed {
		t.Fatalf("release must not reopen a finished message, got %s", m.Status)
	}
}

func TestIsValidationError(t *testing.T) {
	_, err := NewMessage(Draft{Originator: "orig", Body: "b"})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if IsValidationError(errors.New("db down")) {
		t.Fatalf("unexpected validation error")
	}
}
