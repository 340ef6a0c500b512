// Package message holds the domain model and invariants for outbound SMS messages.
package message

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

const (
	// MaxNumbers is the maximum number of recipients accepted for one message.
	MaxNumbers = 100
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSending Status = "SENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

var (
	// ErrEmptyOriginator is returned when no sender identity is provided.
	ErrEmptyOriginator = errors.New("originator is required")
	// ErrEmptyBody is returned when the message body is empty.
	ErrEmptyBody = errors.New("message body is required")
	// ErrNoRecipients is returned when the number list is empty.
	ErrNoRecipients = errors.New("at least one recipient number is required")
	// ErrTooManyRecipients is returned when more than MaxNumbers numbers are given.
	ErrTooManyRecipients = errors.New("too many recipient numbers")
	// ErrInvalidNumber is returned for blank numbers or numbers containing a comma.
	ErrInvalidNumber = errors.New("recipient number must be non-empty and contain no commas")
	// ErrInvalidOption is returned for an unknown originator type or encoding, or a negative TTL.
	ErrInvalidOption = errors.New("invalid message option")
)

// Draft is the caller-supplied content of a new message.
type Draft struct {
	Originator          string
	Body                string
	Numbers             []string
	OriginatorType      string
	TimeToLiveInMinutes int
	Encoding            string
}

// Message is an outbound SMS together with the outcome of sending it.
type Message struct {
	ID                  uuid.UUID
	Originator          string
	Body                string
	Numbers             []string
	OriginatorType      zensend.OriginatorType
	TimeToLiveInMinutes int
	Encoding            zensend.SMSEncoding

	Status   Status
	TxGUID   string
	SMSParts int

	// Set when the provider rejected the message.
	FailCode      string
	FailParameter string

	// Billing reported by the provider, on success and on billed failures.
	CostInPence       decimal.NullDecimal
	NewBalanceInPence decimal.NullDecimal

	SentAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMessage constructs a pending Message and enforces the domain rules.
func NewMessage(d Draft) (*Message, error) {
	originator := strings.TrimSpace(d.Originator)
	body := strings.TrimSpace(d.Body)

	if originator == "" {
		return nil, ErrEmptyOriginator
	}
	if body == "" {
		return nil, ErrEmptyBody
	}
	if len(d.Numbers) == 0 {
		return nil, ErrNoRecipients
	}
	if len(d.Numbers) > MaxNumbers {
		return nil, ErrTooManyRecipients
	}

	numbers := make([]string, len(d.Numbers))
	for i, n := range d.Numbers {
		n = strings.TrimSpace(n)
		if n == "" || strings.Contains(n, ",") {
			return nil, ErrInvalidNumber
		}
		numbers[i] = n
	}

	ot, err := parseOriginatorType(d.OriginatorType)
	if err != nil {
		return nil, err
	}
	enc, err := parseEncoding(d.Encoding)
	if err != nil {
		return nil, err
	}
	if d.TimeToLiveInMinutes < 0 {
		return nil, ErrInvalidOption
	}

	return &Message{
		ID:                  uuid.New(),
		Originator:          originator,
		Body:                body,
		Numbers:             numbers,
		OriginatorType:      ot,
		TimeToLiveInMinutes: d.TimeToLiveInMinutes,
		Encoding:            enc,
		Status:              StatusPending,
		CreatedAt:           time.Now(),
	}, nil
}

func parseOriginatorType(v string) (zensend.OriginatorType, error) {
	switch t := zensend.OriginatorType(strings.ToUpper(strings.TrimSpace(v))); t {
	case "", zensend.OriginatorAlpha, zensend.OriginatorMSISDN:
		return t, nil
	default:
		return "", ErrInvalidOption
	}
}

func parseEncoding(v string) (zensend.SMSEncoding, error) {
	switch e := zensend.SMSEncoding(strings.ToUpper(strings.TrimSpace(v))); e {
	case "", zensend.EncodingGSM, zensend.EncodingUCS2:
		return e, nil
	default:
		return "", ErrInvalidOption
	}
}

// SMS returns the provider request for this message.
func (m *Message) SMS() zensend.Message {
	return zensend.Message{
		Originator:          m.Originator,
		Body:                m.Body,
		Numbers:             m.Numbers,
		OriginatorType:      m.OriginatorType,
		TimeToLiveInMinutes: m.TimeToLiveInMinutes,
		SMSEncoding:         m.Encoding,
	}
}

// Claim marks a pending message as taken by a sender. A claimed message is
// never picked up again, so it is sent at most once.
func (m *Message) Claim() {
	m.Status = StatusSending
}

// Release returns a claimed message that was never sent to the pending queue.
func (m *Message) Release() {
	if m.Status == StatusSending {
		m.Status = StatusPending
	}
}

// MarkSent marks the message as successfully sent and records provider metadata.
func (m *Message) MarkSent(res *zensend.SMSResult) {
	now := time.Now()
	m.SentAt = &now
	m.Status = StatusSuccess
	m.TxGUID = res.TxGUID
	m.SMSParts = res.SMSParts
	m.FailCode = ""
	m.FailParameter = ""
	m.CostInPence = decimal.NewNullDecimal(res.CostInPence)
	m.NewBalanceInPence = decimal.NewNullDecimal(res.NewBalanceInPence)
}

// MarkFailed marks the message as failed. When err is a provider rejection its
// fail code, parameter and any billed amounts are kept on the message.
func (m *Message) MarkFailed(err error) {
	m.Status = StatusFailed

	var ce *zensend.ClientError
	if errors.As(err, &ce) {
		m.FailCode = ce.FailCode
		m.FailParameter = ce.Parameter
		m.CostInPence = ce.CostInPence
		m.NewBalanceInPence = ce.NewBalanceInPence
		return
	}

	m.FailCode = ""
	m.FailParameter = ""
}

// IsValidationError reports whether err was caused by an invalid draft.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyOriginator,
		ErrEmptyBody,
		ErrNoRecipients,
		ErrTooManyRecipients,
		ErrInvalidNumber,
		ErrInvalidOption,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
