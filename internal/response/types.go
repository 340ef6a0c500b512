package response

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/internal/service"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type SchedulerControlPayload struct {
	Message string `json:"message"`
}

type SchedulerControlResponse struct {
	Success   bool                    `json:"success"`
	Data      SchedulerControlPayload `json:"data"`
	Timestamp string                  `json:"timestamp"`
}

// ErrorResponse documents the error envelope for Swagger.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// ProviderErrorDetails carries a ZenSend rejection. Cost and new balance
// are present when the provider billed the failed call.
type ProviderErrorDetails struct {
	HTTPStatus        int              `json:"httpStatus"`
	FailCode          string           `json:"failCode,omitempty"`
	Parameter         string           `json:"parameter,omitempty"`
	CostInPence       *decimal.Decimal `json:"costInPence,omitempty" swaggertype:"string"`
	NewBalanceInPence *decimal.Decimal `json:"newBalanceInPence,omitempty" swaggertype:"string"`
}

// FromClientError converts a provider rejection into its public form.
func FromClientError(e *zensend.ClientError) ProviderErrorDetails {
	d := ProviderErrorDetails{
		HTTPStatus: e.HTTPStatus,
		FailCode:   e.FailCode,
		Parameter:  e.Parameter,
	}
	if e.CostInPence.Valid {
		v := e.CostInPence.Decimal
		d.CostInPence = &v
	}
	if e.NewBalanceInPence.Valid {
		v := e.NewBalanceInPence.Decimal
		d.NewBalanceInPence = &v
	}
	return d
}

// MessageDTO is a public-facing representation of a message
// used in API responses. It decouples the wire format from
// the domain entity and plays nicely with Swagger.
type MessageDTO struct {
	ID                  string           `json:"id"`
	Originator          string           `json:"originator"`
	Body                string           `json:"body"`
	Numbers             []string         `json:"numbers"`
	OriginatorType      string           `json:"originatorType,omitempty"`
	TimeToLiveInMinutes int              `json:"timeToLiveInMinutes,omitempty"`
	Encoding            string           `json:"encoding,omitempty"`
	Status              string           `json:"status"`
	TxGUID              string           `json:"txguid,omitempty"`
	SMSParts            int              `json:"smsParts,omitempty"`
	FailCode            string           `json:"failCode,omitempty"`
	CostInPence         *decimal.Decimal `json:"costInPence,omitempty" swaggertype:"string"`
	NewBalanceInPence   *decimal.Decimal `json:"newBalanceInPence,omitempty" swaggertype:"string"`
	SentAt              *time.Time       `json:"sentAt,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

type MessageResponse struct {
	Success   bool       `json:"success"`
	Data      MessageDTO `json:"data"`
	Timestamp string     `json:"timestamp"`
}

type SentMessagesPayload struct {
	Items []MessageDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type SentMessagesResponse struct {
	Success   bool                `json:"success"`
	Data      SentMessagesPayload `json:"data"`
	Timestamp string              `json:"timestamp"`
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// FromDomainMessage converts a domain message into its DTO.
func FromDomainMessage(m *domain.Message) MessageDTO {
	return MessageDTO{
		ID:                  m.ID.String(),
		Originator:          m.Originator,
		Body:                m.Body,
		Numbers:             m.Numbers,
		OriginatorType:      string(m.OriginatorType),
		TimeToLiveInMinutes: m.TimeToLiveInMinutes,
		Encoding:            string(m.Encoding),
		Status:              string(m.Status),
		TxGUID:              m.TxGUID,
		SMSParts:            m.SMSParts,
		FailCode:            m.FailCode,
		CostInPence:         nullable(m.CostInPence),
		NewBalanceInPence:   nullable(m.NewBalanceInPence),
		SentAt:              m.SentAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FromDomainMessages converts domain messages into DTOs
// for use in HTTP responses.
func FromDomainMessages(msgs []*domain.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = FromDomainMessage(m)
	}
	return out
}

type BalancePayload struct {
	BalanceInPence decimal.Decimal `json:"balanceInPence" swaggertype:"string"`
}

type BalanceResponse struct {
	Success   bool           `json:"success"`
	Data      BalancePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type PricesPayload struct {
	PricesInPence map[string]decimal.Decimal `json:"pricesInPence" swaggertype:"object,string"`
}

type PricesResponse struct {
	Success   bool          `json:"success"`
	Data      PricesPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type OperatorPayload struct {
	Number            string          `json:"number"`
	MCC               string          `json:"mcc"`
	MNC               string          `json:"mnc"`
	Operator          string          `json:"operator"`
	CostInPence       decimal.Decimal `json:"costInPence" swaggertype:"string"`
	NewBalanceInPence decimal.Decimal `json:"newBalanceInPence" swaggertype:"string"`
}

type OperatorResponse struct {
	Success   bool            `json:"success"`
	Data      OperatorPayload `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type SubAccountPayload struct {
	Name   string `json:"name"`
	APIKey string `json:"apiKey"`
}

type SubAccountResponse struct {
	Success   bool              `json:"success"`
	Data      SubAccountPayload `json:"data"`
	Timestamp string            `json:"timestamp"`
}

type KeywordPayload struct {
	CostInPence       decimal.Decimal `json:"costInPence" swaggertype:"string"`
	NewBalanceInPence decimal.Decimal `json:"newBalanceInPence" swaggertype:"string"`
}

type KeywordResponse struct {
	Success   bool           `json:"success"`
	Data      KeywordPayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type VerificationPayload struct {
	Session  string `json:"session"`
	Number   string `json:"number,omitempty"`
	Msisdn   string `json:"msisdn,omitempty"`
	Verified bool   `json:"verified"`
}

type VerificationResponse struct {
	Success   bool                `json:"success"`
	Data      VerificationPayload `json:"data"`
	Timestamp string              `json:"timestamp"`
}

// FromVerification converts a verification state into its public form.
func FromVerification(v *service.Verification) VerificationPayload {
	return VerificationPayload{
		Session:  v.Session,
		Number:   v.Number,
		Msisdn:   v.Msisdn,
		Verified: v.Verified(),
	}
}
