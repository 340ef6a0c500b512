package messagegorm

import (
	"strings"

	"github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

// toDomain maps a GORM MessageModel to a domain-level Message.
func toDomain(m *MessageModel) *message.Message {
	var numbers []string
	if m.Numbers != "" {
		numbers = strings.Split(m.Numbers, ",")
	}

	return &message.Message{
		ID:                  m.ID,
		Originator:          m.Originator,
		Body:                m.Body,
		Numbers:             numbers,
		OriginatorType:      zensend.OriginatorType(m.OriginatorType),
		TimeToLiveInMinutes: m.TimeToLiveInMinutes,
		Encoding:            zensend.SMSEncoding(m.Encoding),
		Status:              message.Status(m.Status),
		TxGUID:              m.TxGUID,
		SMSParts:            m.SMSParts,
		FailCode:            m.FailCode,
		FailParameter:       m.FailParameter,
		CostInPence:         m.CostInPence,
		NewBalanceInPence:   m.NewBalanceInPence,
		SentAt:              m.SentAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// toDomainMany maps a slice of MessageModel to a slice of domain Messages.
func toDomainMany(models []MessageModel) []*message.Message {
	out := make([]*message.Message, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

// fromDomain maps a domain-level Message to a GORM MessageModel.
// Numbers never contain commas (enforced by the domain), so joining is lossless.
func fromDomain(d *message.Message) *MessageModel {
	return &MessageModel{
		ID:                  d.ID,
		Originator:          d.Originator,
		Body:                d.Body,
		Numbers:             strings.Join(d.Numbers, ","),
		OriginatorType:      string(d.OriginatorType),
		TimeToLiveInMinutes: d.TimeToLiveInMinutes,
		Encoding:            string(d.Encoding),
		Status:              string(d.Status),
		TxGUID:              d.TxGUID,
		SMSParts:            d.SMSParts,
		FailCode:            d.FailCode,
		FailParameter:       d.FailParameter,
		CostInPence:         d.CostInPence,
		NewBalanceInPence:   d.NewBalanceInPence,
		SentAt:              d.SentAt,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
