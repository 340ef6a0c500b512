package messagegorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MessageModel is the GORM persistence model for outbound messages.
// It maps directly to the "messages" table in Postgres.
type MessageModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Originator          string    `gorm:"size:20;not null"`
	Body                string    `gorm:"type:text;not null"`
	Numbers             string    `gorm:"type:text;not null"` // comma-joined
	OriginatorType      string    `gorm:"size:10"`
	TimeToLiveInMinutes int
	Encoding            string `gorm:"size:10"`

	Status        string `gorm:"size:20;not null;index"`
	TxGUID        string `gorm:"column:tx_guid;size:100;index"`
	SMSParts      int    `gorm:"column:sms_parts"`
	FailCode      string `gorm:"size:64"`
	FailParameter string `gorm:"size:64"`

	CostInPence       decimal.NullDecimal `gorm:"type:numeric(14,4)"`
	NewBalanceInPence decimal.NullDecimal `gorm:"type:numeric(14,4)"`

	SentAt    *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null;index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name used by GORM.
func (MessageModel) TableName() string {
	return "messages"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
