package messagegorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/oggyb/zensend-gateway/internal/db"
	"github.com/oggyb/zensend-gateway/internal/domain/message"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is a GORM-backed implementation of the message.Repository interface.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a message repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// ClaimPending selects up to limit pending messages ordered by creation time
// and marks them SENDING in the same transaction. The row locks taken by
// FOR UPDATE SKIP LOCKED are held until the status change commits, so
// concurrent processes skip rows another one has already claimed.
func (r *Repository) ClaimPending(ctx context.Context, limit int) ([]*message.Message, error) {
	var models []MessageModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("status = ?", message.StatusPending).
			Order("created_at ASC").
			Limit(limit).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Find(&models).Error
		if err != nil || len(models) == 0 {
			return err
		}

		ids := make([]uuid.UUID, len(models))
		for i := range models {
			ids[i] = models[i].ID
		}

		return tx.Model(&MessageModel{}).
			Where("id IN ?", ids).
			Update("status", string(message.StatusSending)).Error
	})
	if err != nil {
		return nil, err
	}

	claimed := toDomainMany(models)
	for _, m := range claimed {
		m.Claim()
	}
	return claimed, nil
}

// GetSent returns a paginated list of successfully sent messages and the total count.
func (r *Repository) GetSent(ctx context.Context, page, limit int) ([]*message.Message, int64, error) {
	var models []MessageModel
	var total int64

	query := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Where("status = ?", message.StatusSuccess)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	err := query.
		Order("sent_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// UpdateStatus persists the current status and provider outcome of a message.
func (r *Repository) UpdateStatus(ctx context.Context, m *message.Message) error {
	updates := map[string]interface{}{
		"status":               string(m.Status),
		"tx_guid":              m.TxGUID,
		"sms_parts":            m.SMSParts,
		"fail_code":            m.FailCode,
		"fail_parameter":       m.FailParameter,
		"cost_in_pence":        m.CostInPence,
		"new_balance_in_pence": m.NewBalanceInPence,
		"sent_at":              m.SentAt,
	}

	return r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Where("id = ?", m.ID).
		Updates(updates).Error
}

// Save inserts a new message record into the database.
func (r *Repository) Save(ctx context.Context, msg *message.Message) error {
	dbModel := fromDomain(msg)
	return r.db.WithContext(ctx).Create(dbModel).Error
}

// compile-time interface check
var _ message.Repository = (*Repository)(nil)
