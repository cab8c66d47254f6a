package repository

import (
	"context"
	"errors"
	"time"

	"coworkspace/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditRepository persists status-change audit entries. Status mutations
// must leave a trail, so failures here are logged loudly instead of being
// swallowed.
type AuditRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewAuditRepository(db *gorm.DB, logger *logrus.Logger) *AuditRepository {
	return &AuditRepository{db: db, logger: logger}
}

type statusChangeModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	CorrelationID string    `gorm:"column:correlation_id;size:40"`
	AdminID       int64     `gorm:"column:admin_id;index"`
	Entity        string    `gorm:"column:entity;size:40;index"`
	EntityID      int64     `gorm:"column:entity_id;index"`
	OldStatus     string    `gorm:"column:old_status;size:20"`
	NewStatus     string    `gorm:"column:new_status;size:20"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (statusChangeModel) TableName() string { return "status_changes" }

func (r *AuditRepository) Log(ctx context.Context, entry *domain.StatusChange) error {
	if entry == nil {
		return errors.New("audit entry cannot be nil")
	}
	if entry.CorrelationID == "" {
		entry.CorrelationID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	m := statusChangeModel{
		CorrelationID: entry.CorrelationID,
		AdminID:       entry.AdminID,
		Entity:        entry.Entity,
		EntityID:      entry.EntityID,
		OldStatus:     entry.OldStatus,
		NewStatus:     entry.NewStatus,
		CreatedAt:     entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"entity":    entry.Entity,
			"entity_id": entry.EntityID,
			"admin_id":  entry.AdminID,
		}).Error("failed to write status-change audit entry")
		return err
	}

	entry.ID = m.ID
	return nil
}

func (r *AuditRepository) GetByEntity(ctx context.Context, entity string, entityID int64) ([]domain.StatusChange, error) {
	var rows []statusChangeModel
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.StatusChange, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.StatusChange{
			ID:            m.ID,
			CorrelationID: m.CorrelationID,
			AdminID:       m.AdminID,
			Entity:        m.Entity,
			EntityID:      m.EntityID,
			OldStatus:     m.OldStatus,
			NewStatus:     m.NewStatus,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}
