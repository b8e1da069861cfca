package store

import (
	"context"
	"time"

	"kitchenequip/internal/models"
)

// RecordAction appends an audit log entry. Audit failures are the caller's
// call to ignore; the data operations themselves never depend on it.
func (s *Store) RecordAction(ctx context.Context, userID *uint, action string, meta models.JSONB) error {
	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}
	return s.ctx(ctx).Create(&entry).Error
}

func (s *Store) ListActions(ctx context.Context, userID uint, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.ctx(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}

func (s *Store) ListAllActions(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.ctx(ctx).Order("created_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}
