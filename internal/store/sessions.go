package store

import (
	"context"
	"time"

	"kitchenequip/internal/models"
)

func (s *Store) CreateSession(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	sess := models.Session{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	return s.ctx(ctx).Create(&sess).Error
}

// RevokeSession marks the session dead. Revoking an unknown jti is a no-op.
func (s *Store) RevokeSession(ctx context.Context, jti string) error {
	now := time.Now()
	return s.ctx(ctx).Model(&models.Session{}).
		Where("jti = ?", jti).
		Update("revoked_at", &now).Error
}
