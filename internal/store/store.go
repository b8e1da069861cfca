// Package store is the data layer: GORM entities plus the consistency
// rules around equipment-to-site assignment. Assignment rows have no FK
// cascade, so every delete of a user, site, or equipment record runs in a
// transaction that removes the dependent assignment rows first.
package store

import (
	"context"

	"gorm.io/gorm"

	"kitchenequip/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for the auth middleware's session lookup.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Site{},
		&models.Equipment{},
		&models.RegisteredEquipment{},
		&models.Session{},
		&models.AuditLog{},
	)
}

func (s *Store) ctx(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}
