package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"kitchenequip/internal/models"
)

func (s *Store) ListEquipment(ctx context.Context, ownerID uint) ([]models.Equipment, error) {
	var eq []models.Equipment
	err := s.ctx(ctx).Where("user_id = ?", ownerID).Order("description").Find(&eq).Error
	return eq, err
}

func (s *Store) GetEquipment(ctx context.Context, ownerID, id uint) (*models.Equipment, error) {
	var eq models.Equipment
	if err := s.ctx(ctx).First(&eq, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &eq, nil
}

func (s *Store) CreateEquipment(ctx context.Context, eq *models.Equipment) error {
	eq.SerialNumber = strings.TrimSpace(eq.SerialNumber)
	now := time.Now()
	eq.CreatedAt = now
	eq.UpdatedAt = now
	return translate(s.ctx(ctx).Create(eq).Error, ErrDuplicateSerial)
}

func (s *Store) UpdateEquipment(ctx context.Context, eq *models.Equipment) error {
	eq.SerialNumber = strings.TrimSpace(eq.SerialNumber)
	var count int64
	err := s.ctx(ctx).Model(&models.Equipment{}).
		Where("serial_number = ? AND id <> ?", eq.SerialNumber, eq.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSerial
	}
	eq.UpdatedAt = time.Now()
	return translate(s.ctx(ctx).Save(eq).Error, ErrDuplicateSerial)
}

// DeleteEquipment removes the equipment record and its assignment row, if
// any, in one transaction.
func (s *Store) DeleteEquipment(ctx context.Context, ownerID, id uint) error {
	return s.ctx(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := tx.First(&eq, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
			return translate(err, nil)
		}
		if err := tx.Where("equipment_id = ?", id).Delete(&models.RegisteredEquipment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Equipment{}, "id = ?", id).Error
	})
}

// UnassignedEquipment lists the owner's equipment with no assignment row.
func (s *Store) UnassignedEquipment(ctx context.Context, ownerID uint) ([]models.Equipment, error) {
	var eq []models.Equipment
	err := s.ctx(ctx).
		Where("user_id = ?", ownerID).
		Where("id NOT IN (?)", s.db.Model(&models.RegisteredEquipment{}).Select("equipment_id")).
		Order("description").
		Find(&eq).Error
	return eq, err
}
