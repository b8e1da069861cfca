package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kitchenequip/internal/models"
)

func (s *Store) ListSites(ctx context.Context, ownerID uint) ([]models.Site, error) {
	var sites []models.Site
	err := s.ctx(ctx).Where("user_id = ?", ownerID).Order("description").Find(&sites).Error
	return sites, err
}

func (s *Store) GetSite(ctx context.Context, ownerID, id uint) (*models.Site, error) {
	var site models.Site
	if err := s.ctx(ctx).First(&site, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &site, nil
}

func (s *Store) CreateSite(ctx context.Context, site *models.Site) error {
	now := time.Now()
	site.CreatedAt = now
	site.UpdatedAt = now
	return s.ctx(ctx).Create(site).Error
}

func (s *Store) UpdateSite(ctx context.Context, site *models.Site) error {
	site.UpdatedAt = time.Now()
	return s.ctx(ctx).Save(site).Error
}

// DeleteSite removes the site and every assignment row pointing at it, in
// one transaction. The equipment records themselves are left alone.
func (s *Store) DeleteSite(ctx context.Context, ownerID, id uint) error {
	return s.ctx(ctx).Transaction(func(tx *gorm.DB) error {
		var site models.Site
		if err := tx.First(&site, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
			return translate(err, nil)
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.RegisteredEquipment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Site{}, "id = ?", id).Error
	})
}
