package store

import (
	"context"
	"time"

	"kitchenequip/internal/models"
)

// Assign places the equipment at the site. Both records must belong to
// ownerID. The unique index on equipment_id is the actual guard against
// double assignment; a violation surfaces as ErrEquipmentAssigned.
func (s *Store) Assign(ctx context.Context, ownerID, equipmentID, siteID uint) (*models.RegisteredEquipment, error) {
	if _, err := s.GetSite(ctx, ownerID, siteID); err != nil {
		return nil, err
	}
	if _, err := s.GetEquipment(ctx, ownerID, equipmentID); err != nil {
		return nil, err
	}
	re := models.RegisteredEquipment{
		EquipmentID:    equipmentID,
		SiteID:         siteID,
		RegisteredDate: time.Now(),
	}
	if err := translate(s.ctx(ctx).Create(&re).Error, ErrEquipmentAssigned); err != nil {
		return nil, err
	}
	return &re, nil
}

// Unassign removes the equipment from the site.
func (s *Store) Unassign(ctx context.Context, ownerID, equipmentID, siteID uint) error {
	if _, err := s.GetSite(ctx, ownerID, siteID); err != nil {
		return err
	}
	res := s.ctx(ctx).
		Where("equipment_id = ? AND site_id = ?", equipmentID, siteID).
		Delete(&models.RegisteredEquipment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SiteEquipment lists the equipment currently assigned to the site.
func (s *Store) SiteEquipment(ctx context.Context, ownerID, siteID uint) ([]models.Equipment, error) {
	if _, err := s.GetSite(ctx, ownerID, siteID); err != nil {
		return nil, err
	}
	var eq []models.Equipment
	err := s.ctx(ctx).
		Joins("JOIN registered_equipment re ON re.equipment_id = equipment.id").
		Where("re.site_id = ?", siteID).
		Order("equipment.description").
		Find(&eq).Error
	return eq, err
}

// CurrentSite returns the site an equipment record is assigned to, or nil
// when unassigned. Finding more than one assignment row means the unique
// index has been bypassed somehow, and is reported instead of silently
// taking the first row.
func (s *Store) CurrentSite(ctx context.Context, equipmentID uint) (*models.Site, error) {
	var rows []models.RegisteredEquipment
	if err := s.ctx(ctx).Where("equipment_id = ?", equipmentID).Find(&rows).Error; err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		var site models.Site
		if err := s.ctx(ctx).First(&site, "id = ?", rows[0].SiteID).Error; err != nil {
			return nil, translate(err, nil)
		}
		return &site, nil
	default:
		return nil, ErrAssignmentInvariant
	}
}

// SiteSummary is one row of the owner overview.
type SiteSummary struct {
	models.Site
	EquipmentCount int64 `json:"equipment_count"`
	WorkingCount   int64 `json:"working_count"`
}

// Overview aggregates the owner's sites with assignment counts plus the
// equipment not assigned anywhere.
type Overview struct {
	Sites      []SiteSummary      `json:"sites"`
	Unassigned []models.Equipment `json:"unassigned_equipment"`
}

func (s *Store) OwnerOverview(ctx context.Context, ownerID uint) (*Overview, error) {
	sites, err := s.ListSites(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ov := &Overview{Sites: make([]SiteSummary, 0, len(sites))}
	for _, site := range sites {
		var total, working int64
		err := s.ctx(ctx).Model(&models.RegisteredEquipment{}).
			Where("site_id = ?", site.ID).Count(&total).Error
		if err != nil {
			return nil, err
		}
		err = s.ctx(ctx).Model(&models.Equipment{}).
			Joins("JOIN registered_equipment re ON re.equipment_id = equipment.id").
			Where("re.site_id = ? AND equipment.condition = ?", site.ID, models.ConditionWorking).
			Count(&working).Error
		if err != nil {
			return nil, err
		}
		ov.Sites = append(ov.Sites, SiteSummary{Site: site, EquipmentCount: total, WorkingCount: working})
	}
	ov.Unassigned, err = s.UnassignedEquipment(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ov, nil
}
