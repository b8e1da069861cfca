package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"kitchenequip/internal/auth"
	"kitchenequip/internal/models"
)

// Register hashes the password and persists the user. Username and email
// are lowercased before the uniqueness check so that identities differing
// only in letter case collide.
func (s *Store) Register(ctx context.Context, u *models.User, password string) error {
	u.UserName = strings.ToLower(strings.TrimSpace(u.UserName))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	var count int64
	err := s.ctx(ctx).Model(&models.User{}).
		Where("user_name = ? OR email = ?", u.UserName, u.Email).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateIdentity
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return translate(s.ctx(ctx).Create(u).Error, ErrDuplicateIdentity)
}

// Authenticate looks the user up by username (case-insensitive) and
// verifies the password. Every failure mode maps to ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := s.ctx(ctx).First(&u, "user_name = ?", strings.ToLower(strings.TrimSpace(username))).Error
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *Store) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.ctx(ctx).Model(&models.User{}).
		Where("user_name = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error
	return count == 0, err
}

func (s *Store) EmailAvailable(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.ctx(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count == 0, err
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.ctx(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.ctx(ctx).Order("first_name, last_name").Find(&users).Error
	return users, err
}

// UpdateUser saves an edited user, re-checking identity uniqueness against
// everyone else.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	u.UserName = strings.ToLower(strings.TrimSpace(u.UserName))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	var count int64
	err := s.ctx(ctx).Model(&models.User{}).
		Where("(user_name = ? OR email = ?) AND id <> ?", u.UserName, u.Email, u.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateIdentity
	}
	u.UpdatedAt = time.Now()
	return translate(s.ctx(ctx).Save(u).Error, ErrDuplicateIdentity)
}

// DeleteUser removes the user together with every site and equipment record
// it owns, plus all assignment rows referencing any of them and any live
// sessions. One transaction, so no partial state survives a failure.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.ctx(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			return translate(err, nil)
		}

		var siteIDs []uint
		if err := tx.Model(&models.Site{}).Where("user_id = ?", id).Pluck("id", &siteIDs).Error; err != nil {
			return err
		}
		var equipmentIDs []uint
		if err := tx.Model(&models.Equipment{}).Where("user_id = ?", id).Pluck("id", &equipmentIDs).Error; err != nil {
			return err
		}

		if len(siteIDs) > 0 {
			if err := tx.Where("site_id IN ?", siteIDs).Delete(&models.RegisteredEquipment{}).Error; err != nil {
				return err
			}
		}
		if len(equipmentIDs) > 0 {
			if err := tx.Where("equipment_id IN ?", equipmentIDs).Delete(&models.RegisteredEquipment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Equipment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Site{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
