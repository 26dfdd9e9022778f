package repo

import (
	"context"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suagrafica/portal/internal/models"
)

func (r *GormRepo) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.DB.WithContext(ctx).Order("username ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Admin{}).
			Where("LOWER(username) = LOWER(?)", admin.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return translateWrite(tx.Create(admin).Error)
	})
}

func (r *GormRepo) FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// DeleteAdmin locks the admin rows so two concurrent deletes cannot remove
// the last two admins at once.
func (r *GormRepo) DeleteAdmin(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Admin{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if !slices.Contains(ids, id) {
			return gorm.ErrRecordNotFound
		}
		if len(ids) <= 1 {
			return ErrLastAdmin
		}
		return tx.Delete(&models.Admin{}, id).Error
	})
}
