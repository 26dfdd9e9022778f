package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
)

// ownedBy matches customers of the admin plus customers whose admin was deleted.
func ownedBy(adminID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("admin_id = ? OR admin_id IS NULL", adminID)
	}
}

func (r *GormRepo) ListCustomers(ctx context.Context, adminID uint) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.DB.WithContext(ctx).
		Scopes(ownedBy(adminID)).
		Order("name ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return translateWrite(r.DB.WithContext(ctx).Omit("Admin").Create(customer).Error)
}

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) FindCustomerByAccessCode(ctx context.Context, code string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Where("access_code = ?", code).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer refuses while orders reference the customer. The FK is
// ON DELETE RESTRICT as well; the explicit count keeps the error precise.
func (r *GormRepo) DeleteCustomer(ctx context.Context, adminID, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Scopes(ownedBy(adminID)).Where("id = ?", id).First(&customer).Error; err != nil {
			return err
		}

		var orders int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return ErrInUse
		}

		if err := tx.Delete(&customer).Error; err != nil {
			if isForeignKey(err) {
				return ErrInUse
			}
			return err
		}
		return nil
	})
}
