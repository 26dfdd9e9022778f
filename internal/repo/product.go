package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var items []models.Product
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) FindProductByCode(ctx context.Context, code string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return translateWrite(r.DB.WithContext(ctx).Create(prod).Error)
}

// UpdateProduct writes every column, zero values included.
func (r *GormRepo) UpdateProduct(ctx context.Context, prod *models.Product) error {
	return translateWrite(r.DB.WithContext(ctx).Save(prod).Error)
}

// DeleteProduct leaves order items in place; their product_id becomes NULL
// through the ON DELETE SET NULL constraint.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SearchActiveProducts(ctx context.Context, term string, limit int) ([]models.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"

	items := make([]models.Product, 0, limit)
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("active = ?", true).
		Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
