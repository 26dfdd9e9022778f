package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suagrafica/portal/internal/models"
)

// CreateOrder inserts the order and its items in one transaction. Any item
// failure rolls the order row back as well.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Select("id").First(&customer, order.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissingReference
			}
			return err
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return translateWrite(err)
		}
		if len(order.Items) == 0 {
			return nil
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&order.Items).Error; err != nil {
			return translateWrite(err)
		}
		return nil
	})
}

func (r *GormRepo) ListCustomerOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListAllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	var out []models.OrderSummary
	if err := r.DB.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.customer_id, COALESCE(customers.name, '') AS customer_name, " +
			"orders.total_value, orders.status, orders.payment_link, orders.created_at").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
		Order("orders.created_at DESC, orders.id DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrderDetail loads an order with its lines. A non-zero customerID
// restricts the lookup to that customer's orders.
func (r *GormRepo) GetOrderDetail(ctx context.Context, orderID, customerID uint) (*models.OrderDetail, error) {
	db := r.DB.WithContext(ctx)

	q := db.Where("id = ?", orderID)
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var order models.Order
	if err := q.First(&order).Error; err != nil {
		return nil, err
	}

	var names []string
	if err := db.Model(&models.Customer{}).Where("id = ?", order.CustomerID).Pluck("name", &names).Error; err != nil {
		return nil, err
	}

	lines := make([]models.OrderLine, 0)
	if err := db.Table("order_items AS oi").
		Select("oi.id, oi.product_id, p.code AS product_code, p.name AS product_name, oi.quantity, oi.unit_price").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id ASC").
		Scan(&lines).Error; err != nil {
		return nil, err
	}

	detail := &models.OrderDetail{Order: order, Lines: lines}
	if len(names) > 0 {
		detail.CustomerName = names[0]
	}
	return detail, nil
}

// OrderFields are the admin-editable columns. UpdateOrder overwrites all of
// them; a nil PaymentLink clears the link.
type OrderFields struct {
	Status      models.OrderStatus
	PaymentLink *string
	TotalValue  models.Money
}

func (r *GormRepo) UpdateOrder(ctx context.Context, id uint, f OrderFields) (*models.Order, error) {
	return r.updateOrder(ctx, id, map[string]any{
		"status":       f.Status,
		"payment_link": f.PaymentLink,
		"total_value":  f.TotalValue,
	})
}

// SetPaymentLink stores the link and moves the order to status in one write.
func (r *GormRepo) SetPaymentLink(ctx context.Context, id uint, link string, status models.OrderStatus) (*models.Order, error) {
	return r.updateOrder(ctx, id, map[string]any{
		"status":       status,
		"payment_link": link,
	})
}

func (r *GormRepo) updateOrder(ctx context.Context, id uint, fields map[string]any) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&order, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.Customer{}).
		Where("status = ?", models.CustomerActive).
		Count(&stats.ActiveCustomers).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Product{}).
		Where("active = ?", true).
		Count(&stats.ActiveProducts).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusAwaitingApproval).
		Count(&stats.PendingOrders).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
