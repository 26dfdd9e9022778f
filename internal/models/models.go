package models

import (
	"time"
)

type Admin struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Username   string    `gorm:"size:255;unique;not null"  json:"username"`
	SecretHash string    `gorm:"size:256;not null"          json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime"             json:"created_at"`
}

type Customer struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"               json:"id"`
	AdminID    *uint          `gorm:"index"                                  json:"admin_id"`
	Admin      *Admin         `gorm:"constraint:OnDelete:SET NULL"            json:"-"`
	Name       string         `gorm:"size:255;not null"                      json:"name"`
	TaxID      *string        `gorm:"size:18;uniqueIndex"                    json:"tax_id"`
	Email      string         `gorm:"size:255"                               json:"email"`
	AccessCode string         `gorm:"size:50;uniqueIndex;not null"           json:"access_code"`
	Status     CustomerStatus `gorm:"size:20;not null;default:'Active'"      json:"status"`
}

type Product struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"           json:"id"`
	Code          string `gorm:"size:50;uniqueIndex;not null"       json:"code"`
	Name          string `gorm:"size:255;not null"                  json:"name"`
	Description   string `gorm:"type:text"                          json:"description"`
	MinPrice      Money  `gorm:"type:numeric(10,2);not null"        json:"min_price"`
	OrderMultiple int    `gorm:"not null;default:1"                 json:"order_multiple"`
	InStock       bool   `gorm:"not null"                           json:"in_stock"`
	ImageURL      string `gorm:"size:255"                           json:"image_url"`
	Active        bool   `gorm:"not null"                           json:"active"`
}

type Order struct {
	ID             uint        `gorm:"primaryKey;autoIncrement"             json:"id"`
	CustomerID     uint        `gorm:"index;not null"                       json:"customer_id"`
	Customer       *Customer   `gorm:"constraint:OnDelete:RESTRICT"          json:"-"`
	TotalValue     Money       `gorm:"type:numeric(10,2);not null"          json:"total_value"`
	Status         OrderStatus `gorm:"size:50;not null"                     json:"status"`
	PaymentLink    *string     `gorm:"size:255"                             json:"payment_link"`
	ProofOfPayment *string     `gorm:"size:255"                             json:"proof_of_payment"`
	CreatedAt      time.Time   `gorm:"autoCreateTime;index"                 json:"created_at"`
	Items          []OrderItem `gorm:"constraint:OnDelete:CASCADE"           json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"         json:"id"`
	OrderID   uint     `gorm:"index;not null"                   json:"order_id"`
	ProductID *uint    `gorm:"index"                            json:"product_id"`
	Product   *Product `gorm:"constraint:OnDelete:SET NULL"      json:"-"`
	Quantity  int      `gorm:"not null;check:quantity > 0"      json:"quantity"`
	UnitPrice Money    `gorm:"type:numeric(10,2);not null"      json:"unit_price"`
}

// OrderSummary is an order row joined with its customer's display name.
type OrderSummary struct {
	ID           uint        `json:"id"`
	CustomerID   uint        `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	TotalValue   Money       `json:"total_value"`
	Status       OrderStatus `json:"status"`
	PaymentLink  *string     `json:"payment_link"`
	CreatedAt    time.Time   `json:"created_at"`
}

// OrderLine is an order item with the product's current name and code.
// Both are nil once the product has been deleted.
type OrderLine struct {
	ID          uint    `json:"id"`
	ProductID   *uint   `json:"product_id"`
	ProductCode *string `json:"product_code"`
	ProductName *string `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   Money   `json:"unit_price"`
}

type OrderDetail struct {
	Order
	CustomerName string      `json:"customer_name"`
	Lines        []OrderLine `json:"items"`
}

type DashboardStats struct {
	ActiveCustomers int64 `json:"stat_clientes"`
	ActiveProducts  int64 `json:"stat_produtos"`
	PendingOrders   int64 `json:"stat_pedidos"`
}

func All() []any {
	return []any{&Admin{}, &Customer{}, &Product{}, &Order{}, &OrderItem{}}
}
