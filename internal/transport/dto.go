package transport

import (
	"time"

	"github.com/suagrafica/portal/internal/models"
)

type AdminLoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type AdminLoginResponse struct {
	Token   string `json:"token"`
	AdminID uint   `json:"admin_id"`
}

type CustomerLoginRequest struct {
	AccessCode string `json:"access_code"`
}

type CustomerLoginResponse struct {
	Token      string    `json:"token"`
	CustomerID uint      `json:"customer_id"`
	Name       string    `json:"name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type CreateCustomerRequest struct {
	Name       string                `json:"name"`
	TaxID      *string               `json:"tax_id"`
	Email      string                `json:"email"`
	AccessCode string                `json:"access_code"`
	Status     models.CustomerStatus `json:"status"`
}

// ProductInput is used for create and partial update. Nil fields are left
// unchanged on update and take their defaults on create.
type ProductInput struct {
	Code          *string       `json:"code"`
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	MinPrice      *models.Money `json:"min_price"`
	OrderMultiple *int          `json:"order_multiple"`
	InStock       *bool         `json:"in_stock"`
	ImageURL      *string       `json:"image_url"`
	Active        *bool         `json:"active"`
}

type CreateOrderItem struct {
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
}

type CreateOrderRequest struct {
	CustomerID uint              `json:"customer_id"`
	Items      []CreateOrderItem `json:"items"`
}

type UpdateOrderRequest struct {
	Status      models.OrderStatus `json:"status"`
	PaymentLink *string            `json:"payment_link"`
	TotalValue  *models.Money      `json:"total_value"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	History  []ChatMessage `json:"history"`
	Message  string        `json:"message"`
	ClientID uint          `json:"client_id"`
}

type ChatResponse struct {
	Reply       string `json:"reply"`
	ActionTaken string `json:"action_taken"`
}

type MessageResponse struct {
	Message string `json:"mensagem"`
}
