package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/service"
)

type Catalog interface {
	SearchActiveProducts(ctx context.Context, term string) ([]models.Product, error)
}

type Orders interface {
	GetOrderDetail(ctx context.Context, orderID, customerID uint) (*models.OrderDetail, error)
	GeneratePaymentLink(ctx context.Context, orderID uint) (*models.Order, error)
}

// Prices are rendered as decimal text so the model never sees a float.
type productResult struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"min_price"`
	OrderMultiple int    `json:"order_multiple"`
	InStock       bool   `json:"in_stock"`
}

type searchResult struct {
	Term     string          `json:"term"`
	Count    int             `json:"count"`
	Products []productResult `json:"products"`
}

type orderLineResult struct {
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type orderResult struct {
	ID          uint              `json:"id"`
	Status      string            `json:"status"`
	Total       string            `json:"total_value"`
	PaymentLink *string           `json:"payment_link"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []orderLineResult `json:"items"`
}

type checkOrderResult struct {
	OrderID uint         `json:"order_id"`
	Found   bool         `json:"found"`
	Order   *orderResult `json:"order,omitempty"`
}

type paymentResult struct {
	OrderID     uint   `json:"order_id"`
	Found       bool   `json:"found"`
	PaymentLink string `json:"payment_link,omitempty"`
	Status      string `json:"status,omitempty"`
}

// runTool executes action on behalf of clientID. Missing or foreign orders
// are reported to the model as found=false; store faults fail the turn.
func (a *Agent) runTool(ctx context.Context, action Action, clientID uint) ([]byte, error) {
	var result any

	switch action.Type {
	case ActionSearchProduct:
		items, err := a.catalog.SearchActiveProducts(ctx, action.Term)
		if err != nil {
			return nil, fmt.Errorf("search products: %w", err)
		}
		res := searchResult{Term: action.Term, Count: len(items), Products: make([]productResult, 0, len(items))}
		for _, p := range items {
			res.Products = append(res.Products, productResult{
				Code:          p.Code,
				Name:          p.Name,
				Description:   p.Description,
				Price:         p.MinPrice.String(),
				OrderMultiple: p.OrderMultiple,
				InStock:       p.InStock,
			})
		}
		result = res

	case ActionCheckOrder:
		detail, err := a.orders.GetOrderDetail(ctx, action.OrderID, clientID)
		if errors.Is(err, service.ErrNotFound) {
			result = checkOrderResult{OrderID: action.OrderID}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("check order: %w", err)
		}
		result = checkOrderResult{OrderID: action.OrderID, Found: true, Order: toOrderResult(detail)}

	case ActionGeneratePayment:
		// ownership is checked first so a customer cannot act on another's order
		if _, err := a.orders.GetOrderDetail(ctx, action.OrderID, clientID); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				result = paymentResult{OrderID: action.OrderID}
				break
			}
			return nil, fmt.Errorf("check order owner: %w", err)
		}
		order, err := a.orders.GeneratePaymentLink(ctx, action.OrderID)
		if errors.Is(err, service.ErrNotFound) {
			result = paymentResult{OrderID: action.OrderID}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("generate payment link: %w", err)
		}
		res := paymentResult{OrderID: order.ID, Found: true, Status: string(order.Status)}
		if order.PaymentLink != nil {
			res.PaymentLink = *order.PaymentLink
		}
		result = res

	default:
		return nil, fmt.Errorf("%w: no tool for action %q", ErrMalformed, action.Type)
	}

	return json.Marshal(result)
}

func toOrderResult(d *models.OrderDetail) *orderResult {
	out := &orderResult{
		ID:          d.ID,
		Status:      string(d.Status),
		Total:       d.TotalValue.String(),
		PaymentLink: d.PaymentLink,
		CreatedAt:   d.CreatedAt,
		Items:       make([]orderLineResult, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
		name := "(produto removido)"
		if l.ProductName != nil {
			name = *l.ProductName
		}
		out.Items = append(out.Items, orderLineResult{Product: name, Quantity: l.Quantity, UnitPrice: l.UnitPrice.String()})
	}
	return out
}
