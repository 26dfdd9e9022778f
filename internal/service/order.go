package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/suagrafica/portal/internal/metrics"
	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/repo"
	"github.com/suagrafica/portal/internal/transport"
	"github.com/suagrafica/portal/pkg/events"
	"github.com/suagrafica/portal/pkg/logging"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Topic  string

	Statuses       models.StatusSet
	PaymentBaseURL string
}

func (svc *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer_id required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	total := models.MustMoney("0")
	items := make([]models.OrderItem, 0, len(req.Items))

	for i := range req.Items {
		if req.Items[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if req.Items[i].UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}

		productID := req.Items[i].ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			Quantity:  req.Items[i].Quantity,
			UnitPrice: req.Items[i].UnitPrice,
		})
		total = total.Plus(req.Items[i].UnitPrice.Times(req.Items[i].Quantity))
	}

	order := &models.Order{
		CustomerID: req.CustomerID,
		Status:     models.OrderStatusAwaitingApproval,
		TotalValue: total,
		Items:      items,
	}
	if err := svc.Repo.CreateOrder(ctx, order); err != nil {
		return nil, storeError(err, "order")
	}

	metrics.OrdersCreated.Inc()
	svc.publish(ctx, "order_created", order)
	return order, nil
}

func (svc *OrderService) ListCustomerOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("%w: customer_id required", ErrValidation)
	}
	return svc.Repo.ListCustomerOrders(ctx, customerID)
}

func (svc *OrderService) ListAllOrders(ctx context.Context) ([]models.OrderSummary, error) {
	return svc.Repo.ListAllOrders(ctx)
}

// GetOrderDetail returns NotFound both for missing orders and for orders
// owned by someone other than customerID (when non-zero).
func (svc *OrderService) GetOrderDetail(ctx context.Context, orderID, customerID uint) (*models.OrderDetail, error) {
	detail, err := svc.Repo.GetOrderDetail(ctx, orderID, customerID)
	if err != nil {
		return nil, storeError(err, "order")
	}
	return detail, nil
}

func (svc *OrderService) UpdateOrder(ctx context.Context, id uint, req transport.UpdateOrderRequest) (*models.Order, error) {
	if !svc.Statuses.Allows(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}
	if req.TotalValue == nil {
		return nil, fmt.Errorf("%w: total_value required", ErrValidation)
	}
	if req.TotalValue.IsNegative() {
		return nil, fmt.Errorf("%w: total_value must be >= 0", ErrValidation)
	}

	order, err := svc.Repo.UpdateOrder(ctx, id, repo.OrderFields{
		Status:      req.Status,
		PaymentLink: req.PaymentLink,
		TotalValue:  *req.TotalValue,
	})
	if err != nil {
		return nil, storeError(err, "order")
	}

	svc.publish(ctx, "order_updated", order)
	return order, nil
}

func (svc *OrderService) PaymentLinkFor(orderID uint) string {
	return svc.PaymentBaseURL + strconv.FormatUint(uint64(orderID), 10)
}

func (svc *OrderService) GeneratePaymentLink(ctx context.Context, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, fmt.Errorf("%w: order_id required", ErrValidation)
	}

	order, err := svc.Repo.SetPaymentLink(ctx, orderID, svc.PaymentLinkFor(orderID), models.OrderStatusAwaitingPayment)
	if err != nil {
		return nil, storeError(err, "order")
	}

	svc.publish(ctx, "payment_link_generated", order)
	return order, nil
}

func (svc *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if svc.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	event := map[string]any{
		"type":        eventType,
		"orderID":     order.ID,
		"customerID":  order.CustomerID,
		"status":      order.Status,
		"totalValue":  order.TotalValue,
		"paymentLink": order.PaymentLink,
		"at":          time.Now().UTC(),
	}
	key := strconv.FormatUint(uint64(order.ID), 10)
	if err := svc.Events.PublishEvent(ctx, svc.Topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}
