package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/suagrafica/portal/internal/service"
	"github.com/suagrafica/portal/internal/transport"
	authmw "github.com/suagrafica/portal/pkg/middleware/auth"
	"github.com/suagrafica/portal/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

// boundCustomer resolves the customer a request acts for. A supplied id must
// match the token's; an omitted one defaults to it.
func boundCustomer(c echo.Context, supplied uint) (uint, error) {
	tokenID, ok := authmw.CustomerID(c)
	if !ok {
		return 0, service.ErrUnauthorized
	}
	if supplied != 0 && supplied != tokenID {
		return 0, fmt.Errorf("%w: customer_id does not match token", service.ErrForbidden)
	}
	return tokenID, nil
}

func (h *OrderHTTP) ListAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all_orders")

	orders, err := h.Svc.ListAllOrders(ctx)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) AdminGetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.admin_get_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	detail, err := h.Svc.GetOrderDetail(ctx, id, 0)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "update_order_error", err)
	}
	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "update_order_error", invalidBody(err))
	}

	order, err := h.Svc.UpdateOrder(ctx, id, req)
	if err != nil {
		return fail(l, "update_order_error", err)
	}

	l.Info("update_order_success", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GeneratePaymentLink(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.generate_payment_link")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "payment_link_error", err)
	}
	order, err := h.Svc.GeneratePaymentLink(ctx, id)
	if err != nil {
		return fail(l, "payment_link_error", err)
	}

	l.Info("payment_link_success", "order_id", id)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListCustomerOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_customer_orders")

	var supplied uint
	if raw := c.QueryParam("customer_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fail(l, "list_orders_error", fmt.Errorf("%w: customer_id is not an integer", service.ErrValidation))
		}
		supplied = uint(n)
	}
	customerID, err := boundCustomer(c, supplied)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}

	orders, err := h.Svc.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "create_order_error", invalidBody(err))
	}
	customerID, err := boundCustomer(c, req.CustomerID)
	if err != nil {
		return fail(l, "create_order_error", err)
	}
	req.CustomerID = customerID

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.TotalValue.String())
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) CustomerGetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.customer_get_order")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	customerID, err := boundCustomer(c, 0)
	if err != nil {
		return fail(l, "get_order_error", err)
	}

	detail, err := h.Svc.GetOrderDetail(ctx, id, customerID)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, detail)
}
