package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/suagrafica/portal/internal/service"
	"github.com/suagrafica/portal/internal/transport"
	authmw "github.com/suagrafica/portal/pkg/middleware/auth"
	"github.com/suagrafica/portal/pkg/logging"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.admin_login")

	var req transport.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "admin_login_error", invalidBody(err))
	}

	resp, err := h.Svc.AdminLogin(ctx, req)
	if err != nil {
		return fail(l, "admin_login_error", err)
	}

	l.Info("admin_login_success", "admin_id", resp.AdminID)
	return c.JSON(http.StatusOK, resp)
}

func (h *AccountHTTP) CustomerLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.customer_login")

	var req transport.CustomerLoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "customer_login_error", invalidBody(err))
	}

	resp, err := h.Svc.CustomerLogin(ctx, req)
	if err != nil {
		return fail(l, "customer_login_error", err)
	}

	l.Info("customer_login_success", "customer_id", resp.CustomerID)
	return c.JSON(http.StatusOK, resp)
}

func (h *AccountHTTP) DashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.dashboard_stats")

	stats, err := h.Svc.DashboardStats(ctx)
	if err != nil {
		return fail(l, "dashboard_stats_error", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AccountHTTP) ListAdmins(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_admins")

	admins, err := h.Svc.ListAdmins(ctx)
	if err != nil {
		return fail(l, "list_admins_error", err)
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *AccountHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.create_admin")

	var req transport.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "create_admin_error", invalidBody(err))
	}

	admin, err := h.Svc.CreateAdmin(ctx, req)
	if err != nil {
		return fail(l, "create_admin_error", err)
	}

	l.Info("create_admin_success", "admin_id", admin.ID)
	return c.JSON(http.StatusCreated, admin)
}

func (h *AccountHTTP) DeleteAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete_admin")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_admin_error", err)
	}
	if err := h.Svc.DeleteAdmin(ctx, id); err != nil {
		return fail(l, "delete_admin_error", err)
	}

	l.Info("delete_admin_success", "admin_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "admin deleted"})
}

func (h *AccountHTTP) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.list_customers")

	adminID, _ := authmw.AdminID(c)
	customers, err := h.Svc.ListCustomers(ctx, adminID)
	if err != nil {
		return fail(l, "list_customers_error", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *AccountHTTP) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.create_customer")

	var req transport.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "create_customer_error", invalidBody(err))
	}

	adminID, _ := authmw.AdminID(c)
	customer, err := h.Svc.CreateCustomer(ctx, adminID, req)
	if err != nil {
		return fail(l, "create_customer_error", err)
	}

	l.Info("create_customer_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *AccountHTTP) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.delete_customer")

	id, err := parseID(c, "id")
	if err != nil {
		return fail(l, "delete_customer_error", err)
	}
	adminID, _ := authmw.AdminID(c)
	if err := h.Svc.DeleteCustomer(ctx, adminID, id); err != nil {
		return fail(l, "delete_customer_error", err)
	}

	l.Info("delete_customer_success", "customer_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "customer deleted"})
}
