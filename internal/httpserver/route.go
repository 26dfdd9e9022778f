package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	authmw "github.com/suagrafica/portal/pkg/middleware/auth"
)

type Deps struct {
	Accounts *AccountHTTP
	Products *ProductHTTP
	Orders   *OrderHTTP
	Chat     *ChatHTTP

	AdminResolver  authmw.AdminResolver
	CustomerSecret []byte

	// ChatRateLimit is requests per second per client IP; 0 disables it.
	ChatRateLimit float64
	// Ready reports whether backing stores are reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, errorBody{Erro: "not ready"})
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/admin/login", d.Accounts.AdminLogin)
	api.POST("/customer/login", d.Accounts.CustomerLogin)

	admin := api.Group("/admin", authmw.RequireAdmin(d.AdminResolver))
	admin.GET("/dashboard_stats", d.Accounts.DashboardStats)

	admin.GET("/products", d.Products.ListProducts)
	admin.POST("/products", d.Products.CreateProduct)
	admin.GET("/products/:id", d.Products.GetProduct)
	admin.PUT("/products/:id", d.Products.UpdateProduct)
	admin.DELETE("/products/:id", d.Products.DeleteProduct)

	admin.GET("/customers", d.Accounts.ListCustomers)
	admin.POST("/customers", d.Accounts.CreateCustomer)
	admin.DELETE("/customers/:id", d.Accounts.DeleteCustomer)

	admin.GET("/admins", d.Accounts.ListAdmins)
	admin.POST("/admins", d.Accounts.CreateAdmin)
	admin.DELETE("/admins/:id", d.Accounts.DeleteAdmin)

	admin.GET("/orders", d.Orders.ListAllOrders)
	admin.GET("/orders/:id", d.Orders.AdminGetOrder)
	admin.PUT("/orders/:id", d.Orders.UpdateOrder)
	admin.POST("/orders/:id/payment_link", d.Orders.GeneratePaymentLink)

	customer := api.Group("/customer", authmw.RequireCustomer(d.CustomerSecret))
	customer.GET("/products", d.Products.ListActiveProducts)
	customer.GET("/orders", d.Orders.ListCustomerOrders)
	customer.POST("/orders", d.Orders.CreateOrder)
	customer.GET("/orders/:id", d.Orders.CustomerGetOrder)

	chatMW := []echo.MiddlewareFunc{authmw.RequireCustomer(d.CustomerSecret)}
	if d.ChatRateLimit > 0 {
		chatMW = append([]echo.MiddlewareFunc{chatRateLimiter(d.ChatRateLimit)}, chatMW...)
	}
	api.POST("/chat", d.Chat.Chat, chatMW...)
}

func chatRateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond * 5)
	if burst < 1 {
		burst = 1
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorBody{Erro: "cannot identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{Erro: "too many requests"})
		},
	})
}
