package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
)

func TestCreateOrder_PersistsItems(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c := seedCustomer(t, r, nil, "Buyer", "BUY")
	p1 := seedProduct(t, r, "P1", "Poster", "12.25", true)
	p2 := seedProduct(t, r, "P2", "Sticker", "0.50", true)

	order := &models.Order{
		CustomerID: c.ID,
		TotalValue: models.MustMoney("122.50"),
		Status:     models.OrderStatusAwaitingApproval,
		Items: []models.OrderItem{
			{ProductID: &p1.ID, Quantity: 10, UnitPrice: models.MustMoney("12.25")},
			{ProductID: &p2.ID, Quantity: 1, UnitPrice: models.MustMoney("0.00")},
		},
	}
	require.NoError(t, r.CreateOrder(ctx, order))
	require.NotZero(t, order.ID)
	for _, it := range order.Items {
		assert.Equal(t, order.ID, it.OrderID)
		assert.NotZero(t, it.ID)
	}

	detail, err := r.GetOrderDetail(ctx, order.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Buyer", detail.CustomerName)
	assert.Equal(t, "122.50", detail.TotalValue.String())
	require.Len(t, detail.Lines, 2)
	require.NotNil(t, detail.Lines[0].ProductName)
	assert.Equal(t, "Poster", *detail.Lines[0].ProductName)
	assert.Equal(t, "12.25", detail.Lines[0].UnitPrice.String())
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	r := newTestRepo(t)
	err := r.CreateOrder(context.Background(), &models.Order{
		CustomerID: 77,
		TotalValue: models.MustMoney("1"),
		Status:     models.OrderStatusAwaitingApproval,
	})
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestCreateOrder_UnknownProductRollsBack(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c := seedCustomer(t, r, nil, "Buyer", "BUY")
	missing := uint(4242)
	err := r.CreateOrder(ctx, &models.Order{
		CustomerID: c.ID,
		TotalValue: models.MustMoney("1.00"),
		Status:     models.OrderStatusAwaitingApproval,
		Items:      []models.OrderItem{{ProductID: &missing, Quantity: 1, UnitPrice: models.MustMoney("1.00")}},
	})
	assert.ErrorIs(t, err, ErrMissingReference)

	orders, err := r.ListCustomerOrders(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDeleteProduct_KeepsFrozenPrice(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c := seedCustomer(t, r, nil, "Buyer", "BUY")
	p := seedProduct(t, r, "GONE", "Old banner", "2.10", true)
	order := &models.Order{
		CustomerID: c.ID,
		TotalValue: models.MustMoney("6.30"),
		Status:     models.OrderStatusAwaitingApproval,
		Items:      []models.OrderItem{{ProductID: &p.ID, Quantity: 3, UnitPrice: models.MustMoney("2.10")}},
	}
	require.NoError(t, r.CreateOrder(ctx, order))

	require.NoError(t, r.DeleteProduct(ctx, p.ID))

	detail, err := r.GetOrderDetail(ctx, order.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	line := detail.Lines[0]
	assert.Nil(t, line.ProductID)
	assert.Nil(t, line.ProductName)
	assert.Nil(t, line.ProductCode)
	assert.Equal(t, "2.10", line.UnitPrice.String())
	assert.Equal(t, 3, line.Quantity)
}

func TestGetOrderDetail_Scoped(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	owner := seedCustomer(t, r, nil, "Owner", "OWN")
	other := seedCustomer(t, r, nil, "Other", "OTH")
	order := &models.Order{CustomerID: owner.ID, TotalValue: models.MustMoney("0"), Status: models.OrderStatusAwaitingApproval}
	require.NoError(t, r.CreateOrder(ctx, order))

	_, err := r.GetOrderDetail(ctx, order.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = r.GetOrderDetail(ctx, order.ID, owner.ID)
	assert.NoError(t, err)
}

func TestListOrders(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a := seedCustomer(t, r, nil, "Alpha", "A")
	b := seedCustomer(t, r, nil, "Beta", "B")
	for _, cid := range []uint{a.ID, b.ID, a.ID} {
		require.NoError(t, r.CreateOrder(ctx, &models.Order{CustomerID: cid, TotalValue: models.MustMoney("1"), Status: models.OrderStatusAwaitingApproval}))
	}

	mine, err := r.ListCustomerOrders(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Greater(t, mine[0].ID, mine[1].ID)
	for _, o := range mine {
		assert.Equal(t, a.ID, o.CustomerID)
	}

	all, err := r.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha", all[0].CustomerName)
	assert.Equal(t, "Beta", all[1].CustomerName)
}

func TestUpdateOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c := seedCustomer(t, r, nil, "Buyer", "BUY")
	order := &models.Order{CustomerID: c.ID, TotalValue: models.MustMoney("10"), Status: models.OrderStatusAwaitingApproval}
	require.NoError(t, r.CreateOrder(ctx, order))

	link := "https://pay.example/1"
	got, err := r.UpdateOrder(ctx, order.ID, OrderFields{
		Status:      models.OrderStatusPaid,
		PaymentLink: &link,
		TotalValue:  models.MustMoney("9.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
	require.NotNil(t, got.PaymentLink)
	assert.Equal(t, link, *got.PaymentLink)
	assert.Equal(t, "9.99", got.TotalValue.String())

	got, err = r.UpdateOrder(ctx, order.ID, OrderFields{Status: models.OrderStatusCancelled, TotalValue: models.MustMoney("0")})
	require.NoError(t, err)
	assert.Nil(t, got.PaymentLink)
	assert.Equal(t, "0.00", got.TotalValue.String())

	_, err = r.UpdateOrder(ctx, 999, OrderFields{Status: models.OrderStatusPaid})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetPaymentLink(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c := seedCustomer(t, r, nil, "Buyer", "BUY")
	order := &models.Order{CustomerID: c.ID, TotalValue: models.MustMoney("10"), Status: models.OrderStatusAwaitingApproval}
	require.NoError(t, r.CreateOrder(ctx, order))

	got, err := r.SetPaymentLink(ctx, order.ID, "https://pay.example/x", models.OrderStatusAwaitingPayment)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAwaitingPayment, got.Status)
	assert.Equal(t, "10.00", got.TotalValue.String())
}

func TestDashboardStats(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	c := seedCustomer(t, r, nil, "Active", "ACT")
	require.NoError(t, r.CreateCustomer(ctx, &models.Customer{Name: "Idle", AccessCode: "IDLE", Status: models.CustomerInactive}))
	seedProduct(t, r, "ON", "On", "1", true)
	seedProduct(t, r, "OFF", "Off", "1", false)
	require.NoError(t, r.CreateOrder(ctx, &models.Order{CustomerID: c.ID, TotalValue: models.MustMoney("1"), Status: models.OrderStatusAwaitingApproval}))
	require.NoError(t, r.CreateOrder(ctx, &models.Order{CustomerID: c.ID, TotalValue: models.MustMoney("1"), Status: models.OrderStatusPaid}))

	stats, err := r.DashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ActiveCustomers)
	assert.EqualValues(t, 1, stats.ActiveProducts)
	assert.EqualValues(t, 1, stats.PendingOrders)
}
