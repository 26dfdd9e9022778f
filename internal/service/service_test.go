package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/repo"
	"github.com/suagrafica/portal/internal/session"
	"github.com/suagrafica/portal/internal/testdb"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type testEnv struct {
	Repo     *repo.GormRepo
	Events   *recordingPublisher
	Orders   *OrderService
	Catalog  *CatalogService
	Accounts *AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	r := &repo.GormRepo{DB: testdb.Open(t)}
	pub := &recordingPublisher{}
	return &testEnv{
		Repo:   r,
		Events: pub,
		Orders: &OrderService{
			Repo:           r,
			Events:         pub,
			Topic:          "order_events",
			Statuses:       models.NewStatusSet("Shipped"),
			PaymentBaseURL: "https://pay.example/order/",
		},
		Catalog: &CatalogService{Repo: r},
		Accounts: &AccountService{
			Repo:           r,
			Sessions:       session.NewMemoryRegistry(),
			CustomerSecret: []byte("test-customer-secret"),
			CustomerTTL:    time.Hour,
		},
	}
}

func (env *testEnv) seedCustomer(t *testing.T, name, code string, status models.CustomerStatus) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: name, AccessCode: code, Status: status}
	if err := env.Repo.CreateCustomer(context.Background(), c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func (env *testEnv) seedProduct(t *testing.T, code, price string) *models.Product {
	t.Helper()
	p := &models.Product{Code: code, Name: "Product " + code, MinPrice: models.MustMoney(price), OrderMultiple: 1, InStock: true, Active: true}
	if err := env.Repo.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}
