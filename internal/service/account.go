package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/repo"
	"github.com/suagrafica/portal/internal/session"
	"github.com/suagrafica/portal/internal/transport"
	"github.com/suagrafica/portal/pkg/hash"
	"github.com/suagrafica/portal/pkg/logging"
	"github.com/suagrafica/portal/pkg/tokens"
)

// DebugAuth lets fixed tokens stand in for an admin session. Off unless
// Enabled is set.
type DebugAuth struct {
	Enabled bool
	Tokens  []string
	AdminID uint
}

type AccountService struct {
	Repo     *repo.GormRepo
	Sessions session.Registry

	CustomerSecret []byte
	CustomerTTL    time.Duration

	Debug DebugAuth
}

func (s *AccountService) AdminLogin(ctx context.Context, req transport.AdminLoginRequest) (*transport.AdminLoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Secret == "" {
		return nil, fmt.Errorf("%w: username and secret required", ErrUnauthorized)
	}

	admin, err := s.Repo.FindAdminByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(admin.SecretHash, req.Secret) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.Sessions.Create(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &transport.AdminLoginResponse{Token: token, AdminID: admin.ID}, nil
}

func (s *AccountService) ResolveAdmin(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: missing token", ErrUnauthorized)
	}

	if s.Debug.Enabled && slices.Contains(s.Debug.Tokens, token) {
		logging.FromContext(ctx).Warn("auth_debug_bypass", "admin_id", s.Debug.AdminID)
		return s.Debug.AdminID, nil
	}

	id, ok, err := s.Sessions.Resolve(ctx, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: unknown session", ErrUnauthorized)
	}
	return id, nil
}

func (s *AccountService) CustomerLogin(ctx context.Context, req transport.CustomerLoginRequest) (*transport.CustomerLoginResponse, error) {
	code := strings.TrimSpace(req.AccessCode)
	if code == "" {
		return nil, fmt.Errorf("%w: access_code required", ErrUnauthorized)
	}

	customer, err := s.Repo.FindCustomerByAccessCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid access code", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if customer.Status != models.CustomerActive {
		return nil, fmt.Errorf("%w: customer inactive", ErrUnauthorized)
	}

	token, exp, err := tokens.IssueCustomerToken(s.CustomerSecret, customer.ID, s.CustomerTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &transport.CustomerLoginResponse{
		Token:      token,
		CustomerID: customer.ID,
		Name:       customer.Name,
		ExpiresAt:  exp,
	}, nil
}

func (s *AccountService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return s.Repo.ListAdmins(ctx)
}

func (s *AccountService) CreateAdmin(ctx context.Context, req transport.CreateAdminRequest) (*models.Admin, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Secret == "" {
		return nil, fmt.Errorf("%w: username and secret required", ErrValidation)
	}

	secretHash, err := hash.HashPassword(req.Secret)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	admin := &models.Admin{Username: username, SecretHash: secretHash}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		return nil, storeError(err, "username")
	}
	return admin, nil
}

func (s *AccountService) DeleteAdmin(ctx context.Context, id uint) error {
	return storeError(s.Repo.DeleteAdmin(ctx, id), "admin")
}

func (s *AccountService) ListCustomers(ctx context.Context, adminID uint) ([]models.Customer, error) {
	return s.Repo.ListCustomers(ctx, adminID)
}

func (s *AccountService) CreateCustomer(ctx context.Context, adminID uint, req transport.CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.AccessCode)
	if name == "" || code == "" {
		return nil, fmt.Errorf("%w: name and access_code required", ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = models.CustomerActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown customer status %q", ErrValidation, status)
	}

	var taxID *string
	if req.TaxID != nil && strings.TrimSpace(*req.TaxID) != "" {
		v := strings.TrimSpace(*req.TaxID)
		taxID = &v
	}

	customer := &models.Customer{
		AdminID:    &adminID,
		Name:       name,
		TaxID:      taxID,
		Email:      strings.TrimSpace(req.Email),
		AccessCode: code,
		Status:     status,
	}
	if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
		return nil, storeError(err, "access code or tax id")
	}
	return customer, nil
}

func (s *AccountService) DeleteCustomer(ctx context.Context, adminID, id uint) error {
	return storeError(s.Repo.DeleteCustomer(ctx, adminID, id), "customer")
}

func (s *AccountService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return s.Repo.DashboardStats(ctx)
}
