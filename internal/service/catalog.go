package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/repo"
	"github.com/suagrafica/portal/internal/transport"
)

const SearchLimit = 5

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, activeOnly)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError(err, "product")
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in transport.ProductInput) (*models.Product, error) {
	if in.Code == nil || strings.TrimSpace(*in.Code) == "" ||
		in.Name == nil || strings.TrimSpace(*in.Name) == "" ||
		in.MinPrice == nil {
		return nil, fmt.Errorf("%w: code, name and min_price required", ErrValidation)
	}

	p := &models.Product{OrderMultiple: 1, InStock: true, Active: true}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, storeError(err, "product code")
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in transport.ProductInput) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError(err, "product")
	}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateProduct(ctx, p); err != nil {
		return nil, storeError(err, "product code")
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return storeError(s.Repo.DeleteProduct(ctx, id), "product")
}

// SearchActiveProducts is the catalog lookup behind the chat search tool.
func (s *CatalogService) SearchActiveProducts(ctx context.Context, term string) ([]models.Product, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term required", ErrValidation)
	}
	return s.Repo.SearchActiveProducts(ctx, term, SearchLimit)
}

func applyProductInput(p *models.Product, in transport.ProductInput) error {
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return fmt.Errorf("%w: code cannot be empty", ErrValidation)
		}
		p.Code = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.MinPrice != nil {
		if in.MinPrice.IsNegative() {
			return fmt.Errorf("%w: min_price must be >= 0", ErrValidation)
		}
		p.MinPrice = *in.MinPrice
	}
	if in.OrderMultiple != nil {
		if *in.OrderMultiple <= 0 {
			return fmt.Errorf("%w: order_multiple must be > 0", ErrValidation)
		}
		p.OrderMultiple = *in.OrderMultiple
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	return nil
}
