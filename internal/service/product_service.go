package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/repository"
	"github.com/lenderdesk/lenderdesk/pkg/reconcile"
)

// ProductService handles lender product CRUD through the reconciliation seam.
type ProductService struct {
	productRepo *repository.ProductRepository
	lenderRepo  *repository.LenderRepository
	cache       *CacheService
}

// NewProductService creates a new product service
func NewProductService(productRepo *repository.ProductRepository, lenderRepo *repository.LenderRepository, cache *CacheService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		lenderRepo:  lenderRepo,
		cache:       cache,
	}
}

// Create reconciles a raw record and persists a new product under a lender.
// The lender must exist and be active.
func (s *ProductService) Create(ctx context.Context, lenderID string, raw map[string]interface{}) (*domain.LenderProduct, error) {
	lender, err := s.lenderRepo.FindByID(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	if lender == nil {
		return nil, ErrLenderNotFound
	}
	if !lender.IsActive() {
		return nil, ErrLenderNotActive
	}

	product, err := reconcile.Product(raw)
	if err != nil && !errors.Is(err, domain.ErrMissingIdentity) {
		return nil, err
	}

	now := time.Now()
	product.ID = uuid.New().String()
	product.LenderID = lenderID
	product.Version = 1
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = domain.StatusActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)
	return product, nil
}

// Get returns one product by id
func (s *ProductService) Get(ctx context.Context, id string) (*domain.LenderProduct, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListByLender returns all of one lender's products, served from cache when
// possible.
func (s *ProductService) ListByLender(ctx context.Context, lenderID string) ([]*domain.LenderProduct, error) {
	lender, err := s.lenderRepo.FindByID(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	if lender == nil {
		return nil, ErrLenderNotFound
	}

	variant := "lender:" + lenderID
	var cached []*domain.LenderProduct
	if s.cache.GetProductList(ctx, variant, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.FindByLender(ctx, lenderID)
	if err != nil {
		return nil, err
	}

	s.cache.PutProductList(ctx, variant, products)
	return products, nil
}

// Update reconciles a raw record and applies it as a versioned full update.
func (s *ProductService) Update(ctx context.Context, id string, raw map[string]interface{}) (*domain.LenderProduct, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	incoming, err := reconcile.Product(raw)
	if err != nil && !errors.Is(err, domain.ErrMissingIdentity) {
		return nil, err
	}
	incoming.ID = id
	incoming.LenderID = existing.LenderID
	incoming.UpdatedAt = time.Now()

	expectedVersion := incoming.Version
	if expectedVersion == 0 {
		expectedVersion = existing.Version
	}

	updated, err := s.productRepo.Update(ctx, incoming, expectedVersion)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}

	s.cache.InvalidateProducts(ctx)
	return s.productRepo.FindByID(ctx, id)
}

// Delete soft-deletes a product, or marks it for purge.
func (s *ProductService) Delete(ctx context.Context, id string, purge bool) error {
	status := domain.StatusDeactivated
	if purge {
		status = domain.StatusPurgedPendingDelete
	}

	ok, err := s.productRepo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.cache.InvalidateProducts(ctx)
	return nil
}
