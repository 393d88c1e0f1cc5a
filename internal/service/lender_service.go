package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/repository"
	"github.com/lenderdesk/lenderdesk/pkg/reconcile"
)

// LenderService handles lender CRUD. Raw request bodies of any historical
// shape pass through the reconciliation seam here; repositories and
// everything below only ever see the canonical model.
type LenderService struct {
	lenderRepo *repository.LenderRepository
	cache      *CacheService
}

// NewLenderService creates a new lender service
func NewLenderService(lenderRepo *repository.LenderRepository, cache *CacheService) *LenderService {
	return &LenderService{
		lenderRepo: lenderRepo,
		cache:      cache,
	}
}

// Create reconciles a raw record and persists a new lender. The server mints
// the id; an id on the request body is ignored rather than trusted.
func (s *LenderService) Create(ctx context.Context, raw map[string]interface{}) (*domain.Lender, error) {
	lender, err := reconcile.Lender(raw)
	if err != nil && !errors.Is(err, domain.ErrMissingIdentity) {
		return nil, err
	}

	now := time.Now()
	lender.ID = uuid.New().String()
	lender.Version = 1
	lender.CreatedAt = now
	lender.UpdatedAt = now
	if lender.Status == "" {
		lender.Status = domain.StatusActive
	}

	if err := s.lenderRepo.Create(ctx, lender); err != nil {
		return nil, err
	}

	s.cache.InvalidateLenders(ctx)
	return lender, nil
}

// Get returns one lender by id
func (s *LenderService) Get(ctx context.Context, id string) (*domain.Lender, error) {
	lender, err := s.lenderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lender == nil {
		return nil, ErrNotFound
	}
	return lender, nil
}

// List returns lenders with optional status/country filters, served from
// cache when possible.
func (s *LenderService) List(ctx context.Context, status domain.RecordStatus, country domain.Country) ([]*domain.Lender, error) {
	variant := fmt.Sprintf("%s:%s", status, country)

	var cached []*domain.Lender
	if s.cache.GetLenderList(ctx, variant, &cached) {
		return cached, nil
	}

	lenders, err := s.lenderRepo.FindAll(ctx, status, country)
	if err != nil {
		return nil, err
	}

	s.cache.PutLenderList(ctx, variant, lenders)
	return lenders, nil
}

// Update reconciles a raw record and applies it as a full update. The
// caller's version must match the stored one; a stale version returns
// ErrConflict instead of silently overwriting a concurrent edit.
func (s *LenderService) Update(ctx context.Context, id string, raw map[string]interface{}) (*domain.Lender, error) {
	existing, err := s.lenderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	incoming, err := reconcile.Lender(raw)
	if err != nil && !errors.Is(err, domain.ErrMissingIdentity) {
		return nil, err
	}
	incoming.ID = id
	incoming.UpdatedAt = time.Now()

	expectedVersion := incoming.Version
	if expectedVersion == 0 {
		// Clients that predate versioning send none; they get last-write-wins
		// against the current version rather than a guaranteed conflict.
		expectedVersion = existing.Version
	}

	updated, err := s.lenderRepo.Update(ctx, incoming, expectedVersion)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}

	s.cache.InvalidateLenders(ctx)
	return s.lenderRepo.FindByID(ctx, id)
}

// Delete soft-deletes a lender. purge marks it for physical removal instead
// of plain deactivation.
func (s *LenderService) Delete(ctx context.Context, id string, purge bool) error {
	status := domain.StatusDeactivated
	if purge {
		status = domain.StatusPurgedPendingDelete
	}

	ok, err := s.lenderRepo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.cache.InvalidateLenders(ctx)
	return nil
}

// ImportOutcome is the per-record result of a bulk legacy import.
type ImportOutcome struct {
	Index    int    `json:"index"`
	LenderID string `json:"lender_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Import runs a batch of legacy records through the reconciliation seam.
// Records keep their original ids when they have one; records without an id
// are rejected, since an import claims to carry existing entities.
func (s *LenderService) Import(ctx context.Context, records []map[string]interface{}) []ImportOutcome {
	outcomes := make([]ImportOutcome, 0, len(records))

	for i, raw := range records {
		outcome := ImportOutcome{Index: i}

		lender, err := reconcile.Lender(raw)
		if err != nil {
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		now := time.Now()
		lender.Version = 1
		lender.CreatedAt = now
		lender.UpdatedAt = now

		if err := s.lenderRepo.Create(ctx, lender); err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.LenderID = lender.ID
		}
		outcomes = append(outcomes, outcome)
	}

	if len(outcomes) > 0 {
		s.cache.InvalidateLenders(ctx)
	}
	return outcomes
}
