package service

import (
	"context"
	"sort"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/repository"
)

// MatchingService evaluates applicant profiles against the product catalog.
type MatchingService struct {
	productRepo *repository.ProductRepository
}

// NewMatchingService creates a new matching service
func NewMatchingService(productRepo *repository.ProductRepository) *MatchingService {
	return &MatchingService{productRepo: productRepo}
}

// Match evaluates a profile against every active product. Matches order
// eligible first, then indeterminate, then ineligible, score descending
// within each band.
func (s *MatchingService) Match(ctx context.Context, profile *domain.ApplicantProfile) (*domain.MatchResponse, error) {
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	response := &domain.MatchResponse{
		Matches:   make([]domain.ProductMatch, 0, len(products)),
		Evaluated: len(products),
	}

	for _, product := range products {
		verdict := domain.Evaluate(&product.Rules, profile)
		if verdict.Status == domain.VerdictEligible {
			response.EligibleCount++
		}
		response.Matches = append(response.Matches, domain.ProductMatch{
			Product: product,
			Verdict: verdict,
			Score:   domain.MatchScore(&product.Rules, profile),
		})
	}

	sort.SliceStable(response.Matches, func(i, j int) bool {
		a, b := response.Matches[i], response.Matches[j]
		if a.Verdict.Status != b.Verdict.Status {
			return statusRank(a.Verdict.Status) < statusRank(b.Verdict.Status)
		}
		return a.Score > b.Score
	})

	return response, nil
}

// Evaluate runs one product's rules against a profile.
func (s *MatchingService) Evaluate(ctx context.Context, productID string, profile *domain.ApplicantProfile) (*domain.ProductMatch, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	verdict := domain.Evaluate(&product.Rules, profile)
	return &domain.ProductMatch{
		Product: product,
		Verdict: verdict,
		Score:   domain.MatchScore(&product.Rules, profile),
	}, nil
}

func statusRank(status domain.VerdictStatus) int {
	switch status {
	case domain.VerdictEligible:
		return 0
	case domain.VerdictIndeterminate:
		return 1
	default:
		return 2
	}
}
