package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

// ProductRepository handles lender product persistence
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository on a shared connection
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, lender_id, name, category, country_offered, min_amount, max_amount,
	       min_rate, max_rate, rate_type, min_term_months, max_term_months, status,
	       description, rules, required_documents, version, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.LenderProduct, error) {
	var p domain.LenderProduct
	var rules, requiredDocs []byte
	err := row.Scan(
		&p.ID,
		&p.LenderID,
		&p.Name,
		&p.Category,
		&p.CountryOffered,
		&p.AmountRange.Min,
		&p.AmountRange.Max,
		&p.RateRange.Min,
		&p.RateRange.Max,
		&p.RateType,
		&p.TermRangeMonths.Min,
		&p.TermRangeMonths.Max,
		&p.Status,
		&p.Description,
		&rules,
		&requiredDocs,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Rules decoding is tolerant by construction, so stored legacy shapes
	// cannot poison a read path.
	if len(rules) > 0 {
		_ = json.Unmarshal(rules, &p.Rules)
	}
	if len(requiredDocs) > 0 {
		_ = json.Unmarshal(requiredDocs, &p.RequiredDocuments)
	}
	p.CategoryLabel = p.Category.Label()
	return &p, nil
}

// FindByID finds a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.LenderProduct, error) {
	query := fmt.Sprintf(`SELECT %s FROM lender_products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// FindByLender returns all products for one lender
func (r *ProductRepository) FindByLender(ctx context.Context, lenderID string) ([]*domain.LenderProduct, error) {
	query := fmt.Sprintf(`SELECT %s FROM lender_products WHERE lender_id = $1 ORDER BY created_at DESC`, productColumns)
	return r.queryProducts(ctx, query, lenderID)
}

// FindActive returns every product in the live state, for matching runs
func (r *ProductRepository) FindActive(ctx context.Context) ([]*domain.LenderProduct, error) {
	query := fmt.Sprintf(`SELECT %s FROM lender_products WHERE status = $1 ORDER BY created_at DESC`, productColumns)
	return r.queryProducts(ctx, query, domain.StatusActive)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.LenderProduct, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.LenderProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, p *domain.LenderProduct) error {
	rules, err := json.Marshal(&p.Rules)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	requiredDocs, err := json.Marshal(p.RequiredDocuments)
	if err != nil {
		return fmt.Errorf("failed to encode required documents: %w", err)
	}

	query := `
		INSERT INTO lender_products (id, lender_id, name, category, country_offered,
		                             min_amount, max_amount, min_rate, max_rate, rate_type,
		                             min_term_months, max_term_months, status, description,
		                             rules, required_documents, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.LenderID,
		p.Name,
		p.Category,
		p.CountryOffered,
		p.AmountRange.Min,
		p.AmountRange.Max,
		p.RateRange.Min,
		p.RateRange.Max,
		p.RateType,
		p.TermRangeMonths.Min,
		p.TermRangeMonths.Max,
		p.Status,
		p.Description,
		rules,
		requiredDocs,
		p.Version,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update applies a full update guarded by the caller's version.
func (r *ProductRepository) Update(ctx context.Context, p *domain.LenderProduct, expectedVersion int64) (bool, error) {
	rules, err := json.Marshal(&p.Rules)
	if err != nil {
		return false, fmt.Errorf("failed to encode rules: %w", err)
	}
	requiredDocs, err := json.Marshal(p.RequiredDocuments)
	if err != nil {
		return false, fmt.Errorf("failed to encode required documents: %w", err)
	}

	query := `
		UPDATE lender_products
		SET name = $2, category = $3, country_offered = $4, min_amount = $5, max_amount = $6,
		    min_rate = $7, max_rate = $8, rate_type = $9, min_term_months = $10,
		    max_term_months = $11, status = $12, description = $13, rules = $14,
		    required_documents = $15, version = version + 1, updated_at = $16
		WHERE id = $1 AND version = $17
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Category,
		p.CountryOffered,
		p.AmountRange.Min,
		p.AmountRange.Max,
		p.RateRange.Min,
		p.RateRange.Max,
		p.RateType,
		p.TermRangeMonths.Min,
		p.TermRangeMonths.Max,
		p.Status,
		p.Description,
		rules,
		requiredDocs,
		p.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// SetStatus transitions a product's delete state.
func (r *ProductRepository) SetStatus(ctx context.Context, id string, status domain.RecordStatus) (bool, error) {
	query := `UPDATE lender_products SET status = $2, version = version + 1, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("failed to set product status: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
