package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

var productRows = []string{
	"id", "lender_id", "name", "category", "country_offered", "min_amount", "max_amount",
	"min_rate", "max_rate", "rate_type", "min_term_months", "max_term_months", "status",
	"description", "rules", "required_documents", "version", "created_at", "updated_at",
}

func TestProductRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rules := `{"min_credit_score": "650", "excluded_industries": ["Cannabis"]}`
	mock.ExpectQuery(`SELECT (.+) FROM lender_products WHERE id = \$1`).
		WithArgs("prod_1").
		WillReturnRows(sqlmock.NewRows(productRows).AddRow(
			"prod_1", "lender_1", "Fast Term Loan", "business_loan", "CA",
			10000.0, 250000.0, 8.5, 24.9, "percentage", 6, 60, "active",
			nil, []byte(rules), []byte(`["bank_statements"]`), int64(3), now, now,
		))

	repo := NewProductRepository(db)
	product, err := repo.FindByID(context.Background(), "prod_1")
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "lender_1", product.LenderID)
	assert.Equal(t, domain.CategoryBusinessLoan, product.Category)
	assert.Equal(t, "Business Loan", product.CategoryLabel)
	require.NotNil(t, product.AmountRange.Min)
	assert.Equal(t, 10000.0, *product.AmountRange.Min)
	assert.Equal(t, int64(3), product.Version)

	// Legacy stored rules decode tolerantly on the read path.
	require.NotNil(t, product.Rules.MinCreditScore)
	assert.Equal(t, 650, *product.Rules.MinCreditScore)
	assert.Equal(t, []string{"Cannabis"}, product.Rules.ExcludedIndustries)
	assert.Equal(t, []string{"bank_statements"}, product.RequiredDocuments)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM lender_products WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(productRows))

	repo := NewProductRepository(db)
	product, err := repo.FindByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductRepository_Update_VersionGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// A stale version matches zero rows.
	mock.ExpectExec(`UPDATE lender_products`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewProductRepository(db)
	updated, err := repo.Update(context.Background(), &domain.LenderProduct{ID: "prod_1"}, 2)
	require.NoError(t, err)
	assert.False(t, updated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_SetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE lender_products SET status = \$2`).
		WithArgs("prod_1", domain.StatusDeactivated).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewProductRepository(db)
	ok, err := repo.SetStatus(context.Background(), "prod_1", domain.StatusDeactivated)
	require.NoError(t, err)
	assert.True(t, ok)
}
