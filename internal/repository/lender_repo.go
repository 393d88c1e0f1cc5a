package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

// LenderRepository handles lender persistence
type LenderRepository struct {
	db *sql.DB
}

// NewLenderRepository opens the database connection and creates the lender
// repository. Other repositories share the connection via GetDB.
func NewLenderRepository(databaseURL string) (*LenderRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &LenderRepository{db: db}, nil
}

// NewLenderRepositoryWithDB wraps an existing connection.
func NewLenderRepositoryWithDB(db *sql.DB) *LenderRepository {
	return &LenderRepository{db: db}
}

// GetDB returns the underlying connection for sharing with other repositories.
func (r *LenderRepository) GetDB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *LenderRepository) Close() error {
	return r.db.Close()
}

const lenderColumns = `id, name, contact_name, contact_email, contact_phone, website, country,
	       status, min_amount, max_amount, funding_speed, submission_method,
	       submission_email, api_url, api_token, version, created_at, updated_at`

func scanLender(row interface{ Scan(...interface{}) error }) (*domain.Lender, error) {
	var l domain.Lender
	var submissionMethod *string
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Contact.Name,
		&l.Contact.Email,
		&l.Contact.Phone,
		&l.Website,
		&l.Country,
		&l.Status,
		&l.LoanRange.Min,
		&l.LoanRange.Max,
		&l.FundingSpeed,
		&submissionMethod,
		&l.Submission.Email,
		&l.Submission.APIURL,
		&l.Submission.APIToken,
		&l.Version,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if submissionMethod != nil {
		l.Submission.Method = domain.SubmissionMethod(*submissionMethod)
	}
	return &l, nil
}

// FindByID finds a lender by ID
func (r *LenderRepository) FindByID(ctx context.Context, id string) (*domain.Lender, error) {
	query := fmt.Sprintf(`SELECT %s FROM lenders WHERE id = $1`, lenderColumns)

	lender, err := scanLender(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find lender: %w", err)
	}
	return lender, nil
}

// FindAll returns lenders, optionally filtered by status and country
func (r *LenderRepository) FindAll(ctx context.Context, status domain.RecordStatus, country domain.Country) ([]*domain.Lender, error) {
	query := fmt.Sprintf(`SELECT %s FROM lenders WHERE 1=1`, lenderColumns)
	var args []interface{}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if country != "" {
		args = append(args, country)
		query += fmt.Sprintf(" AND (country = $%d OR country = 'Both')", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lenders: %w", err)
	}
	defer rows.Close()

	var lenders []*domain.Lender
	for rows.Next() {
		lender, err := scanLender(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lender: %w", err)
		}
		lenders = append(lenders, lender)
	}
	return lenders, rows.Err()
}

// Create inserts a new lender
func (r *LenderRepository) Create(ctx context.Context, l *domain.Lender) error {
	query := `
		INSERT INTO lenders (id, name, contact_name, contact_email, contact_phone, website,
		                     country, status, min_amount, max_amount, funding_speed,
		                     submission_method, submission_email, api_url, api_token,
		                     version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Contact.Name,
		l.Contact.Email,
		l.Contact.Phone,
		l.Website,
		l.Country,
		l.Status,
		l.LoanRange.Min,
		l.LoanRange.Max,
		l.FundingSpeed,
		nullableMethod(l.Submission.Method),
		l.Submission.Email,
		l.Submission.APIURL,
		l.Submission.APIToken,
		l.Version,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lender: %w", err)
	}
	return nil
}

// Update applies a full update guarded by the caller's version. Zero rows
// affected means either a missing row or a stale version; the caller
// distinguishes the two with a follow-up read.
func (r *LenderRepository) Update(ctx context.Context, l *domain.Lender, expectedVersion int64) (bool, error) {
	query := `
		UPDATE lenders
		SET name = $2, contact_name = $3, contact_email = $4, contact_phone = $5,
		    website = $6, country = $7, status = $8, min_amount = $9, max_amount = $10,
		    funding_speed = $11, submission_method = $12, submission_email = $13,
		    api_url = $14, api_token = $15, version = version + 1, updated_at = $16
		WHERE id = $1 AND version = $17
	`

	result, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Contact.Name,
		l.Contact.Email,
		l.Contact.Phone,
		l.Website,
		l.Country,
		l.Status,
		l.LoanRange.Min,
		l.LoanRange.Max,
		l.FundingSpeed,
		nullableMethod(l.Submission.Method),
		l.Submission.Email,
		l.Submission.APIURL,
		l.Submission.APIToken,
		l.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update lender: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// SetStatus transitions a lender's delete state without a version guard;
// deactivation is idempotent from the UI's point of view.
func (r *LenderRepository) SetStatus(ctx context.Context, id string, status domain.RecordStatus) (bool, error) {
	query := `UPDATE lenders SET status = $2, version = version + 1, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("failed to set lender status: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func nullableMethod(m domain.SubmissionMethod) *string {
	if m == "" {
		return nil
	}
	s := string(m)
	return &s
}
