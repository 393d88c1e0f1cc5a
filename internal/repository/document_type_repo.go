package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

// DocumentTypeRepository handles document type persistence
type DocumentTypeRepository struct {
	db *sql.DB
}

// NewDocumentTypeRepository creates a new document type repository
func NewDocumentTypeRepository(db *sql.DB) *DocumentTypeRepository {
	return &DocumentTypeRepository{db: db}
}

// ListActive returns all active document types ordered by code
func (r *DocumentTypeRepository) ListActive(ctx context.Context) ([]*domain.DocumentType, error) {
	query := `
		SELECT code, label, is_active, created_at
		FROM document_types
		WHERE is_active = true
		ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query document types: %w", err)
	}
	defer rows.Close()

	var docTypes []*domain.DocumentType
	for rows.Next() {
		var dt domain.DocumentType
		if err := rows.Scan(&dt.Code, &dt.Label, &dt.IsActive, &dt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document type: %w", err)
		}
		docTypes = append(docTypes, &dt)
	}
	return docTypes, rows.Err()
}
