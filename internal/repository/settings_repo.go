package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

// SettingsRepository handles integration setting persistence
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository on a shared connection
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindByProvider finds one provider's settings
func (r *SettingsRepository) FindByProvider(ctx context.Context, provider string) (*domain.IntegrationSetting, error) {
	query := `
		SELECT provider, enabled, config, updated_by, updated_at
		FROM integration_settings
		WHERE provider = $1
	`

	var s domain.IntegrationSetting
	var config []byte
	err := r.db.QueryRowContext(ctx, query, provider).Scan(
		&s.Provider,
		&s.Enabled,
		&config,
		&s.UpdatedBy,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find setting: %w", err)
	}
	s.Config = config
	return &s, nil
}

// FindAll returns all integration settings
func (r *SettingsRepository) FindAll(ctx context.Context) ([]*domain.IntegrationSetting, error) {
	query := `
		SELECT provider, enabled, config, updated_by, updated_at
		FROM integration_settings
		ORDER BY provider
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []*domain.IntegrationSetting
	for rows.Next() {
		var s domain.IntegrationSetting
		var config []byte
		if err := rows.Scan(&s.Provider, &s.Enabled, &config, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		s.Config = config
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

// Upsert creates or replaces one provider's settings
func (r *SettingsRepository) Upsert(ctx context.Context, s *domain.IntegrationSetting) error {
	query := `
		INSERT INTO integration_settings (provider, enabled, config, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			config = EXCLUDED.config,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.Provider,
		s.Enabled,
		[]byte(s.Config),
		s.UpdatedBy,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
