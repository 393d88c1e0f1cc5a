package domain

import (
	"encoding/json"
	"time"
)

// IntegrationSetting is one provider's integration configuration (dialer,
// e-sign, ads, OCR, ...). Config is opaque provider-specific JSON; this
// service stores and serves it without interpreting it.
type IntegrationSetting struct {
	Provider  string          `json:"provider" db:"provider"`
	Enabled   bool            `json:"enabled" db:"enabled"`
	Config    json.RawMessage `json:"config" db:"config"`
	UpdatedBy *string         `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}
