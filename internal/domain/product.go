package domain

import "time"

// RateType distinguishes interest-percentage pricing from factor-rate
// pricing; the rate range is read in whichever unit this names.
type RateType string

const (
	RatePercentage RateType = "percentage"
	RateFactor     RateType = "factor"
)

// ProductCountry is the market a product is offered in.
type ProductCountry string

const (
	ProductCountryCA ProductCountry = "CA"
	ProductCountryUS ProductCountry = "US"
)

// LenderProduct is the canonical product record. Rules are embedded and
// persisted with the product; they have no lifecycle of their own.
type LenderProduct struct {
	ID                string           `json:"id" db:"id"`
	LenderID          string           `json:"lender_id" db:"lender_id"`
	Name              string           `json:"name" db:"name"`
	Category          Category         `json:"category" db:"category"`
	CategoryLabel     string           `json:"category_label"`
	CountryOffered    ProductCountry   `json:"country_offered,omitempty" db:"country_offered"`
	AmountRange       AmountRange      `json:"amount_range"`
	RateRange         AmountRange      `json:"rate_range"`
	RateType          RateType         `json:"rate_type,omitempty" db:"rate_type"`
	TermRangeMonths   IntRange         `json:"term_range_months"`
	Status            RecordStatus     `json:"status" db:"status"`
	Description       *string          `json:"description,omitempty" db:"description"`
	Rules             EligibilityRules `json:"rules"`
	RequiredDocuments []string         `json:"required_documents,omitempty"`
	Version           int64            `json:"version" db:"version"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the product is in the live state.
func (p *LenderProduct) IsActive() bool {
	return p.Status == StatusActive
}
