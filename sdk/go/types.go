package lenderdesk

import (
	"encoding/json"
	"time"
)

// Error represents an API error
type Error struct {
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// Contact is a lender's point of contact
type Contact struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// AmountRange is a dollar or rate range; nil bounds mean unresolved
type AmountRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// IntRange is an integer range with the same nil semantics
type IntRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Submission describes how deals reach the lender
type Submission struct {
	Method string  `json:"method,omitempty"`
	Email  *string `json:"email,omitempty"`
	APIURL *string `json:"api_url,omitempty"`
}

// Lender is the canonical lender record as served by the API
type Lender struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Contact      Contact     `json:"contact"`
	Website      *string     `json:"website,omitempty"`
	Country      string      `json:"country,omitempty"`
	Status       string      `json:"status"`
	LoanRange    AmountRange `json:"loan_range"`
	FundingSpeed string      `json:"funding_speed,omitempty"`
	Submission   Submission  `json:"submission"`
	Version      int64       `json:"version"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Product is a lender's product offering. Rules are kept raw so client
// code can forward them without tracking the server's rule vocabulary.
type Product struct {
	ID                string          `json:"id"`
	LenderID          string          `json:"lender_id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CategoryLabel     string          `json:"category_label"`
	CountryOffered    string          `json:"country_offered,omitempty"`
	AmountRange       AmountRange     `json:"amount_range"`
	RateRange         AmountRange     `json:"rate_range"`
	RateType          string          `json:"rate_type,omitempty"`
	TermRangeMonths   IntRange        `json:"term_range_months"`
	Status            string          `json:"status"`
	Description       *string         `json:"description,omitempty"`
	Rules             json.RawMessage `json:"rules"`
	RequiredDocuments []string        `json:"required_documents,omitempty"`
	Version           int64           `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ApplicantProfile is the applicant data submitted for matching.
// Every field is optional; absent fields yield indeterminate verdicts
// on rules that need them.
type ApplicantProfile struct {
	CreditScore          *int     `json:"credit_score,omitempty"`
	AnnualRevenue        *float64 `json:"annual_revenue,omitempty"`
	TimeInBusinessMonths *int     `json:"time_in_business_months,omitempty"`
	DebtToIncome         *float64 `json:"debt_to_income,omitempty"`
	Industry             *string  `json:"industry,omitempty"`
	State                *string  `json:"state,omitempty"`
}

// Verdict is the outcome of evaluating one product's rules
type Verdict struct {
	Status        string   `json:"status"`
	Reasons       []string `json:"reasons,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Advisory      []string `json:"advisory,omitempty"`
}

// Verdict statuses
const (
	VerdictEligible      = "eligible"
	VerdictIneligible    = "ineligible"
	VerdictIndeterminate = "indeterminate"
)

// ProductMatch pairs a product with its verdict and ordering score
type ProductMatch struct {
	Product *Product `json:"product"`
	Verdict Verdict  `json:"verdict"`
	Score   float64  `json:"score"`
}

// MatchResponse is the result of matching an applicant across the catalog
type MatchResponse struct {
	Matches       []ProductMatch `json:"matches"`
	Evaluated     int            `json:"evaluated"`
	EligibleCount int            `json:"eligible_count"`
}

// User is a staff user record
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// LoginResponse carries the access token issued on login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}

// ImportOutcome is the per-record result of a batch import
type ImportOutcome struct {
	Index    int    `json:"index"`
	LenderID string `json:"lender_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ImportResponse summarizes a batch import
type ImportResponse struct {
	Imported int             `json:"imported"`
	Failed   int             `json:"failed"`
	Outcomes []ImportOutcome `json:"outcomes"`
}
