package domain

// ApplicantProfile is the slice of an application that eligibility rules are
// evaluated against. Every field is optional: an absent field contributes to
// an indeterminate verdict for any rule that needs it, never a pass or fail.
type ApplicantProfile struct {
	CreditScore          *int     `json:"credit_score,omitempty"`
	AnnualRevenue        *float64 `json:"annual_revenue,omitempty"`
	TimeInBusinessMonths *int     `json:"time_in_business_months,omitempty"`
	DebtToIncome         *float64 `json:"debt_to_income,omitempty"`
	Industry             *string  `json:"industry,omitempty"`
	State                *string  `json:"state,omitempty"`
}

// ProductMatch pairs a product with the verdict an applicant received on it,
// plus a coarse score used for ordering only. The score never overrides the
// verdict.
type ProductMatch struct {
	Product *LenderProduct `json:"product"`
	Verdict Verdict        `json:"verdict"`
	Score   float64        `json:"score"`
}

// MatchResponse is the result of evaluating an applicant across the catalog.
type MatchResponse struct {
	Matches       []ProductMatch `json:"matches"`
	Evaluated     int            `json:"evaluated"`
	EligibleCount int            `json:"eligible_count"`
}
