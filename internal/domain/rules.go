package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// EligibilityRules is the operator-entered criteria attached to a lender
// product. All fields are optional; numeric thresholds use pointers so
// "absent" and "zero" stay distinct.
//
// Rules arrive from several generations of editor forms, so decoding is
// deliberately tolerant: a threshold stored as a numeric string is coerced,
// and a malformed value degrades to absent instead of failing the record.
type EligibilityRules struct {
	MinCreditScore       *int     `json:"min_credit_score,omitempty"`
	MinAnnualRevenue     *float64 `json:"min_annual_revenue,omitempty"`
	TimeInBusinessMonths *int     `json:"time_in_business_months,omitempty"`
	MaxDebtToIncome      *float64 `json:"max_debt_to_income,omitempty"`
	RequiredDocs         []string `json:"required_docs,omitempty"`
	PreferredIndustries  []string `json:"preferred_industries,omitempty"`
	ExcludedIndustries   []string `json:"excluded_industries,omitempty"`
	ExcludedRegions      []string `json:"excluded_regions,omitempty"`

	// AdvancedLogic is a free-form boolean expression over the namespace
	// credit_score, annual_revenue, time_in_business, debt_ratio, industry,
	// state. It is stored as opaque text for human underwriters and is never
	// parsed or executed.
	AdvancedLogic *string `json:"advanced_logic,omitempty"`
}

// IsZero reports whether no rule field is set.
func (r *EligibilityRules) IsZero() bool {
	return r.MinCreditScore == nil &&
		r.MinAnnualRevenue == nil &&
		r.TimeInBusinessMonths == nil &&
		r.MaxDebtToIncome == nil &&
		len(r.RequiredDocs) == 0 &&
		len(r.PreferredIndustries) == 0 &&
		len(r.ExcludedIndustries) == 0 &&
		len(r.ExcludedRegions) == 0 &&
		r.AdvancedLogic == nil
}

// UnmarshalJSON decodes rules tolerantly. Alias field names from older editor
// forms are honored, numeric strings are coerced, and values of the wrong
// type degrade to absent.
func (r *EligibilityRules) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object at all; treat as empty rules rather than poisoning
		// the owning product.
		*r = EligibilityRules{}
		return nil
	}

	*r = EligibilityRules{
		MinCreditScore:       ruleInt(raw, "min_credit_score", "minCreditScore", "credit_score_min"),
		MinAnnualRevenue:     ruleFloat(raw, "min_annual_revenue", "minAnnualRevenue", "annual_revenue_min"),
		TimeInBusinessMonths: ruleInt(raw, "time_in_business_months", "timeInBusinessMonths", "time_in_business"),
		MaxDebtToIncome:      ruleFloat(raw, "max_debt_to_income", "maxDebtToIncome", "debt_ratio_max"),
		RequiredDocs:         dedupe(ruleList(raw, "required_docs", "requiredDocs", "required_documents")),
		PreferredIndustries:  ruleList(raw, "preferred_industries", "preferredIndustries"),
		ExcludedIndustries:   ruleList(raw, "excluded_industries", "excludedIndustries"),
		ExcludedRegions:      ruleList(raw, "excluded_regions", "excludedRegions", "excluded_states"),
		AdvancedLogic:        ruleText(raw, "advanced_logic", "advancedLogic"),
	}
	return nil
}

func ruleFloat(raw map[string]interface{}, names ...string) *float64 {
	for _, name := range names {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return &n
		case string:
			trimmed := strings.TrimSpace(n)
			if trimmed == "" {
				continue
			}
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil &&
				!math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
				return &parsed
			}
		}
		// Wrong type: malformed rule, degrade to absent.
		return nil
	}
	return nil
}

func ruleInt(raw map[string]interface{}, names ...string) *int {
	f := ruleFloat(raw, names...)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func ruleText(raw map[string]interface{}, names ...string) *string {
	for _, name := range names {
		if s, ok := raw[name].(string); ok && strings.TrimSpace(s) != "" {
			return &s
		}
	}
	return nil
}

func ruleList(raw map[string]interface{}, names ...string) []string {
	for _, name := range names {
		items, ok := raw[name].([]interface{})
		if !ok {
			continue
		}
		var out []string
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		if out != nil {
			return out
		}
	}
	return nil
}

// dedupe suppresses duplicates while keeping first-occurrence order.
func dedupe(items []string) []string {
	if len(items) < 2 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
