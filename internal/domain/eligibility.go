package domain

import (
	"fmt"
	"strings"
)

// VerdictStatus is the three-way outcome of an eligibility evaluation.
type VerdictStatus string

const (
	VerdictEligible      VerdictStatus = "eligible"
	VerdictIneligible    VerdictStatus = "ineligible"
	VerdictIndeterminate VerdictStatus = "indeterminate"
)

// Failure reasons, one per hard rule.
const (
	ReasonCreditScoreBelowMinimum    = "credit_score_below_minimum"
	ReasonAnnualRevenueBelowMinimum  = "annual_revenue_below_minimum"
	ReasonTimeInBusinessBelowMinimum = "time_in_business_below_minimum"
	ReasonDebtRatioAboveMaximum      = "debt_ratio_above_maximum"
	ReasonIndustryExcluded           = "industry_excluded"
	ReasonRegionExcluded             = "region_excluded"
)

// Applicant field names as they appear in missing-field reports. These match
// the advanced-logic variable namespace.
const (
	FieldCreditScore    = "credit_score"
	FieldAnnualRevenue  = "annual_revenue"
	FieldTimeInBusiness = "time_in_business"
	FieldDebtRatio      = "debt_ratio"
	FieldIndustry       = "industry"
	FieldState          = "state"
)

// Verdict is the outcome of evaluating one applicant against one product's
// rules. Reasons and MissingFields are ordered by rule evaluation order.
// MissingFields uses the advanced-logic variable namespace (Field*
// constants, e.g. "credit_score"), not the rule property names, so one
// vocabulary covers both reports and operator-written expressions.
// Advisory carries anything a human reviewer must see that the evaluator
// did not act on.
type Verdict struct {
	Status        VerdictStatus `json:"status"`
	Reasons       []string      `json:"reasons,omitempty"`
	MissingFields []string      `json:"missing_fields,omitempty"`
	Advisory      []string      `json:"advisory,omitempty"`
}

// Evaluate checks an applicant profile against a product's eligibility rules.
//
// Every defined rule is checked; failures accumulate rather than
// short-circuiting so a reviewer sees all disqualifying factors at once.
// A rule whose applicant field is absent contributes a missing field instead
// of a pass or fail. Precedence: any failure wins over missing data, which
// wins over eligible.
//
// Required documents are not checked here (document fulfillment is a
// separate workflow), and advanced logic is never executed: its raw text is
// surfaced as an advisory note so silence cannot be mistaken for evaluation.
func Evaluate(rules *EligibilityRules, profile *ApplicantProfile) Verdict {
	var v Verdict

	if rules == nil {
		rules = &EligibilityRules{}
	}
	if profile == nil {
		profile = &ApplicantProfile{}
	}

	// Numeric thresholds, all inclusive.
	if rules.MinCreditScore != nil {
		switch {
		case profile.CreditScore == nil:
			v.missing(FieldCreditScore)
		case *profile.CreditScore < *rules.MinCreditScore:
			v.fail(ReasonCreditScoreBelowMinimum)
		}
	}
	if rules.MinAnnualRevenue != nil {
		switch {
		case profile.AnnualRevenue == nil:
			v.missing(FieldAnnualRevenue)
		case *profile.AnnualRevenue < *rules.MinAnnualRevenue:
			v.fail(ReasonAnnualRevenueBelowMinimum)
		}
	}
	if rules.TimeInBusinessMonths != nil {
		switch {
		case profile.TimeInBusinessMonths == nil:
			v.missing(FieldTimeInBusiness)
		case *profile.TimeInBusinessMonths < *rules.TimeInBusinessMonths:
			v.fail(ReasonTimeInBusinessBelowMinimum)
		}
	}
	if rules.MaxDebtToIncome != nil {
		switch {
		case profile.DebtToIncome == nil:
			v.missing(FieldDebtRatio)
		case *profile.DebtToIncome > *rules.MaxDebtToIncome:
			v.fail(ReasonDebtRatioAboveMaximum)
		}
	}

	// Industry exclusion is a hard rule; preference is advisory only.
	if len(rules.ExcludedIndustries) > 0 {
		switch {
		case profile.Industry == nil:
			v.missing(FieldIndustry)
		case containsFold(rules.ExcludedIndustries, *profile.Industry):
			v.fail(ReasonIndustryExcluded)
		}
	}
	if len(rules.PreferredIndustries) > 0 && profile.Industry != nil &&
		!containsFold(rules.PreferredIndustries, *profile.Industry) {
		v.advise(fmt.Sprintf("industry %q is outside the lender's preferred industries", *profile.Industry))
	}

	if len(rules.ExcludedRegions) > 0 {
		switch {
		case profile.State == nil:
			v.missing(FieldState)
		case containsFold(rules.ExcludedRegions, *profile.State):
			v.fail(ReasonRegionExcluded)
		}
	}

	if rules.AdvancedLogic != nil {
		v.advise("advanced logic requires manual review: " + *rules.AdvancedLogic)
	}

	switch {
	case len(v.Reasons) > 0:
		v.Status = VerdictIneligible
	case len(v.MissingFields) > 0:
		v.Status = VerdictIndeterminate
	default:
		v.Status = VerdictEligible
	}
	return v
}

// MatchScore is a coarse 0-100 ordering score for an applicant/product pair.
// It rewards credit and revenue headroom over the thresholds and a preferred
// industry; it is only meaningful alongside the verdict.
func MatchScore(rules *EligibilityRules, profile *ApplicantProfile) float64 {
	if rules == nil || profile == nil {
		return 0
	}

	score := 0.0

	// Credit headroom (40 points max), normalized over the 300-850 band.
	if profile.CreditScore != nil {
		normalized := float64(*profile.CreditScore-300) / 550.0
		if normalized < 0 {
			normalized = 0
		}
		if normalized > 1 {
			normalized = 1
		}
		score += 40 * normalized
	}

	// Revenue over the minimum (up to 2x counts, 30 points max).
	if profile.AnnualRevenue != nil && rules.MinAnnualRevenue != nil && *rules.MinAnnualRevenue > 0 {
		ratio := *profile.AnnualRevenue / *rules.MinAnnualRevenue
		if ratio > 2 {
			ratio = 2
		}
		if ratio > 0 {
			score += 15 * ratio
		}
	}

	// Preferred industry (15 points); no preference list grants the same.
	if len(rules.PreferredIndustries) == 0 {
		score += 15
	} else if profile.Industry != nil && containsFold(rules.PreferredIndustries, *profile.Industry) {
		score += 15
	}

	// Established business (15 points).
	if profile.TimeInBusinessMonths != nil && *profile.TimeInBusinessMonths >= 24 {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}

func (v *Verdict) fail(reason string) {
	v.Reasons = append(v.Reasons, reason)
}

func (v *Verdict) missing(field string) {
	v.MissingFields = append(v.MissingFields, field)
}

func (v *Verdict) advise(note string) {
	v.Advisory = append(v.Advisory, note)
}

// containsFold reports whether items contains target, case-insensitively.
func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
