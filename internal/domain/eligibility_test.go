package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestEvaluate_AccumulatesAllFailures(t *testing.T) {
	rules := &EligibilityRules{
		MinCreditScore:     intPtr(700),
		ExcludedIndustries: []string{"Cannabis"},
	}
	profile := &ApplicantProfile{
		CreditScore: intPtr(650),
		Industry:    strPtr("Cannabis"),
	}

	v := Evaluate(rules, profile)

	assert.Equal(t, VerdictIneligible, v.Status)
	// Both disqualifying factors reported, not just the first.
	assert.Equal(t, []string{ReasonCreditScoreBelowMinimum, ReasonIndustryExcluded}, v.Reasons)
	assert.Empty(t, v.MissingFields)
}

func TestEvaluate_MissingDataIsIndeterminate(t *testing.T) {
	rules := &EligibilityRules{MinCreditScore: intPtr(700)}

	v := Evaluate(rules, &ApplicantProfile{})

	assert.Equal(t, VerdictIndeterminate, v.Status)
	assert.Equal(t, []string{FieldCreditScore}, v.MissingFields)
	assert.Empty(t, v.Reasons)
}

func TestEvaluate_BoundaryEqualityPasses(t *testing.T) {
	tests := []struct {
		name    string
		rules   EligibilityRules
		profile ApplicantProfile
	}{
		{
			name:    "credit score exactly at minimum",
			rules:   EligibilityRules{MinCreditScore: intPtr(700)},
			profile: ApplicantProfile{CreditScore: intPtr(700)},
		},
		{
			name:    "revenue exactly at minimum",
			rules:   EligibilityRules{MinAnnualRevenue: floatPtr(250000)},
			profile: ApplicantProfile{AnnualRevenue: floatPtr(250000)},
		},
		{
			name:    "debt ratio exactly at maximum",
			rules:   EligibilityRules{MaxDebtToIncome: floatPtr(0.40)},
			profile: ApplicantProfile{DebtToIncome: floatPtr(0.40)},
		},
		{
			name:    "time in business exactly at minimum",
			rules:   EligibilityRules{TimeInBusinessMonths: intPtr(24)},
			profile: ApplicantProfile{TimeInBusinessMonths: intPtr(24)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(&tt.rules, &tt.profile)
			assert.Equal(t, VerdictEligible, v.Status)
			assert.Empty(t, v.Reasons)
		})
	}
}

func TestEvaluate_EmptyRulesAlwaysEligible(t *testing.T) {
	profiles := []*ApplicantProfile{
		{},
		{CreditScore: intPtr(300), Industry: strPtr("Cannabis"), State: strPtr("NY")},
		nil,
	}

	for _, profile := range profiles {
		v := Evaluate(&EligibilityRules{}, profile)
		assert.Equal(t, VerdictEligible, v.Status)
		assert.Empty(t, v.Reasons)
		assert.Empty(t, v.MissingFields)
	}
}

func TestEvaluate_IndustryChecks(t *testing.T) {
	t.Run("exclusion is case-insensitive", func(t *testing.T) {
		rules := &EligibilityRules{ExcludedIndustries: []string{"cannabis"}}
		v := Evaluate(rules, &ApplicantProfile{Industry: strPtr("CANNABIS")})
		assert.Equal(t, VerdictIneligible, v.Status)
		assert.Equal(t, []string{ReasonIndustryExcluded}, v.Reasons)
	})

	t.Run("preference outside list is advisory not disqualifying", func(t *testing.T) {
		rules := &EligibilityRules{PreferredIndustries: []string{"Construction", "Logistics"}}
		v := Evaluate(rules, &ApplicantProfile{Industry: strPtr("Retail")})
		assert.Equal(t, VerdictEligible, v.Status)
		assert.Len(t, v.Advisory, 1)
	})

	t.Run("exclusion list with unknown industry is indeterminate", func(t *testing.T) {
		rules := &EligibilityRules{ExcludedIndustries: []string{"Cannabis"}}
		v := Evaluate(rules, &ApplicantProfile{})
		assert.Equal(t, VerdictIndeterminate, v.Status)
		assert.Equal(t, []string{FieldIndustry}, v.MissingFields)
	})
}

func TestEvaluate_RegionExclusion(t *testing.T) {
	rules := &EligibilityRules{ExcludedRegions: []string{"NY", "NV"}}

	v := Evaluate(rules, &ApplicantProfile{State: strPtr("ny")})
	assert.Equal(t, VerdictIneligible, v.Status)
	assert.Equal(t, []string{ReasonRegionExcluded}, v.Reasons)

	v = Evaluate(rules, &ApplicantProfile{State: strPtr("ON")})
	assert.Equal(t, VerdictEligible, v.Status)
}

func TestEvaluate_FailureOutranksMissing(t *testing.T) {
	rules := &EligibilityRules{
		MinCreditScore:   intPtr(700),
		MinAnnualRevenue: floatPtr(500000),
	}
	profile := &ApplicantProfile{CreditScore: intPtr(600)}

	v := Evaluate(rules, profile)

	// One rule failed, one could not be checked: the failure decides.
	assert.Equal(t, VerdictIneligible, v.Status)
	assert.Equal(t, []string{ReasonCreditScoreBelowMinimum}, v.Reasons)
	assert.Equal(t, []string{FieldAnnualRevenue}, v.MissingFields)
}

func TestEvaluate_AdvancedLogicSurfacedNotEvaluated(t *testing.T) {
	logic := "credit_score > 700 or (annual_revenue > 1000000 and state != 'NY')"
	rules := &EligibilityRules{AdvancedLogic: &logic}

	// The profile would fail the expression if it were executed; the verdict
	// must stay eligible with the text surfaced for a human.
	v := Evaluate(rules, &ApplicantProfile{CreditScore: intPtr(500)})

	assert.Equal(t, VerdictEligible, v.Status)
	require.Len(t, v.Advisory, 1)
	assert.Contains(t, v.Advisory[0], logic)
}

func TestEligibilityRules_TolerantDecoding(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		verify func(t *testing.T, r EligibilityRules)
	}{
		{
			name: "numeric strings coerce",
			body: `{"min_credit_score": "680", "max_debt_to_income": "0.45"}`,
			verify: func(t *testing.T, r EligibilityRules) {
				require.NotNil(t, r.MinCreditScore)
				assert.Equal(t, 680, *r.MinCreditScore)
				require.NotNil(t, r.MaxDebtToIncome)
				assert.Equal(t, 0.45, *r.MaxDebtToIncome)
			},
		},
		{
			name: "malformed values degrade to absent",
			body: `{"min_credit_score": [700], "min_annual_revenue": {"v": 1}}`,
			verify: func(t *testing.T, r EligibilityRules) {
				assert.Nil(t, r.MinCreditScore)
				assert.Nil(t, r.MinAnnualRevenue)
			},
		},
		{
			name: "non-finite numeric strings degrade to absent",
			body: `{"min_annual_revenue": "NaN", "max_debt_to_income": "Inf"}`,
			verify: func(t *testing.T, r EligibilityRules) {
				assert.Nil(t, r.MinAnnualRevenue)
				assert.Nil(t, r.MaxDebtToIncome)
			},
		},
		{
			name: "camelCase editor fields accepted",
			body: `{"minCreditScore": 640, "excludedIndustries": ["Gambling"]}`,
			verify: func(t *testing.T, r EligibilityRules) {
				require.NotNil(t, r.MinCreditScore)
				assert.Equal(t, 640, *r.MinCreditScore)
				assert.Equal(t, []string{"Gambling"}, r.ExcludedIndustries)
			},
		},
		{
			name: "required docs deduped keeping order",
			body: `{"required_docs": ["bank_statements", "tax_returns", "bank_statements"]}`,
			verify: func(t *testing.T, r EligibilityRules) {
				assert.Equal(t, []string{"bank_statements", "tax_returns"}, r.RequiredDocs)
			},
		},
		{
			name: "non-object body becomes empty rules",
			body: `"free text"`,
			verify: func(t *testing.T, r EligibilityRules) {
				assert.True(t, r.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r EligibilityRules
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			tt.verify(t, r)
		})
	}
}

func TestMatchScore_PreferredIndustryBonus(t *testing.T) {
	rules := &EligibilityRules{PreferredIndustries: []string{"Construction"}}
	inPref := &ApplicantProfile{CreditScore: intPtr(700), Industry: strPtr("Construction")}
	outPref := &ApplicantProfile{CreditScore: intPtr(700), Industry: strPtr("Retail")}

	assert.Greater(t, MatchScore(rules, inPref), MatchScore(rules, outPref))
}
