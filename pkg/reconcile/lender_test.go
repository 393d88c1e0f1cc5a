package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

func TestLender_LegacyShapes(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]interface{}
		verify func(t *testing.T, l *domain.Lender)
	}{
		{
			name: "snake_case legacy shape",
			raw: map[string]interface{}{
				"id":              "lender_17",
				"company_name":    "Maple Capital",
				"contact_email":   "deals@maplecap.ca",
				"contact_phone":   "416-555-0110",
				"min_loan_amount": 10000.0,
				"max_loan_amount": 250000.0,
				"country":         "canada",
				"funding_speed":   "2-3 Days",
				"is_active":       true,
			},
			verify: func(t *testing.T, l *domain.Lender) {
				assert.Equal(t, "Maple Capital", l.Name)
				require.NotNil(t, l.Contact.Email)
				assert.Equal(t, "deals@maplecap.ca", *l.Contact.Email)
				require.NotNil(t, l.LoanRange.Min)
				assert.Equal(t, 10000.0, *l.LoanRange.Min)
				assert.Equal(t, domain.CountryCanada, l.Country)
				assert.Equal(t, domain.FundingSpeed2To3Days, l.FundingSpeed)
				assert.Equal(t, domain.StatusActive, l.Status)
			},
		},
		{
			name: "camelCase v1 shape",
			raw: map[string]interface{}{
				"id":        "a2f9",
				"name":      "Rapid Funding LLC",
				"email":     "intake@rapidfunding.com",
				"minAmount": "5000",
				"maxAmount": "75000",
				"country":   "US",
				"isActive":  false,
				"submissionMethod": "api",
				"apiUrl":           "https://api.rapidfunding.com/v2/deals",
			},
			verify: func(t *testing.T, l *domain.Lender) {
				assert.Equal(t, "Rapid Funding LLC", l.Name)
				require.NotNil(t, l.LoanRange.Min)
				assert.Equal(t, 5000.0, *l.LoanRange.Min)
				assert.Equal(t, domain.CountryUSA, l.Country)
				assert.Equal(t, domain.StatusDeactivated, l.Status)
				assert.Equal(t, domain.SubmissionAPI, l.Submission.Method)
				require.NotNil(t, l.Submission.APIURL)
			},
		},
		{
			name: "absent is_active defaults to active",
			raw:  map[string]interface{}{"id": "x", "name": "Quiet Lender"},
			verify: func(t *testing.T, l *domain.Lender) {
				assert.Equal(t, domain.StatusActive, l.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Lender(tt.raw)
			require.NoError(t, err)
			tt.verify(t, l)
		})
	}
}

func TestLender_MissingIdentity(t *testing.T) {
	l, err := Lender(map[string]interface{}{"company_name": "No ID Corp"})
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)
	// Partial result still assembled so create paths can mint an id.
	require.NotNil(t, l)
	assert.Equal(t, "No ID Corp", l.Name)
}

func TestLender_RangeInvariant(t *testing.T) {
	t.Run("inverted bounds are swapped", func(t *testing.T) {
		l, err := Lender(map[string]interface{}{
			"id":              "l1",
			"min_loan_amount": 500000.0,
			"max_loan_amount": 10000.0,
		})
		require.NoError(t, err)
		require.NotNil(t, l.LoanRange.Min)
		require.NotNil(t, l.LoanRange.Max)
		assert.LessOrEqual(t, *l.LoanRange.Min, *l.LoanRange.Max)
	})

	t.Run("single bound never fabricates the other", func(t *testing.T) {
		l, err := Lender(map[string]interface{}{"id": "l2", "min_loan_amount": 10000.0})
		require.NoError(t, err)
		require.NotNil(t, l.LoanRange.Min)
		assert.Nil(t, l.LoanRange.Max)
	})
}

func TestLender_NonFiniteAmountsStayOut(t *testing.T) {
	// ParseFloat accepts "NaN" and "Inf" spellings; they must resolve to
	// absent, or the assembled record can no longer be marshalled.
	l, err := Lender(map[string]interface{}{
		"id":              "l3",
		"company_name":    "Bad Feed Capital",
		"min_loan_amount": "NaN",
		"max_loan_amount": "+Inf",
	})
	require.NoError(t, err)
	assert.Nil(t, l.LoanRange.Min)
	assert.Nil(t, l.LoanRange.Max)

	_, err = json.Marshal(l)
	require.NoError(t, err)
}

func TestLender_Idempotence(t *testing.T) {
	raw := map[string]interface{}{
		"id":              "lender_42",
		"company_name":    "North Star Capital",
		"legal_name":      "North Star Capital Holdings Inc",
		"contact_email":   "submissions@northstar.ca",
		"min_loan_amount": 25000.0,
		"max_loan_amount": "500000",
		"country":         "Both",
		"funding_speed":   "1 Week",
	}

	first, err := Lender(raw)
	require.NoError(t, err)

	// Round-trip the canonical form through JSON, as a re-ingest would.
	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	var roundTripped map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &roundTripped))

	second, err := Lender(roundTripped)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
