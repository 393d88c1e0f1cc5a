package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw      string
		expected Category
	}{
		{"business_loan", CategoryBusinessLoan},
		{"Business Loan", CategoryBusinessLoan},
		{"Term Loan", CategoryBusinessLoan},
		{"Working Capital", CategoryLineOfCredit},
		{"MCA", CategoryMerchantCashAdvance},
		{"mca", CategoryMerchantCashAdvance},
		{"SBA", CategorySBALoan},
		{"Commercial Real Estate", CategoryRealEstate},
		{"Bridge Financing Deluxe", CategoryOther},
		{"", CategoryOther},
		{"  equipment financing  ", CategoryEquipmentFinancing},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCategory(tt.raw))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Merchant Cash Advance", CategoryMerchantCashAdvance.Label())
	assert.Equal(t, "Other", Category("made_up").Label())
}
