package domain

import "strings"

// Category is the canonical product category vocabulary. Older forms used a
// parallel free-text vocabulary ("Term Loan", "Working Capital", ...); those
// labels are mapped onto this enumeration at the reconciliation boundary and
// the two vocabularies never meet in storage.
type Category string

const (
	CategoryBusinessLoan        Category = "business_loan"
	CategoryEquipmentFinancing  Category = "equipment_financing"
	CategoryLineOfCredit        Category = "line_of_credit"
	CategoryInvoiceFactoring    Category = "invoice_factoring"
	CategoryMerchantCashAdvance Category = "merchant_cash_advance"
	CategoryRealEstate          Category = "real_estate"
	CategorySBALoan             Category = "sba_loan"
	CategoryOther               Category = "other"
)

var categoryLabels = map[Category]string{
	CategoryBusinessLoan:        "Business Loan",
	CategoryEquipmentFinancing:  "Equipment Financing",
	CategoryLineOfCredit:        "Line of Credit",
	CategoryInvoiceFactoring:    "Invoice Factoring",
	CategoryMerchantCashAdvance: "Merchant Cash Advance",
	CategoryRealEstate:          "Real Estate",
	CategorySBALoan:             "SBA Loan",
	CategoryOther:               "Other",
}

// legacyCategories maps the free-text vocabulary still present in stored
// data onto canonical tags.
var legacyCategories = map[string]Category{
	"term loan":              CategoryBusinessLoan,
	"term_loan":              CategoryBusinessLoan,
	"working capital":        CategoryLineOfCredit,
	"working_capital":        CategoryLineOfCredit,
	"loc":                    CategoryLineOfCredit,
	"equipment":              CategoryEquipmentFinancing,
	"equipment leasing":      CategoryEquipmentFinancing,
	"factoring":              CategoryInvoiceFactoring,
	"invoice financing":      CategoryInvoiceFactoring,
	"mca":                    CategoryMerchantCashAdvance,
	"cash advance":           CategoryMerchantCashAdvance,
	"commercial real estate": CategoryRealEstate,
	"cre":                    CategoryRealEstate,
	"sba":                    CategorySBALoan,
	"sba 7(a)":               CategorySBALoan,
}

// Valid reports whether c is one of the canonical tags.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for a canonical tag.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// NormalizeCategory resolves either vocabulary to a canonical tag. Unknown
// input maps to CategoryOther rather than failing, since category values are
// operator-entered.
func NormalizeCategory(raw string) Category {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return CategoryOther
	}

	if c := Category(strings.ReplaceAll(normalized, " ", "_")); c.Valid() {
		return c
	}

	if c, ok := legacyCategories[normalized]; ok {
		return c
	}

	// Canonical labels themselves are accepted ("Business Loan" -> business_loan)
	for c, label := range categoryLabels {
		if strings.EqualFold(label, raw) {
			return c
		}
	}

	return CategoryOther
}
