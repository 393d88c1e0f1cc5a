package domain

import "time"

// DocumentType is a configurable document-type tag that products reference
// in their required-documents list.
type DocumentType struct {
	Code      string    `json:"code" db:"code"`
	Label     string    `json:"label" db:"label"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Built-in document-type codes seeded on first run.
const (
	DocBankStatements   = "bank_statements"
	DocTaxReturns       = "tax_returns"
	DocVoidCheque       = "void_cheque"
	DocDriversLicense   = "drivers_license"
	DocArticlesOfIncorp = "articles_of_incorporation"
	DocFinancialStmts   = "financial_statements"
)
