// Package validation holds the structural gates applied to write payloads
// before they enter the reconciliation seam. Validation here is deliberately
// loose: it rejects only bodies reconciliation cannot make sense of (a rules
// value that is not an object, a document list that is not an array), never
// operator typos, which degrade tolerantly downstream.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const productSchema = `{
	"type": "object",
	"properties": {
		"rules": {"type": "object"},
		"required_documents": {"type": "array", "items": {"type": "string"}},
		"requiredDocuments": {"type": "array", "items": {"type": "string"}}
	}
}`

const lenderSchema = `{
	"type": "object",
	"properties": {
		"contact": {"type": "object"},
		"loan_range": {"type": "object"},
		"submission": {"type": "object"}
	}
}`

var (
	productValidator = gojsonschema.NewStringLoader(productSchema)
	lenderValidator  = gojsonschema.NewStringLoader(lenderSchema)
)

// ProductBody checks that a raw product payload is structurally usable.
func ProductBody(raw map[string]interface{}) error {
	return validate(raw, productValidator)
}

// LenderBody checks that a raw lender payload is structurally usable.
func LenderBody(raw map[string]interface{}) error {
	return validate(raw, lenderValidator)
}

func validate(raw map[string]interface{}, schema gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var messages []string
	for _, desc := range result.Errors() {
		messages = append(messages, desc.String())
	}
	return fmt.Errorf("invalid request body: %s", strings.Join(messages, "; "))
}
