// Package reconcile resolves canonical field values from raw lender and
// product records of unknown origin.
//
// At least three historical API shapes feed this system (snake_case legacy,
// camelCase v1, and the display shape used by list pages), each naming the
// same logical fields differently. This package is the single seam where
// those aliases are known; everything past it sees only the canonical model.
//
// All functions are pure and total: no input, including nil maps and oddly
// typed values, causes a panic or an error. A field that cannot be resolved
// is simply absent.
package reconcile

import (
	"math"
	"strconv"
	"strings"
)

// Alias precedence tables. Order is contractual: the first defined,
// non-empty property wins regardless of the raw record's own key order.
// Canonical names sort first wherever they participate, which is what makes
// re-reconciling an already-canonical record a no-op.
var (
	LenderMinAmount  = []string{"min_loan_amount", "min_amount", "minAmount", "minimum_amount"}
	LenderMaxAmount  = []string{"max_loan_amount", "max_amount", "maxAmount", "maximum_amount"}
	ProductMinAmount = []string{"minimumLendingAmount", "min_amount", "minAmount", "minimum_amount"}
	ProductMaxAmount = []string{"maximumLendingAmount", "max_amount", "maxAmount", "maximum_amount"}

	LenderDisplayName = []string{"company_name", "name", "legal_name", "display_name"}
	ContactEmail      = []string{"contact_email", "email"}
	ContactPhone      = []string{"contact_phone", "phone"}
)

// Value returns the value at the highest-precedence alias that is present,
// non-nil, and not an empty string. It never coerces types.
func Value(raw map[string]interface{}, aliases ...string) interface{} {
	for _, alias := range aliases {
		v, ok := raw[alias]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			continue
		}
		return v
	}
	return nil
}

// Number resolves a numeric field. JSON numbers pass through; numeric-looking
// strings are parsed. Anything else, including an unparseable string, is
// absent; NaN never enters the canonical model.
func Number(raw map[string]interface{}, aliases ...string) *float64 {
	switch v := Value(raw, aliases...).(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			// ParseFloat accepts "NaN" and "Inf" spellings.
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// Int resolves a numeric field truncated to an integer.
func Int(raw map[string]interface{}, aliases ...string) *int {
	f := Number(raw, aliases...)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Text resolves a string field. Non-string values are absent, per the
// no-coercion rule.
func Text(raw map[string]interface{}, aliases ...string) *string {
	if s, ok := Value(raw, aliases...).(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil
		}
		return &trimmed
	}
	return nil
}

// Flag resolves a boolean field. Only real booleans count.
func Flag(raw map[string]interface{}, aliases ...string) *bool {
	if b, ok := Value(raw, aliases...).(bool); ok {
		return &b
	}
	return nil
}

// StringList resolves an array-of-strings field, skipping non-string or
// empty entries.
func StringList(raw map[string]interface{}, aliases ...string) []string {
	items, ok := Value(raw, aliases...).([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, isString := item.(string); isString && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// object returns a nested object field, for canonical shapes that group
// values ("contact", "loan_range", "submission").
func object(raw map[string]interface{}, key string) map[string]interface{} {
	if m, ok := raw[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// orderRange returns the bounds with min <= max enforced by swapping, but
// only when both resolved; a lone bound never fabricates its partner.
func orderRange(min, max *float64) (*float64, *float64) {
	if min != nil && max != nil && *min > *max {
		return max, min
	}
	return min, max
}

func orderIntRange(min, max *int) (*int, *int) {
	if min != nil && max != nil && *min > *max {
		return max, min
	}
	return min, max
}
