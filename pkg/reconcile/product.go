package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

// Product assembles a canonical lender product from a raw record of any
// historical shape, with the same shape guarantee and missing-id contract
// as Lender.
func Product(raw map[string]interface{}) (*domain.LenderProduct, error) {
	p := &domain.LenderProduct{}

	if id := Text(raw, "id", "_id", "product_id", "productId", "uuid"); id != nil {
		p.ID = *id
	}
	if lenderID := Text(raw, "lender_id", "lenderId", "lender"); lenderID != nil {
		p.LenderID = *lenderID
	}
	if name := Text(raw, "name", "product_name", "productName", "title"); name != nil {
		p.Name = *name
	}

	if category := Text(raw, "category", "product_type", "productType", "type"); category != nil {
		p.Category = domain.NormalizeCategory(*category)
	} else {
		p.Category = domain.CategoryOther
	}
	p.CategoryLabel = p.Category.Label()

	p.CountryOffered = productCountry(raw)
	p.Status = recordStatus(raw)
	p.Description = Text(raw, "description", "notes")

	min := Number(raw, ProductMinAmount...)
	max := Number(raw, ProductMaxAmount...)
	if amountRange := object(raw, "amount_range"); amountRange != nil {
		if v := Number(amountRange, "min"); v != nil {
			min = v
		}
		if v := Number(amountRange, "max"); v != nil {
			max = v
		}
	}
	p.AmountRange.Min, p.AmountRange.Max = orderRange(min, max)

	rateMin := Number(raw, "min_rate", "minRate", "rate_min", "minimum_rate")
	rateMax := Number(raw, "max_rate", "maxRate", "rate_max", "maximum_rate")
	if rateRange := object(raw, "rate_range"); rateRange != nil {
		if v := Number(rateRange, "min"); v != nil {
			rateMin = v
		}
		if v := Number(rateRange, "max"); v != nil {
			rateMax = v
		}
	}
	p.RateRange.Min, p.RateRange.Max = orderRange(rateMin, rateMax)
	p.RateType = rateType(raw)

	termMin := Int(raw, "min_term_months", "minTermMonths", "term_min", "min_term")
	termMax := Int(raw, "max_term_months", "maxTermMonths", "term_max", "max_term")
	if termRange := object(raw, "term_range_months"); termRange != nil {
		if v := Int(termRange, "min"); v != nil {
			termMin = v
		}
		if v := Int(termRange, "max"); v != nil {
			termMax = v
		}
	}
	p.TermRangeMonths.Min, p.TermRangeMonths.Max = orderIntRange(termMin, termMax)

	p.RequiredDocuments = dedupeFold(StringList(raw, "required_documents", "requiredDocuments", "required_docs"))
	p.Rules = productRules(raw)

	if version := Int(raw, "version"); version != nil {
		p.Version = int64(*version)
	}

	if p.ID == "" {
		return p, domain.ErrMissingIdentity
	}
	return p, nil
}

// productRules decodes the embedded rules object. Older forms posted rule
// fields flat on the product body, so when no nested object exists the whole
// record is offered to the tolerant rules decoder, which ignores everything
// it does not recognize.
func productRules(raw map[string]interface{}) domain.EligibilityRules {
	source := raw
	if nested := object(raw, "rules"); nested != nil {
		source = nested
	}

	var rules domain.EligibilityRules
	encoded, err := json.Marshal(source)
	if err != nil {
		return rules
	}
	_ = rules.UnmarshalJSON(encoded)
	return rules
}

func productCountry(raw map[string]interface{}) domain.ProductCountry {
	country := Text(raw, "country_offered", "countryOffered", "country")
	if country == nil {
		return ""
	}
	switch strings.ToLower(*country) {
	case "ca", "canada":
		return domain.ProductCountryCA
	case "us", "usa", "united states":
		return domain.ProductCountryUS
	}
	return ""
}

func rateType(raw map[string]interface{}) domain.RateType {
	rt := Text(raw, "rate_type", "rateType")
	if rt == nil {
		return ""
	}
	switch strings.ToLower(*rt) {
	case "percentage", "percent", "apr", "interest":
		return domain.RatePercentage
	case "factor", "factor_rate", "buy_rate":
		return domain.RateFactor
	}
	return ""
}

// dedupeFold suppresses case-insensitive duplicates, keeping first
// occurrence order.
func dedupeFold(items []string) []string {
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
