package reconcile

import (
	"strings"

	"github.com/lenderdesk/lenderdesk/internal/domain"
)

// Lender assembles a canonical lender from a raw record of any historical
// shape. The full canonical field set is always present on the result, so
// callers never need existence checks; unresolved fields are nil.
//
// A raw record without a resolvable id returns the assembled lender together
// with domain.ErrMissingIdentity. Callers that mint ids (create paths) may
// keep the result; everything else must treat it as a data-integrity error.
func Lender(raw map[string]interface{}) (*domain.Lender, error) {
	l := &domain.Lender{}

	if id := Text(raw, "id", "_id", "lender_id", "lenderId", "uuid"); id != nil {
		l.ID = *id
	}

	if name := Text(raw, LenderDisplayName...); name != nil {
		l.Name = *name
	}

	l.Contact = lenderContact(raw)
	l.Website = Text(raw, "website", "website_url", "url")
	l.Country = lenderCountry(raw)
	l.Status = recordStatus(raw)

	min := Number(raw, LenderMinAmount...)
	max := Number(raw, LenderMaxAmount...)
	if loanRange := object(raw, "loan_range"); loanRange != nil {
		if v := Number(loanRange, "min"); v != nil {
			min = v
		}
		if v := Number(loanRange, "max"); v != nil {
			max = v
		}
	}
	l.LoanRange.Min, l.LoanRange.Max = orderRange(min, max)

	if speed := Text(raw, "funding_speed", "fundingSpeed", "speed"); speed != nil {
		l.FundingSpeed = fundingSpeed(*speed)
	}

	l.Submission = lenderSubmission(raw)

	if version := Int(raw, "version"); version != nil {
		l.Version = int64(*version)
	}

	if l.ID == "" {
		return l, domain.ErrMissingIdentity
	}
	return l, nil
}

func lenderContact(raw map[string]interface{}) domain.Contact {
	source := raw
	if nested := object(raw, "contact"); nested != nil {
		// Canonical shape groups the triple; each part still falls back to
		// the flat aliases independently.
		source = nested
		return domain.Contact{
			Name:  Text(source, "name", "contact_name", "contactName"),
			Email: Text(source, ContactEmail...),
			Phone: Text(source, ContactPhone...),
		}
	}
	return domain.Contact{
		Name:  Text(raw, "contact_name", "contactName", "contact"),
		Email: Text(raw, ContactEmail...),
		Phone: Text(raw, ContactPhone...),
	}
}

func lenderSubmission(raw map[string]interface{}) domain.Submission {
	source := raw
	if nested := object(raw, "submission"); nested != nil {
		source = nested
	}

	s := domain.Submission{
		Email:    Text(source, "email", "submission_email", "submissionEmail"),
		APIURL:   Text(source, "api_url", "apiUrl", "api_endpoint"),
		APIToken: Text(source, "api_token", "apiToken"),
	}

	if method := Text(source, "method", "submission_method", "submissionMethod"); method != nil {
		switch strings.ToLower(*method) {
		case "email":
			s.Method = domain.SubmissionEmail
		case "api":
			s.Method = domain.SubmissionAPI
		case "portal":
			s.Method = domain.SubmissionPortal
		case "phone":
			s.Method = domain.SubmissionPhone
		}
	}
	return s
}

func lenderCountry(raw map[string]interface{}) domain.Country {
	country := Text(raw, "country", "country_offered", "countryOffered")
	if country == nil {
		return ""
	}
	switch strings.ToLower(*country) {
	case "canada", "ca":
		return domain.CountryCanada
	case "usa", "us", "united states":
		return domain.CountryUSA
	case "both":
		return domain.CountryBoth
	}
	return ""
}

func fundingSpeed(raw string) domain.FundingSpeed {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1 day", "same day", "24 hours":
		return domain.FundingSpeed1Day
	case "2-3 days", "2 to 3 days":
		return domain.FundingSpeed2To3Days
	case "1 week", "5-7 days":
		return domain.FundingSpeed1Week
	case ">1 week", "over 1 week", "1+ week":
		return domain.FundingSpeedOver1Week
	}
	return ""
}

// recordStatus resolves the tri-state status. Canonical "status" wins; older
// shapes carry only an is_active flag; absence means active.
func recordStatus(raw map[string]interface{}) domain.RecordStatus {
	if status := Text(raw, "status"); status != nil {
		if s := domain.RecordStatus(strings.ToLower(*status)); s.Valid() {
			return s
		}
	}
	if active := Flag(raw, "is_active", "isActive", "active"); active != nil && !*active {
		return domain.StatusDeactivated
	}
	return domain.StatusActive
}
