package domain

import (
	"errors"
	"time"
)

// ErrMissingIdentity is returned when a record that must reference an
// existing entity carries no stable id.
var ErrMissingIdentity = errors.New("record is missing a stable id")

// Country is the market a lender serves
type Country string

const (
	CountryCanada Country = "Canada"
	CountryUSA    Country = "USA"
	CountryBoth   Country = "Both"
)

// FundingSpeed is how quickly a lender typically funds an approved deal
type FundingSpeed string

const (
	FundingSpeed1Day      FundingSpeed = "1 Day"
	FundingSpeed2To3Days  FundingSpeed = "2-3 Days"
	FundingSpeed1Week     FundingSpeed = "1 Week"
	FundingSpeedOver1Week FundingSpeed = ">1 Week"
)

// SubmissionMethod is how deals are submitted to a lender
type SubmissionMethod string

const (
	SubmissionEmail  SubmissionMethod = "Email"
	SubmissionAPI    SubmissionMethod = "API"
	SubmissionPortal SubmissionMethod = "Portal"
	SubmissionPhone  SubmissionMethod = "Phone"
)

// RecordStatus distinguishes the three delete-adjacent states the UI
// conflates: a live record, a deactivated one, and one queued for purge.
type RecordStatus string

const (
	StatusActive              RecordStatus = "active"
	StatusDeactivated         RecordStatus = "deactivated"
	StatusPurgedPendingDelete RecordStatus = "purged_pending_deletion"
)

// Valid reports whether s is one of the known record states.
func (s RecordStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDeactivated, StatusPurgedPendingDelete:
		return true
	}
	return false
}

// Contact is a lender's point of contact. Each part is reconciled
// independently, so any of them may be unresolved.
type Contact struct {
	Name  *string `json:"name,omitempty" db:"contact_name"`
	Email *string `json:"email,omitempty" db:"contact_email"`
	Phone *string `json:"phone,omitempty" db:"contact_phone"`
}

// AmountRange is a dollar range. A nil bound means the source data never
// resolved one; it is never defaulted to zero in the canonical model.
type AmountRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// IntRange is an integer range with the same nil-bound semantics.
type IntRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Submission describes how deals reach the lender.
type Submission struct {
	Method   SubmissionMethod `json:"method,omitempty"`
	Email    *string          `json:"email,omitempty"`
	APIURL   *string          `json:"api_url,omitempty"`
	APIToken *string          `json:"-"`
}

// Lender is the canonical lender record. Every historical API shape is
// reconciled into this one model at the boundary; nothing past the
// reconciliation layer is alias-aware.
type Lender struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Contact      Contact      `json:"contact"`
	Website      *string      `json:"website,omitempty" db:"website"`
	Country      Country      `json:"country,omitempty" db:"country"`
	Status       RecordStatus `json:"status" db:"status"`
	LoanRange    AmountRange  `json:"loan_range"`
	FundingSpeed FundingSpeed `json:"funding_speed,omitempty" db:"funding_speed"`
	Submission   Submission   `json:"submission"`
	Version      int64        `json:"version" db:"version"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the lender is in the live state.
func (l *Lender) IsActive() bool {
	return l.Status == StatusActive
}
