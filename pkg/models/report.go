package models

import "time"

// MatchAttribute names the field attribute that carried the strongest signal
// for a match. Informational only; acceptance decisions never depend on it.
type MatchAttribute string

const (
	MatchAttributeLabel       MatchAttribute = "label"
	MatchAttributePlaceholder MatchAttribute = "placeholder"
	MatchAttributeName        MatchAttribute = "name"
	MatchAttributeAriaLabel   MatchAttribute = "aria_label"
	MatchAttributeNone        MatchAttribute = "none"
)

// MatchCandidateScore holds the per-attribute similarities for one field/rule
// pairing before weighting.
type MatchCandidateScore struct {
	Label       float64 `json:"label"`
	Placeholder float64 `json:"placeholder"`
	Name        float64 `json:"name"`
	AriaLabel   float64 `json:"aria_label"`
}

// FieldMatch is one accepted pairing between a form field and a profile value.
type FieldMatch struct {
	FieldID            string         `json:"field_id"`
	SelectorHandle     string         `json:"selector_handle"`
	ProfilePath        ProfilePath    `json:"profile_path"`
	Value              string         `json:"value"`
	Confidence         float64        `json:"confidence"`
	MatchedOnAttribute MatchAttribute `json:"matched_on_attribute"`
	RequiresReview     bool           `json:"requires_review"`
}

// UnmatchedField records a form field no profile value was offered for.
type UnmatchedField struct {
	FieldID        string `json:"field_id"`
	DisplayLabel   string `json:"display_label"`
	InputType      string `json:"input_type"`
	SelectorHandle string `json:"selector_handle"`
}

// UnmatchedProfileValue records a non-empty profile leaf that no field claimed.
type UnmatchedProfileValue struct {
	Path  ProfilePath `json:"path"`
	Value string      `json:"value"`
}

// ReportError marks a report produced from unusable input. Callers use it to
// distinguish "nothing matched" from "input was garbage".
type ReportError string

const (
	// ReportErrorNone is the zero marker on well-formed runs.
	ReportErrorNone ReportError = ""
	// ReportErrorMalformedInput flags a missing or untyped profile or scan payload.
	ReportErrorMalformedInput ReportError = "malformed_input"
)

// MappingReport is the full output of one matching run: accepted matches plus
// both unmatched sides. PageURL and ScannedAt are caller-supplied bookkeeping,
// passed through opaquely.
type MappingReport struct {
	ID                    string                  `json:"id,omitempty"`
	PageURL               string                  `json:"page_url,omitempty"`
	ScannedAt             time.Time               `json:"scanned_at,omitempty"`
	Matches               []FieldMatch            `json:"matches"`
	UnmatchedFields       []UnmatchedField        `json:"unmatched_fields"`
	UnmatchedProfilePaths []UnmatchedProfileValue `json:"unmatched_profile_paths"`
	AggregateConfidence   float64                 `json:"aggregate_confidence"`
	NeedsReview           bool                    `json:"needs_review"`
	Error                 ReportError             `json:"error,omitempty"`
	Status                ReportStatus            `json:"status,omitempty"`
	ReviewedBy            *string                 `json:"reviewed_by,omitempty"`
	ReviewedAt            *time.Time              `json:"reviewed_at,omitempty"`
	CreatedAt             time.Time               `json:"created_at,omitempty"`
	UpdatedAt             time.Time               `json:"updated_at,omitempty"`
}

// ReportStatus tracks the review lifecycle of a persisted report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusApproved ReportStatus = "approved"
	ReportStatusRejected ReportStatus = "rejected"
)
