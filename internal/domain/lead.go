package domain

import (
	"strings"
	"time"
)

type Lead struct {
	ID              string     `json:"id"`
	LeadNumber      string     `json:"leadNumber"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Company         string     `json:"company,omitempty"`
	Address         string     `json:"address,omitempty"`
	MoveFrom        string     `json:"moveFrom,omitempty"`
	MoveTo          string     `json:"moveTo,omitempty"`
	MoveDate        *time.Time `json:"moveDate,omitempty"`
	Source          LeadSource `json:"source"`
	Status          LeadStatus `json:"status"`
	Rating          LeadRating `json:"rating"`
	Score           int        `json:"score"`
	Budget          float64    `json:"budget"`
	Timeline        Timeline   `json:"timeline,omitempty"`
	DecisionMaker   bool       `json:"decisionMaker"`
	EstimatedValue  *float64   `json:"estimatedValue,omitempty"`
	AssignedTo      string     `json:"assignedTo,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Tags            []string   `json:"tags"`
	ConvertedAt     *time.Time `json:"convertedAt,omitempty"`
	ConversionValue *float64   `json:"conversionValue,omitempty"`
	OpportunityID   string     `json:"opportunityId,omitempty"`
	LastContactedAt *time.Time `json:"lastContactedAt,omitempty"`
	CreatedBy       string     `json:"createdBy"`
	UpdatedBy       string     `json:"updatedBy"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Version         int        `json:"version"`
}

// FullName joins first and last name.
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// DisplayID prefers the human lead number over the opaque id.
func (l *Lead) DisplayID() string {
	if l.LeadNumber != "" {
		return l.LeadNumber
	}
	return l.ID
}

// ApplyDefaults fills in the values a new lead gets when the caller leaves
// them empty. Rating is left alone here; it is derived after scoring.
func (l *Lead) ApplyDefaults() {
	if l.Status == "" {
		l.Status = LeadNew
	}
	if l.Source == "" {
		l.Source = SourceOther
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
}

// Validate checks required fields and enum membership. All problems are
// reported together as field errors.
func (l *Lead) Validate() error {
	var fields []FieldError
	if strings.TrimSpace(l.FirstName) == "" {
		fields = append(fields, FieldError{Field: "firstName", Msg: "is required"})
	}
	if strings.TrimSpace(l.LastName) == "" {
		fields = append(fields, FieldError{Field: "lastName", Msg: "is required"})
	}
	if fe, ok := checkEmail("email", l.Email); !ok {
		fields = append(fields, fe)
	}
	if fe, ok := checkPhone("phone", l.Phone); !ok {
		fields = append(fields, fe)
	}
	if l.Source != "" && !ValidLeadSources[l.Source] {
		fields = append(fields, FieldError{Field: "source", Msg: "invalid lead source " + string(l.Source)})
	}
	if l.Status != "" && !ValidLeadStatuses[l.Status] {
		fields = append(fields, FieldError{Field: "status", Msg: "invalid lead status " + string(l.Status)})
	}
	if l.Rating != "" && !ValidLeadRatings[l.Rating] {
		fields = append(fields, FieldError{Field: "rating", Msg: "invalid rating " + string(l.Rating)})
	}
	if l.Timeline != "" && !ValidTimelines[l.Timeline] {
		fields = append(fields, FieldError{Field: "timeline", Msg: "invalid timeline " + string(l.Timeline)})
	}
	if l.Budget < 0 {
		fields = append(fields, FieldError{Field: "budget", Msg: "must be >= 0"})
	}
	if l.EstimatedValue != nil && *l.EstimatedValue < 0 {
		fields = append(fields, FieldError{Field: "estimatedValue", Msg: "must be >= 0"})
	}
	if l.Score < 0 || l.Score > 100 {
		fields = append(fields, FieldError{Field: "score", Msg: "must be between 0 and 100"})
	}
	if len(fields) > 0 {
		return NewValidationError("invalid lead", fields...)
	}
	return nil
}

// LeadPatch is a partial update. Nil fields are left unchanged. Version, when
// set, must match the stored record.
type LeadPatch struct {
	FirstName      *string     `json:"firstName,omitempty"`
	LastName       *string     `json:"lastName,omitempty"`
	Email          *string     `json:"email,omitempty"`
	Phone          *string     `json:"phone,omitempty"`
	Company        *string     `json:"company,omitempty"`
	Address        *string     `json:"address,omitempty"`
	MoveFrom       *string     `json:"moveFrom,omitempty"`
	MoveTo         *string     `json:"moveTo,omitempty"`
	MoveDate       *time.Time  `json:"moveDate,omitempty"`
	Source         *LeadSource `json:"source,omitempty"`
	Status         *LeadStatus `json:"status,omitempty"`
	Rating         *LeadRating `json:"rating,omitempty"`
	Budget         *float64    `json:"budget,omitempty"`
	Timeline       *Timeline   `json:"timeline,omitempty"`
	DecisionMaker  *bool       `json:"decisionMaker,omitempty"`
	EstimatedValue *float64    `json:"estimatedValue,omitempty"`
	AssignedTo     *string     `json:"assignedTo,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	LastContacted  *time.Time  `json:"lastContactedAt,omitempty"`
	Version        *int        `json:"version,omitempty"`
}

// TouchesScore reports whether the patch carries any scoring input.
func (p LeadPatch) TouchesScore() bool {
	return p.Source != nil || p.Budget != nil || p.Timeline != nil || p.DecisionMaker != nil
}

// ApplyTo merges the patch onto l. Status is not applied here because it must
// go through the state machine first.
func (p LeadPatch) ApplyTo(l *Lead) {
	l.FirstName = FromPtrWithDefault(l.FirstName, p.FirstName)
	l.LastName = FromPtrWithDefault(l.LastName, p.LastName)
	l.Email = FromPtrWithDefault(l.Email, p.Email)
	l.Phone = FromPtrWithDefault(l.Phone, p.Phone)
	l.Company = FromPtrWithDefault(l.Company, p.Company)
	l.Address = FromPtrWithDefault(l.Address, p.Address)
	l.MoveFrom = FromPtrWithDefault(l.MoveFrom, p.MoveFrom)
	l.MoveTo = FromPtrWithDefault(l.MoveTo, p.MoveTo)
	l.AssignedTo = FromPtrWithDefault(l.AssignedTo, p.AssignedTo)
	l.Notes = FromPtrWithDefault(l.Notes, p.Notes)
	l.Budget = Float64FromPtrWithDefault(l.Budget, p.Budget)
	l.DecisionMaker = BoolFromPtrWithDefault(l.DecisionMaker, p.DecisionMaker)
	if p.MoveDate != nil {
		l.MoveDate = p.MoveDate
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Rating != nil {
		l.Rating = *p.Rating
	}
	if p.Timeline != nil {
		l.Timeline = *p.Timeline
	}
	if p.EstimatedValue != nil {
		l.EstimatedValue = Ptr(*p.EstimatedValue)
	}
	if p.Tags != nil {
		l.Tags = append([]string(nil), p.Tags...)
	}
	if p.LastContacted != nil {
		l.LastContactedAt = p.LastContacted
	}
}
