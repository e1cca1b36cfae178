package domain

import (
	"strings"
	"time"
)

type Activity struct {
	ID            string         `json:"id"`
	Type          ActivityType   `json:"type"`
	Subject       string         `json:"subject"`
	Description   string         `json:"description,omitempty"`
	LeadID        string         `json:"leadId,omitempty"`
	OpportunityID string         `json:"opportunityId,omitempty"`
	Status        ActivityStatus `json:"status"`
	DueDate       *time.Time     `json:"dueDate,omitempty"`
	CompletedDate *time.Time     `json:"completedDate,omitempty"`
	CreatedBy     string         `json:"createdBy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Version       int            `json:"version"`
}

// IsOverdue reports whether the activity is past due and not completed.
func (a *Activity) IsOverdue(now time.Time) bool {
	return a.DueDate != nil && a.DueDate.Before(now) && a.Status != ActivityCompleted
}

func (a *Activity) ApplyDefaults() {
	if a.Status == "" {
		a.Status = ActivityScheduled
	}
}

func (a *Activity) Validate() error {
	var fields []FieldError
	if !ValidActivityTypes[a.Type] {
		fields = append(fields, FieldError{Field: "type", Msg: "invalid activity type " + string(a.Type)})
	}
	if strings.TrimSpace(a.Subject) == "" {
		fields = append(fields, FieldError{Field: "subject", Msg: "is required"})
	}
	if !ValidActivityStatuses[a.Status] {
		fields = append(fields, FieldError{Field: "status", Msg: "invalid activity status " + string(a.Status)})
	}
	if len(fields) > 0 {
		return NewValidationError("invalid activity", fields...)
	}
	return nil
}

// NewAuditActivity builds a completed activity recording a workflow event.
func NewAuditActivity(typ ActivityType, subject, description, actor string, now time.Time) Activity {
	return Activity{
		Type:          typ,
		Subject:       subject,
		Description:   description,
		Status:        ActivityCompleted,
		CompletedDate: &now,
		CreatedBy:     actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
