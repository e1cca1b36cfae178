package repository

import (
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

// LeadFields declares the filterable, searchable and sortable lead fields.
var LeadFields = query.Fields[*domain.Lead]{
	Categorical: map[string]func(*domain.Lead) string{
		"status":     func(l *domain.Lead) string { return string(l.Status) },
		"source":     func(l *domain.Lead) string { return string(l.Source) },
		"rating":     func(l *domain.Lead) string { return string(l.Rating) },
		"assignedTo": func(l *domain.Lead) string { return l.AssignedTo },
		"timeline":   func(l *domain.Lead) string { return string(l.Timeline) },
	},
	Text: []func(*domain.Lead) string{
		func(l *domain.Lead) string { return l.FirstName },
		func(l *domain.Lead) string { return l.LastName },
		func(l *domain.Lead) string { return l.Email },
		func(l *domain.Lead) string { return l.Phone },
		func(l *domain.Lead) string { return l.Company },
		func(l *domain.Lead) string { return l.LeadNumber },
	},
	Sort: map[string]query.SortKey[*domain.Lead]{
		"createdAt":       query.ByDate(func(l *domain.Lead) *time.Time { return query.TimePtr(l.CreatedAt) }),
		"updatedAt":       query.ByDate(func(l *domain.Lead) *time.Time { return query.TimePtr(l.UpdatedAt) }),
		"moveDate":        query.ByDate(func(l *domain.Lead) *time.Time { return l.MoveDate }),
		"lastContactedAt": query.ByDate(func(l *domain.Lead) *time.Time { return l.LastContactedAt }),
		"score":           query.ByNumber(func(l *domain.Lead) float64 { return float64(l.Score) }),
		"budget":          query.ByNumber(func(l *domain.Lead) float64 { return l.Budget }),
		"estimatedValue": query.ByNumber(func(l *domain.Lead) float64 {
			return domain.Float64FromPtrWithDefault(0, l.EstimatedValue)
		}),
		"firstName":  query.ByText(func(l *domain.Lead) string { return l.FirstName }),
		"lastName":   query.ByText(func(l *domain.Lead) string { return l.LastName }),
		"company":    query.ByText(func(l *domain.Lead) string { return l.Company }),
		"leadNumber": query.ByText(func(l *domain.Lead) string { return l.LeadNumber }),
		"status":     query.ByText(func(l *domain.Lead) string { return string(l.Status) }),
	},
}

var OpportunityFields = query.Fields[*domain.Opportunity]{
	Categorical: map[string]func(*domain.Opportunity) string{
		"stage":  func(o *domain.Opportunity) string { return string(o.Stage) },
		"owner":  func(o *domain.Opportunity) string { return o.Owner },
		"leadId": func(o *domain.Opportunity) string { return o.LeadID },
	},
	Text: []func(*domain.Opportunity) string{
		func(o *domain.Opportunity) string { return o.Name },
		func(o *domain.Opportunity) string { return o.Description },
		func(o *domain.Opportunity) string { return o.OpportunityNumber },
	},
	Sort: map[string]query.SortKey[*domain.Opportunity]{
		"createdAt":         query.ByDate(func(o *domain.Opportunity) *time.Time { return query.TimePtr(o.CreatedAt) }),
		"updatedAt":         query.ByDate(func(o *domain.Opportunity) *time.Time { return query.TimePtr(o.UpdatedAt) }),
		"expectedCloseDate": query.ByDate(func(o *domain.Opportunity) *time.Time { return o.ExpectedCloseDate }),
		"actualCloseDate":   query.ByDate(func(o *domain.Opportunity) *time.Time { return o.ActualCloseDate }),
		"amount":            query.ByNumber(func(o *domain.Opportunity) float64 { return o.Amount }),
		"probability":       query.ByNumber(func(o *domain.Opportunity) float64 { return float64(o.Probability) }),
		"stage":             query.ByNumber(func(o *domain.Opportunity) float64 { return float64(o.Stage.Rank()) }),
		"name":              query.ByText(func(o *domain.Opportunity) string { return o.Name }),
		"opportunityNumber": query.ByText(func(o *domain.Opportunity) string { return o.OpportunityNumber }),
	},
}

var ActivityFields = query.Fields[*domain.Activity]{
	Categorical: map[string]func(*domain.Activity) string{
		"type":          func(a *domain.Activity) string { return string(a.Type) },
		"status":        func(a *domain.Activity) string { return string(a.Status) },
		"leadId":        func(a *domain.Activity) string { return a.LeadID },
		"opportunityId": func(a *domain.Activity) string { return a.OpportunityID },
		"createdBy":     func(a *domain.Activity) string { return a.CreatedBy },
	},
	Text: []func(*domain.Activity) string{
		func(a *domain.Activity) string { return a.Subject },
		func(a *domain.Activity) string { return a.Description },
	},
	Sort: map[string]query.SortKey[*domain.Activity]{
		"createdAt":     query.ByDate(func(a *domain.Activity) *time.Time { return query.TimePtr(a.CreatedAt) }),
		"dueDate":       query.ByDate(func(a *domain.Activity) *time.Time { return a.DueDate }),
		"completedDate": query.ByDate(func(a *domain.Activity) *time.Time { return a.CompletedDate }),
		"subject":       query.ByText(func(a *domain.Activity) string { return a.Subject }),
		"type":          query.ByText(func(a *domain.Activity) string { return string(a.Type) }),
	},
}
