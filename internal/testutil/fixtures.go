package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/google/uuid"
)

var testNumberCounter atomic.Int64

// Lead options
type LeadOption func(*domain.Lead)

func WithLeadStatus(s domain.LeadStatus) LeadOption {
	return func(l *domain.Lead) {
		l.Status = s
	}
}

func WithSource(s domain.LeadSource) LeadOption {
	return func(l *domain.Lead) {
		l.Source = s
	}
}

func WithCompany(c string) LeadOption {
	return func(l *domain.Lead) {
		l.Company = c
	}
}

func WithEstimatedValue(v float64) LeadOption {
	return func(l *domain.Lead) {
		l.EstimatedValue = &v
	}
}

func WithAssignedTo(user string) LeadOption {
	return func(l *domain.Lead) {
		l.AssignedTo = user
	}
}

func WithLeadCreatedAt(t time.Time) LeadOption {
	return func(l *domain.Lead) {
		l.CreatedAt = t
		l.UpdatedAt = t
	}
}

func WithScore(score int) LeadOption {
	return func(l *domain.Lead) {
		l.Score = score
		l.Rating = domain.RatingForScore(score)
	}
}

func WithLeadNumber(n string) LeadOption {
	return func(l *domain.Lead) {
		l.LeadNumber = n
	}
}

func NewTestLead(firstName string, opts ...LeadOption) *domain.Lead {
	now := time.Now().UTC()
	n := testNumberCounter.Add(1)
	l := &domain.Lead{
		ID:         "lead_" + uuid.New().String(),
		LeadNumber: fmt.Sprintf("LEAD%d%04d", now.Year(), n),
		FirstName:  firstName,
		LastName:   "Tester",
		Email:      strings.ToLower(firstName) + "@example.com",
		Phone:      "555-010-2030",
		Source:     domain.SourceWebsite,
		Status:     domain.LeadNew,
		Rating:     domain.RatingCold,
		Tags:       []string{},
		CreatedBy:  "tester",
		UpdatedBy:  "tester",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Opportunity options
type OpportunityOption func(*domain.Opportunity)

func WithStage(s domain.OpportunityStage) OpportunityOption {
	return func(o *domain.Opportunity) {
		o.Stage = s
		o.Probability = s.DefaultProbability()
	}
}

func WithAmount(a float64) OpportunityOption {
	return func(o *domain.Opportunity) {
		o.Amount = a
	}
}

func WithProbability(p int) OpportunityOption {
	return func(o *domain.Opportunity) {
		o.Probability = p
	}
}

func WithOpportunityLead(leadID string) OpportunityOption {
	return func(o *domain.Opportunity) {
		o.LeadID = leadID
	}
}

func NewTestOpportunity(name string, opts ...OpportunityOption) *domain.Opportunity {
	now := time.Now().UTC()
	n := testNumberCounter.Add(1)
	o := &domain.Opportunity{
		ID:                "opportunity_" + uuid.New().String(),
		OpportunityNumber: fmt.Sprintf("OPP%d%04d", now.Year(), n),
		Name:              name,
		Stage:             domain.StageProspecting,
		Probability:       domain.StageProspecting.DefaultProbability(),
		CreatedBy:         "tester",
		UpdatedBy:         "tester",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithActivityStatus(s domain.ActivityStatus) ActivityOption {
	return func(a *domain.Activity) {
		a.Status = s
	}
}

func WithDueDate(d time.Time) ActivityOption {
	return func(a *domain.Activity) {
		a.DueDate = &d
	}
}

func WithActivityLead(leadID string) ActivityOption {
	return func(a *domain.Activity) {
		a.LeadID = leadID
	}
}

func WithActivityOpportunity(oppID string) ActivityOption {
	return func(a *domain.Activity) {
		a.OpportunityID = oppID
	}
}

func WithActivityCreatedAt(t time.Time) ActivityOption {
	return func(a *domain.Activity) {
		a.CreatedAt = t
		a.UpdatedAt = t
	}
}

func NewTestActivity(subject string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC()
	a := &domain.Activity{
		ID:        "activity_" + uuid.New().String(),
		Type:      domain.ActivityCall,
		Subject:   subject,
		Status:    domain.ActivityScheduled,
		CreatedBy: "tester",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}
