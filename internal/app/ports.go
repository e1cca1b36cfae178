package app

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/scoring"
	"github.com/alexanderramin/leadflow/internal/service"
)

// LeadCommands are the lead write use cases.
type LeadCommands interface {
	CreateLead(ctx context.Context, in domain.Lead) Envelope[*domain.Lead]
	UpdateLead(ctx context.Context, id string, patch domain.LeadPatch) Envelope[*domain.Lead]
	ChangeLeadStatus(ctx context.Context, id string, in StatusChange) Envelope[*domain.Lead]
	ConvertLead(ctx context.Context, id string, overrides domain.ConversionOverrides) Envelope[*service.ConversionResult]
	DeleteLead(ctx context.Context, id string) Envelope[string]
}

type OpportunityCommands interface {
	CreateOpportunity(ctx context.Context, in domain.Opportunity) Envelope[*domain.Opportunity]
	UpdateOpportunity(ctx context.Context, id string, patch domain.OpportunityPatch) Envelope[*domain.Opportunity]
	MoveOpportunityStage(ctx context.Context, id string, in StageChange) Envelope[*domain.Opportunity]
}

type ActivityCommands interface {
	LogActivity(ctx context.Context, in domain.Activity) Envelope[*domain.Activity]
	UpdateActivityStatus(ctx context.Context, id string, status domain.ActivityStatus) Envelope[*domain.Activity]
}

// Queries are the read use cases. None of them mutate records.
type Queries interface {
	GetLead(ctx context.Context, id string) Envelope[*LeadDetail]
	GetLeads(ctx context.Context, q query.Query) Envelope[[]*domain.Lead]
	LeadHistory(ctx context.Context, id string) Envelope[[]*domain.LifecycleEvent]
	ScoreLead(ctx context.Context, in scoring.Input) Envelope[scoring.Result]
	GetOpportunity(ctx context.Context, id string) Envelope[*domain.Opportunity]
	GetOpportunities(ctx context.Context, q query.Query) Envelope[[]*domain.Opportunity]
	GetActivities(ctx context.Context, q query.Query) Envelope[[]*domain.Activity]
	GetDashboard(ctx context.Context) Envelope[*service.DashboardStats]
	RefreshDashboard(ctx context.Context) Envelope[*service.DashboardStats]
}

// ViewController holds per-collection filters between calls.
type ViewController interface {
	SetFilter(ctx context.Context, c Collection, q query.Query) Envelope[query.Query]
	CurrentLeads(ctx context.Context) Envelope[[]*domain.Lead]
	CurrentOpportunities(ctx context.Context) Envelope[[]*domain.Opportunity]
	CurrentActivities(ctx context.Context) Envelope[[]*domain.Activity]
	View() ViewState
}

// CRM is the full façade consumed by the HTTP and CLI adapters.
type CRM interface {
	LeadCommands
	OpportunityCommands
	ActivityCommands
	Queries
	ViewController
}

var _ CRM = (*Service)(nil)
