package service

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

type LeadService interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	Update(ctx context.Context, id string, patch domain.LeadPatch) (*domain.Lead, error)
	ChangeStatus(ctx context.Context, id string, to domain.LeadStatus, reason string) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q query.Query) (query.Page[*domain.Lead], error)
	History(ctx context.Context, id string) ([]*domain.LifecycleEvent, error)
}

type OpportunityService interface {
	Create(ctx context.Context, o *domain.Opportunity) error
	GetByID(ctx context.Context, id string) (*domain.Opportunity, error)
	Update(ctx context.Context, id string, patch domain.OpportunityPatch) (*domain.Opportunity, error)
	ChangeStage(ctx context.Context, id string, stage domain.OpportunityStage, probability *int, reason string) (*domain.Opportunity, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q query.Query) (query.Page[*domain.Opportunity], error)
	History(ctx context.Context, id string) ([]*domain.LifecycleEvent, error)
}

type ActivityService interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	UpdateStatus(ctx context.Context, id string, status domain.ActivityStatus) (*domain.Activity, error)
	Complete(ctx context.Context, id string) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q query.Query) (query.Page[*domain.Activity], error)
	ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error)
	ListByOpportunity(ctx context.Context, opportunityID string) ([]*domain.Activity, error)
}

// ConversionResult holds both records touched by a lead conversion.
type ConversionResult struct {
	Lead        *domain.Lead        `json:"lead"`
	Opportunity *domain.Opportunity `json:"opportunity"`
}

type ConversionService interface {
	Convert(ctx context.Context, leadID string, overrides domain.ConversionOverrides) (*ConversionResult, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}
