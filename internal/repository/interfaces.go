package repository

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

type LeadRepo interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q query.Query) (query.Page[*domain.Lead], error)
}

type OpportunityRepo interface {
	Create(ctx context.Context, o *domain.Opportunity) error
	GetByID(ctx context.Context, id string) (*domain.Opportunity, error)
	List(ctx context.Context) ([]*domain.Opportunity, error)
	Update(ctx context.Context, o *domain.Opportunity) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q query.Query) (query.Page[*domain.Opportunity], error)
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) ([]*domain.Activity, error)
	ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error)
	ListByOpportunity(ctx context.Context, opportunityID string) ([]*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q query.Query) (query.Page[*domain.Activity], error)
}

type LifecycleRepo interface {
	Append(ctx context.Context, e *domain.LifecycleEvent) error
	ListByEntity(ctx context.Context, entity domain.EntityType, id string) ([]*domain.LifecycleEvent, error)
}

// SequenceRepo allocates per-year human record numbers.
type SequenceRepo interface {
	NextSeq(ctx context.Context, prefix string, year int) (int, error)
}
