package repository

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

// JSONOpportunityRepo implements OpportunityRepo over the opportunities
// collection.
type JSONOpportunityRepo struct {
	c jsonCollection[domain.Opportunity]
}

func NewJSONOpportunityRepo(conn db.DBTX) *JSONOpportunityRepo {
	return &JSONOpportunityRepo{c: jsonCollection[domain.Opportunity]{
		conn:    conn,
		name:    db.CollectionOpportunities,
		entity:  domain.EntityOpportunity,
		id:      func(o *domain.Opportunity) string { return o.ID },
		version: func(o *domain.Opportunity) *int { return &o.Version },
	}}
}

func (r *JSONOpportunityRepo) Create(ctx context.Context, o *domain.Opportunity) error {
	return r.c.create(ctx, o)
}

func (r *JSONOpportunityRepo) GetByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	return r.c.get(ctx, id)
}

func (r *JSONOpportunityRepo) List(ctx context.Context) ([]*domain.Opportunity, error) {
	return r.c.loadAll(ctx)
}

func (r *JSONOpportunityRepo) Update(ctx context.Context, o *domain.Opportunity) error {
	return r.c.update(ctx, o)
}

func (r *JSONOpportunityRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *JSONOpportunityRepo) Query(ctx context.Context, q query.Query) (query.Page[*domain.Opportunity], error) {
	all, err := r.c.loadAll(ctx)
	if err != nil {
		return query.Page[*domain.Opportunity]{}, err
	}
	return query.Apply(all, q, OpportunityFields)
}
