package repository

import (
	"context"
	"sort"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

// JSONActivityRepo implements ActivityRepo over the activities collection.
type JSONActivityRepo struct {
	c jsonCollection[domain.Activity]
}

func NewJSONActivityRepo(conn db.DBTX) *JSONActivityRepo {
	return &JSONActivityRepo{c: jsonCollection[domain.Activity]{
		conn:    conn,
		name:    db.CollectionActivities,
		entity:  domain.EntityActivity,
		id:      func(a *domain.Activity) string { return a.ID },
		version: func(a *domain.Activity) *int { return &a.Version },
	}}
}

func (r *JSONActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return r.c.create(ctx, a)
}

func (r *JSONActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return r.c.get(ctx, id)
}

func (r *JSONActivityRepo) List(ctx context.Context) ([]*domain.Activity, error) {
	return r.c.loadAll(ctx)
}

// ListByLead returns the lead's activities, newest first.
func (r *JSONActivityRepo) ListByLead(ctx context.Context, leadID string) ([]*domain.Activity, error) {
	out, err := r.c.filter(ctx, func(a *domain.Activity) bool { return a.LeadID == leadID })
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

// ListByOpportunity returns the opportunity's activities, newest first.
func (r *JSONActivityRepo) ListByOpportunity(ctx context.Context, opportunityID string) ([]*domain.Activity, error) {
	out, err := r.c.filter(ctx, func(a *domain.Activity) bool { return a.OpportunityID == opportunityID })
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

func newestFirst(acts []*domain.Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		return acts[i].CreatedAt.After(acts[j].CreatedAt)
	})
}

func (r *JSONActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	return r.c.update(ctx, a)
}

func (r *JSONActivityRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *JSONActivityRepo) Query(ctx context.Context, q query.Query) (query.Page[*domain.Activity], error) {
	all, err := r.c.loadAll(ctx)
	if err != nil {
		return query.Page[*domain.Activity]{}, err
	}
	return query.Apply(all, q, ActivityFields)
}
