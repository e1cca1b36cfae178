package repository

import (
	"context"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

// JSONLeadRepo implements LeadRepo over the leads collection.
type JSONLeadRepo struct {
	c jsonCollection[domain.Lead]
}

// NewJSONLeadRepo creates a lead repository over a store or transaction.
func NewJSONLeadRepo(conn db.DBTX) *JSONLeadRepo {
	return &JSONLeadRepo{c: jsonCollection[domain.Lead]{
		conn:    conn,
		name:    db.CollectionLeads,
		entity:  domain.EntityLead,
		id:      func(l *domain.Lead) string { return l.ID },
		version: func(l *domain.Lead) *int { return &l.Version },
	}}
}

func (r *JSONLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	return r.c.create(ctx, l)
}

func (r *JSONLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	return r.c.get(ctx, id)
}

func (r *JSONLeadRepo) List(ctx context.Context) ([]*domain.Lead, error) {
	return r.c.loadAll(ctx)
}

func (r *JSONLeadRepo) Update(ctx context.Context, l *domain.Lead) error {
	return r.c.update(ctx, l)
}

func (r *JSONLeadRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *JSONLeadRepo) Query(ctx context.Context, q query.Query) (query.Page[*domain.Lead], error) {
	all, err := r.c.loadAll(ctx)
	if err != nil {
		return query.Page[*domain.Lead]{}, err
	}
	return query.Apply(all, q, LeadFields)
}
