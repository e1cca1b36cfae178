package repository

import (
	"context"
	"sort"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
)

// JSONLifecycleRepo stores status and stage history in the lifecycles
// collection. Events are append-only.
type JSONLifecycleRepo struct {
	c jsonCollection[domain.LifecycleEvent]
}

func NewJSONLifecycleRepo(conn db.DBTX) *JSONLifecycleRepo {
	return &JSONLifecycleRepo{c: jsonCollection[domain.LifecycleEvent]{
		conn:   conn,
		name:   db.CollectionLifecycles,
		entity: "lifecycle_event",
		id:     func(e *domain.LifecycleEvent) string { return e.ID },
	}}
}

func (r *JSONLifecycleRepo) Append(ctx context.Context, e *domain.LifecycleEvent) error {
	return r.c.create(ctx, e)
}

// ListByEntity returns the history of one record, oldest first.
func (r *JSONLifecycleRepo) ListByEntity(ctx context.Context, entity domain.EntityType, id string) ([]*domain.LifecycleEvent, error) {
	out, err := r.c.filter(ctx, func(e *domain.LifecycleEvent) bool {
		return e.EntityType == entity && e.EntityID == id
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.Before(out[j].ChangedAt) })
	return out, nil
}
