package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/domain"
)

// jsonCollection is the shared load/modify/save logic behind every
// repository. Records are decoded individually so one bad record does not
// hide the rest.
type jsonCollection[T any] struct {
	conn    db.DBTX
	name    string
	entity  domain.EntityType
	id      func(*T) string
	version func(*T) *int // nil for append-only collections
}

func (c jsonCollection[T]) loadAll(ctx context.Context) ([]*T, error) {
	raw, err := c.conn.Load(ctx, c.name)
	if err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("loading %s", c.name), err)
	}
	out := make([]*T, 0, len(raw))
	for i, r := range raw {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			slog.WarnContext(ctx, "skipping undecodable record",
				"collection", c.name, "index", i, "error", err)
			continue
		}
		out = append(out, &rec)
	}
	return out, nil
}

func (c jsonCollection[T]) saveAll(ctx context.Context, recs []*T) error {
	raw := make([]json.RawMessage, 0, len(recs))
	for _, rec := range recs {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding %s record: %w", c.entity, err)
		}
		raw = append(raw, b)
	}
	if err := c.conn.Save(ctx, c.name, raw); err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("saving %s", c.name), err)
	}
	return nil
}

func (c jsonCollection[T]) indexOf(recs []*T, id string) int {
	for i, rec := range recs {
		if c.id(rec) == id {
			return i
		}
	}
	return -1
}

func (c jsonCollection[T]) create(ctx context.Context, rec *T) error {
	recs, err := c.loadAll(ctx)
	if err != nil {
		return err
	}
	id := c.id(rec)
	if c.indexOf(recs, id) >= 0 {
		return &domain.Error{
			Kind:    domain.KindConflict,
			Entity:  c.entity,
			ID:      id,
			Message: fmt.Sprintf("%s %q already exists", c.entity, id),
		}
	}
	if c.version != nil {
		if v := c.version(rec); *v == 0 {
			*v = 1
		}
	}
	return c.saveAll(ctx, append(recs, rec))
}

func (c jsonCollection[T]) get(ctx context.Context, id string) (*T, error) {
	recs, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	i := c.indexOf(recs, id)
	if i < 0 {
		return nil, domain.NewNotFoundError(c.entity, id)
	}
	return recs[i], nil
}

// update replaces the stored record if its version matches rec's, then
// bumps rec's version.
func (c jsonCollection[T]) update(ctx context.Context, rec *T) error {
	recs, err := c.loadAll(ctx)
	if err != nil {
		return err
	}
	id := c.id(rec)
	i := c.indexOf(recs, id)
	if i < 0 {
		return domain.NewNotFoundError(c.entity, id)
	}
	stored, expected := *c.version(recs[i]), c.version(rec)
	if stored != *expected {
		return domain.NewConflictError(c.entity, id, *expected, stored)
	}
	*expected = stored + 1
	recs[i] = rec
	if err := c.saveAll(ctx, recs); err != nil {
		*expected = stored
		return err
	}
	return nil
}

func (c jsonCollection[T]) delete(ctx context.Context, id string) error {
	recs, err := c.loadAll(ctx)
	if err != nil {
		return err
	}
	i := c.indexOf(recs, id)
	if i < 0 {
		return domain.NewNotFoundError(c.entity, id)
	}
	return c.saveAll(ctx, append(recs[:i], recs[i+1:]...))
}

func (c jsonCollection[T]) filter(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	recs, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0)
	for _, rec := range recs {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
