package service

import (
	"context"
	"strings"
)

// DefaultActor is used when neither the request nor the configuration names
// an acting user.
const DefaultActor = "system"

type actorKey struct{}

// WithActor returns a context carrying the acting user id.
func WithActor(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, id)
}

// ActorFromContext returns the actor stored by WithActor, if any.
func ActorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorKey{}).(string)
	return id, ok && id != ""
}

// ActorProvider supplies the id stamped into createdBy/updatedBy.
type ActorProvider interface {
	ActorID(ctx context.Context) string
}

type contextActorProvider struct {
	fallback string
}

// NewActorProvider reads the actor from the context and falls back to the
// configured id.
func NewActorProvider(fallback string) ActorProvider {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultActor
	}
	return contextActorProvider{fallback: fallback}
}

func (p contextActorProvider) ActorID(ctx context.Context) string {
	if id, ok := ActorFromContext(ctx); ok {
		return id
	}
	return p.fallback
}
