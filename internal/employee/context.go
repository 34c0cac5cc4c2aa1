package employee

import (
	"context"
)

type ctxKey string

const contextActorKey ctxKey = "actor"

// ActorFromContext retrieves the authenticated employee stored by the auth
// middleware.
func ActorFromContext(ctx context.Context) (*Employee, bool) {
	actor, ok := ctx.Value(contextActorKey).(*Employee)
	return actor, ok
}

// WithActor stores the authenticated employee for downstream handlers.
func WithActor(ctx context.Context, actor *Employee) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}
