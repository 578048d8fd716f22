// Package authctx carries the authenticated actor through the request
// context.
package authctx

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

type ctxKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// ActorFrom extracts the actor. The second return is false on public
// (unauthenticated) requests.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(domain.Actor)
	return actor, ok
}
