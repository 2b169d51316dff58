package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const actorKey = contextKey("actor")

// defaultActor is recorded in audit fields when the caller does not identify itself.
const defaultActor = "system"

// ActorMiddleware captures the caller identity from the X-Actor-ID header and
// stores it in the request context for audit fields. Authentication itself is
// handled upstream; the ledger only records who acted.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor-ID")
		if actor == "" {
			actor = defaultActor
		}
		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorFromCtx retrieves the acting identity from the context.
func GetActorFromCtx(ctx context.Context) string {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}
