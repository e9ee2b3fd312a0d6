package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorIDHeader identifies the caller for audit fields. Authentication is
// handled upstream; an absent header falls back to "system".
const actorIDHeader = "X-Actor-ID"

// ActorResolutionMiddleware extracts the acting user's ID from the request
// header and stores it in the Gin context for handlers to attach to audit
// fields.
func ActorResolutionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorIDHeader)
		if actorID == "" {
			actorID = "system"
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user's ID from the Gin context.
func GetActorIDFromContext(c *gin.Context) string {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "system"
	}

	actorID, ok := actorIDVal.(string)
	if !ok || actorID == "" {
		return "system"
	}

	return actorID
}
