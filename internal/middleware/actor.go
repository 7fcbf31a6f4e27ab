package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// ActorHeader names the header carrying the acting user's id. An upstream
// gateway is responsible for authenticating the caller and setting it.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware extracts the acting user's id from the request header and
// stores it in the Gin context for handlers that audit their writes.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorID := c.GetHeader(ActorHeader); actorID != "" {
			c.Set(string(actorIDKey), actorID)
		}
		c.Next()
	}
}

// RequireActor aborts with 400 when the acting user's id is missing. Mounted
// on write routes; reads stay accessible without it.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetActorFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ActorHeader + " header is required"})
			return
		}
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's id from the Gin context.
// It returns the id and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
