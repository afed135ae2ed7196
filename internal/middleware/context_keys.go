package middleware

import "github.com/gin-gonic/gin"

// contextKey is the type of the keys this package stores in Gin and request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey   = contextKey("logger")
	usernameKey = contextKey("username")
	rolesKey    = contextKey("roles")
)

// GetUsernameFromContext retrieves the authenticated username from the Gin context.
// It returns the username and a boolean indicating if it was found.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(usernameKey))
	if !exists {
		return "", false
	}
	username, ok := val.(string)
	return username, ok
}
