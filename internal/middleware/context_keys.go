package middleware

import "github.com/gin-gonic/gin"

// userIDKey and companyIDKey are the keys under which the auth middleware
// stores the authenticated caller's identity in the request context.
const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

// GetUserIDFromContext retrieves the authenticated user ID.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}

// GetCompanyIDFromContext retrieves the company the authenticated caller is
// scoped to. Every data access is bounded by this value.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(companyIDKey); v != nil {
		companyID, ok := v.(string)
		return companyID, ok
	}
	return "", false
}
