package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/response"
)

// UserIDHeader carries the caller's user id. This is a trusted header, not
// an authentication mechanism: the service performs no token or credential
// checks.
const UserIDHeader = "X-Sharer-User-Id"

// UserIDKey is the gin context key the identity middleware sets.
const UserIDKey = "user_id"

// Identity requires the caller id header on every request in the group and
// stores the parsed id in the context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			response.Error(c, http.StatusBadRequest, "MISSING_USER_ID", "Missing "+UserIDHeader+" header")
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid "+UserIDHeader+" header")
			c.Abort()
			return
		}

		c.Set(UserIDKey, id)
		c.Next()
	}
}

// CallerID returns the user id the identity middleware stored.
func CallerID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
