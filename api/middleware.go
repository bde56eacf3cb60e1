package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"caseflow/internal"
)

// demoToken is the static bearer token accepted by the demo deployment.
// Production wiring replaces this middleware with the identity provider.
const demoToken = "demo-token"

type userProfile struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

var demoUser = userProfile{
	UserID: "demo-user",
	Name:   "Demo Service Agent",
	Role:   "service_agent",
	Permissions: []string{
		"process_service_cases",
		"create_service_orders",
		"view_batch_results",
		"view_system_config",
	},
}

// bearerAuth gates a route group on the demo token. Missing or wrong tokens
// get a 401 with the uniform error envelope.
func bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != demoToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "missing or invalid bearer token",
				Code:  "UNAUTHORIZED",
			})
			return
		}
		c.Set("user", demoUser)
		c.Next()
	}
}

// resolveUser attaches the caller's profile. Requests without credentials run
// as the demo user; a presented token must still be valid.
func resolveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set("user", demoUser)
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != demoToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "invalid bearer token",
				Code:  "UNAUTHORIZED",
			})
			return
		}
		c.Set("user", demoUser)
		c.Next()
	}
}

// requirePermission rejects callers whose resolved profile lacks the named
// permission.
func requirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get("user")
		user, ok := v.(userProfile)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "no authenticated user",
				Code:  "UNAUTHORIZED",
			})
			return
		}
		for _, p := range user.Permissions {
			if p == perm || p == "*" {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error: "insufficient permissions",
			Code:  "UNAUTHORIZED",
		})
	}
}

// requestLogger logs one line per request through the shared logger.
func requestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Debug("[API] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(started))
	}
}
