package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
)

const adminUserKey = "adminUser"

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

// authMiddleware resolves the bearer token to an admin user and stores it in
// the request context. No ambient session state exists anywhere else.
func authMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

		user, err := authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(adminUserKey, user)
		c.Next()
	}
}

// requireRole rejects requests whose admin user ranks below min. Runs after
// authMiddleware, before any mutation happens.
func requireRole(min string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentAdmin(c)
		if user == nil || !models.RoleAtLeast(user.Role, min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// currentAdmin returns the request-scoped admin user set by authMiddleware
func currentAdmin(c *gin.Context) *models.AdminUser {
	v, ok := c.Get(adminUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.AdminUser)
	return user
}
