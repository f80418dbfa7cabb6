package handlers

import (
	"errors"
	"net/http"
	"strings"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userCtxKey        = "currentUser"
	requestIDHeader   = "X-Request-ID"
	requestIDCtxKey   = "requestId"
	errMissingHeader  = "missing Authorization header"
	errInvalidHeader  = "invalid Authorization header format"
	errInvalidToken   = "invalid or expired token"
	errUserNotFound   = "User not found"
	errResolveFailure = "failed to resolve user"
)

// requestIDMiddleware tags every request with a v4 uuid for log correlation.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDCtxKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// identityMiddleware resolves the caller from the bearer token and loads the
// full user record. Invalid token → 401 with no detail about why. Token valid
// but user row gone → 404 (documented behavior, kept as-is).
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingHeader})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidHeader})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	user, err := h.services.UserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		if h.log != nil {
			h.log.Errorw("identity_resolve_failed", "err", err, "user_id", userID)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errResolveFailure})
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// currentUser pulls the resolved caller out of the gin context.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
