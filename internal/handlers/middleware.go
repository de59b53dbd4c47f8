package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tpo_system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by middleware for downstream handlers.
const (
	ctxKeyUserID    = "userId"
	ctxKeyUsername  = "username"
	ctxKeyRequestID = "requestId"
)

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware tags every request with an ID for log correlation.
// An inbound X-Request-ID is kept so callers can trace across services.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set(ctxKeyRequestID, reqID)
	c.Writer.Header().Set(requestIDHeader, reqID)
	c.Next()
}

// userIdentityMiddleware gates protected routes behind a bearer token.
// Missing token -> 401; present but invalid or expired -> 403.
func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			errorBody("No Token", "No token provided", typeNoToken))
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			errorBody("No Token", "Authorization header must be 'Bearer <token>'", typeNoToken))
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		// expired and malformed both end in 403 but are logged apart
		if errors.Is(err, service.ErrTokenExpired) {
			if h.log != nil {
				h.log.Infow("auth_token_expired", "path", c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				errorBody("Token Expired", "Your session has expired. Please log in again.", typeJWTExpired))
			return
		}
		if h.log != nil {
			h.log.Infow("auth_token_invalid", "path", c.Request.URL.Path, "err", err)
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			errorBody("Invalid Token", "The authentication token is invalid or malformed.", typeInvalidJWT))
		return
	}

	// attach identity to request context
	c.Set(ctxKeyUserID, claims.UserID)
	c.Set(ctxKeyUsername, claims.Username)
	c.Next()
}

// currentUserID reads the identity placed by userIdentityMiddleware.
func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
