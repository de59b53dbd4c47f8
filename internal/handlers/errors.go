package handlers

import (
	"errors"
	"net/http"

	"tpo_system/internal/repository"
	"tpo_system/internal/service"

	"github.com/gin-gonic/gin"
)

// Response type discriminators. The client renders tier-specific guidance
// from these, so the set is part of the external contract.
const (
	typeValidationError    = "VALIDATION_ERROR"
	typeInvalidCredentials = "INVALID_CREDENTIALS"
	typeNoToken            = "NO_TOKEN"
	typeInvalidJWT         = "INVALID_JWT_TOKEN"
	typeJWTExpired         = "JWT_TOKEN_EXPIRED"
	typeDuplicateUsername  = "DUPLICATE_USERNAME"
	typeDuplicateEmail     = "DUPLICATE_EMAIL"
	typeNotFound           = "NOT_FOUND"
	typeRateLimited        = "RATE_LIMIT_EXCEEDED"
	typeAuthRateLimited    = "AUTH_RATE_LIMIT_EXCEEDED"
	typeDatabaseError      = "DATABASE_CONNECTION_ERROR"
	typeGeneralError       = "GENERAL_ERROR"
)

// errorBody builds the uniform error envelope every reject branch emits.
func errorBody(title, message, typ string) gin.H {
	return gin.H{"error": title, "message": message, "type": typ}
}

// respondError logs (when err is present) and writes the error envelope.
func (h *Handler) respondError(c *gin.Context, httpCode int, title, message, typ, logKey string, err error) {
	if h.log != nil && err != nil {
		h.log.Errorw(logKey, "err", err, "type", typ, "path", c.Request.URL.Path)
	}
	c.JSON(httpCode, errorBody(title, message, typ))
}

// respondServiceError maps every error leaving the service layer onto the
// stable taxonomy; raw library errors never reach the client.
func (h *Handler) respondServiceError(c *gin.Context, err error, logKey string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation Failed",
			"message": "The provided data does not meet security requirements.",
			"details": verr.Fields,
			"type":    typeValidationError,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized,
			"Invalid Credentials", "Invalid credentials", typeInvalidCredentials, logKey, nil)
	case errors.Is(err, service.ErrUsernameTaken):
		h.respondError(c, http.StatusConflict,
			"Duplicate Username", "A user with this username already exists.", typeDuplicateUsername, logKey, nil)
	case errors.Is(err, repository.ErrDuplicateEmail):
		h.respondError(c, http.StatusConflict,
			"Duplicate Email", "A TPO with this email already exists.", typeDuplicateEmail, logKey, nil)
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, repository.ErrNotFound):
		h.respondError(c, http.StatusNotFound,
			"Not Found", "The requested record does not exist.", typeNotFound, logKey, nil)
	case errors.Is(err, repository.ErrStorage):
		h.respondError(c, http.StatusServiceUnavailable,
			"Service Temporarily Unavailable", "Database connection failed. Please try again later.",
			typeDatabaseError, logKey, err)
	default:
		h.respondError(c, http.StatusInternalServerError,
			"Internal Server Error", "Something went wrong on our end. Please try again later.",
			typeGeneralError, logKey, err)
	}
}
