package handlers

import (
	"net/http"
	"time"

	"tpo_system/internal/models"

	"github.com/gin-gonic/gin"
)

// Request DTOs for the auth endpoints.
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid Request Format",
			"message": err.Error(),
			"type":    typeValidationError,
		})
		return false
	}
	return true
}

// userPayload shapes the account for responses; the hash never leaves.
func userPayload(u *models.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "name": u.Name}
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Credentials"
// @Success      201  {object}  map[string]interface{}  "message, id"
// @Failure      400  {object}  map[string]interface{}  "field-level details"
// @Failure      409  {object}  map[string]string
// @Failure      429  {object}  map[string]interface{}
// @Router       /api/auth/register [post]
func (h *Handler) registerUser(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(input.Username, input.Password, input.Name)
	if err != nil {
		h.respondServiceError(c, err, "auth_register_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "id": id})
}

// @Summary      Log in and obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  map[string]interface{}  "message, token, user"
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]interface{}  "retryAfter, type"
// @Router       /api/auth/login [post]
func (h *Handler) signInUser(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, user, err := h.services.SignIn(input.Username, input.Password)
	if err != nil {
		h.respondServiceError(c, err, "auth_sign_in_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/me [get]
// @Security     BearerAuth
func (h *Handler) getCurrentUser(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized,
			"No Token", "No token provided", typeNoToken, "auth_me_no_identity", nil)
		return
	}

	user, err := h.services.GetUser(id)
	if err != nil {
		h.respondServiceError(c, err, "auth_me_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

// @Summary      Update display name
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  updateProfileRequest  true  "New name"
// @Success      200  {object}  map[string]interface{}  "message, user"
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/update-profile [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		h.respondError(c, http.StatusUnauthorized,
			"No Token", "No token provided", typeNoToken, "auth_update_no_identity", nil)
		return
	}

	var input updateProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.UpdateName(id, input.Name)
	if err != nil {
		h.respondServiceError(c, err, "auth_update_profile_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": userPayload(user)})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
