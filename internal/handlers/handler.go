package handlers

import (
	"tpo_system/internal/logger"
	"tpo_system/internal/ratelimit"
	"tpo_system/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, rate limiting and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	// two independent tiers; auth routes are checked against both
	generalLimiter ratelimit.Limiter
	authLimiter    ratelimit.Limiter
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, general, auth ratelimit.Limiter) *Handler {
	return &Handler{
		services:       services,
		log:            log,
		generalLimiter: general,
		authLimiter:    auth,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestIDMiddleware)

	// General tier applies to everything, the stricter auth tier is stacked
	// on /api/auth below.
	router.Use(h.rateLimitMiddleware(h.generalLimiter, tierGeneral))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// TPO record endpoints (protected)
	h.registerTPORoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth", h.rateLimitMiddleware(h.authLimiter, tierAuth))
	{
		auth.POST("/register", h.registerUser)
		auth.POST("/login", h.signInUser)

		// token-gated profile endpoints
		auth.GET("/me", h.userIdentityMiddleware, h.getCurrentUser)
		auth.PUT("/update-profile", h.userIdentityMiddleware, h.updateProfile)
	}
}

func (h *Handler) registerTPORoutes(r *gin.Engine) {
	tpo := r.Group("/api/tpo", h.userIdentityMiddleware)
	{
		tpo.GET("/", h.listTPO)
		tpo.POST("/", h.addTPO)
		tpo.PUT("/:id", h.updateTPO)
		tpo.DELETE("/:id", h.deleteTPO)
	}
}
