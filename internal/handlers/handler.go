package handlers

import (
	"net/http"

	"expense_tracker/internal/logger"
	"expense_tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services      *service.Service
	log           *logger.Logger
	allowedOrigin string
}

// NewHandler constructs a new HTTP handler with dependencies. allowedOrigin
// is the single browser origin permitted to call the API with credentials.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigin string) *Handler {
	return &Handler{services: services, log: log, allowedOrigin: allowedOrigin}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestIDMiddleware)

	if h.allowedOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{h.allowedOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerExpenseRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/me", h.identityMiddleware, h.me)
	}
}

func (h *Handler) registerExpenseRoutes(r *gin.Engine) {
	// Paths mirror the public API contract; the singular/plural split is
	// part of it.
	r.POST("/expense/", h.identityMiddleware, h.createExpense)
	r.GET("/expense", h.identityMiddleware, h.listExpenses)
	r.PUT("/expenses/:id", h.identityMiddleware, h.updateExpense)
	r.DELETE("/expenses/:id", h.identityMiddleware, h.deleteExpense)

	// Documented as unauthenticated and cross-user.
	r.GET("/expenses/weekly-graph", h.weeklyGraph)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
