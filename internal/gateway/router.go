package gateway

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bizmatters/healthpath/internal/logger"
)

// NewRouter wires the middleware chain and routes
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(TraceID())
	router.Use(RequestLogger(log))
	router.Use(CORS())

	// Health checks at the root
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	api := router.Group("/api")
	api.POST("/generate-plan", h.GeneratePlan)
	api.OPTIONS("/generate-plan", h.Preflight)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoMethod(h.MethodNotAllowed)

	return router
}
