package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-wellness-backend/config"
	"go-wellness-backend/internal/delivery/http/middleware"
	"go-wellness-backend/internal/delivery/http/response"
	"go-wellness-backend/internal/domain"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	SubmissionRepo domain.SubmissionRepository // nil when no database is configured
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	NewContactHandler(api, deps.ContactUC, deps.Config)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Practitioner routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(deps.Config.AdminJWTSecret))
	{
		NewAdminHandler(admin, deps.SubmissionRepo)
	}

	return r
}
