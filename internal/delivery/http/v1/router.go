package v1

import (
	"net/http"
	"time"

	"go-consultancy-backend/config"
	"go-consultancy-backend/internal/delivery/http/middleware"
	"go-consultancy-backend/internal/delivery/http/response"
	"go-consultancy-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	EnquiryUC      domain.EnquiryUsecase
	RequirementsUC domain.RequirementsUsecase
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Pricing summary (public, read-only)
	NewPricingHandler(v1)

	// Form endpoints share a tighter per-IP limit on top of the global one
	forms := v1.Group("")
	forms.Use(middleware.RateLimitMiddleware(middleware.FormRateLimitConfig(
		deps.Config.RateLimitFormThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	{
		NewContactHandler(forms, deps.ContactUC, deps.Config)
		NewEnquiryHandler(forms, deps.EnquiryUC, deps.Config)
		NewRequirementsHandler(forms, deps.RequirementsUC)
	}

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
