package v1

import (
	"net/http"

	"portfolio-contact-backend/config"
	"portfolio-contact-backend/internal/delivery/http/middleware"
	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/internal/usecase"
	"portfolio-contact-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	apiPrefix  = "/api"
	docsPrefix = apiPrefix + "/swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Unknown verbs on a known path get 405 instead of 404
	r.HandleMethodNotAllowed = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(docsPrefix))
	r.Use(middleware.ErrorHandler())

	r.NoMethod(func(c *gin.Context) {
		_ = c.Error(apperror.MethodNotAllowed())
	})
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Not found"))
	})

	api := r.Group(apiPrefix)

	// Health Check
	api.GET("/health", healthHandler(deps.HealthUC))

	// Public routes
	NewContactHandler(api, deps.ContactUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// healthHandler godoc
// @Summary      Health Check
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			OK:     true,
			Checks: healthUC.Check(c.Request.Context()),
		})
	}
}
