package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ValentinaMarinG/react-project-backend/internal/infra/config"
	"github.com/ValentinaMarinG/react-project-backend/internal/transport/http/handlers"
	"github.com/ValentinaMarinG/react-project-backend/internal/transport/http/middleware"
	"github.com/ValentinaMarinG/react-project-backend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Registration *usecase.RegistrationService
	Users        *usecase.UserService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Metrics  *middleware.HTTPMetrics
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	if deps.Config != nil {
		r.Use(middleware.CORS(deps.Config.App.CORSOrigins))
	}

	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Registration)
		authHandler.RegisterRoutes(authGroup)

		if deps.Services.Users != nil {
			userGroup := api.Group("/users")
			userGroup.Use(middleware.RequireAuth(deps.Services.Auth))
			userHandler := handlers.NewUserHandler(deps.Services.Users)
			userHandler.RegisterRoutes(userGroup, middleware.RequireRole("admin"))
		}
	}

	return r
}
