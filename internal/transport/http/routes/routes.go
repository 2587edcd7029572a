package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/contact-platform/internal/infra/config"
	"github.com/arklim/contact-platform/internal/transport/http/handlers"
	"github.com/arklim/contact-platform/internal/transport/http/middleware"
	"github.com/arklim/contact-platform/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Users     *usecase.UserService
	Contacts  *usecase.ContactService
	Addresses *usecase.AddressService
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
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := middleware.RequireAuth(deps.Services.Users)

		handlers.NewUserHandler(deps.Services.Users).RegisterRoutes(api, auth)
		handlers.NewContactHandler(deps.Services.Contacts).RegisterRoutes(api, auth)
		handlers.NewAddressHandler(deps.Services.Addresses).RegisterRoutes(api, auth)
	}

	return r
}
