package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tourbook/catalog/internal/auth"
	"github.com/tourbook/catalog/internal/graph"
	"github.com/tourbook/catalog/internal/handlers"
	"github.com/tourbook/catalog/internal/middleware"
	"github.com/tourbook/catalog/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Options struct {
	ServiceName    string
	AllowedOrigins []string
	Catalog        *services.Catalog
	Schema         graphql.Schema
	Hub            *handlers.Hub
	Jobs           handlers.JobStatus
	// Manager is nil when admin login is disabled.
	Manager     *auth.Manager
	Credentials auth.Credentials
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(otelgin.Middleware(opts.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	h := handlers.NewHandler(opts.Catalog)
	if opts.Jobs != nil {
		h.WithJobs(opts.Jobs)
	}
	authHandler := handlers.NewAuthHandler(opts.Manager, opts.Credentials)

	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/catalog", opts.Hub.WebSocket)

	gql := graph.Handler(opts.Schema)
	r.POST("/graphql", gql)
	r.GET("/graphql", gql)

	users := r.Group("/users")
	{
		users.GET("/", h.ListUsers)
		users.POST("/", h.CreateUser)
		users.GET("/:id/", h.GetUser)
		users.PUT("/:id/", h.UpdateUser)
		users.PATCH("/:id/", h.UpdateUser)
		users.DELETE("/:id/", h.DeleteUser)
	}

	zones := r.Group("/zones")
	{
		zones.GET("/", h.ListZones)
		zones.POST("/", h.CreateZone)
		zones.GET("/:id/", h.GetZone)
		zones.PUT("/:id/", h.UpdateZone)
		zones.PATCH("/:id/", h.UpdateZone)
		zones.DELETE("/:id/", h.DeleteZone)
	}

	tours := r.Group("/tours")
	{
		tours.GET("/", h.ListTours)
		tours.POST("/", h.CreateTour)
		tours.GET("/:id/", h.GetTour)
		tours.PUT("/:id/", h.UpdateTour)
		tours.PATCH("/:id/", h.UpdateTour)
		tours.DELETE("/:id/", h.DeleteTour)
	}

	salidas := r.Group("/salidas")
	{
		salidas.GET("/", h.ListDepartures)
		salidas.POST("/", h.CreateDeparture)
		salidas.GET("/:id/", h.GetDeparture)
		salidas.PUT("/:id/", h.UpdateDeparture)
		salidas.PATCH("/:id/", h.UpdateDeparture)
		salidas.DELETE("/:id/", h.DeleteDeparture)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.LoginAdmin)

		if opts.Manager != nil {
			admin := api.Group("/admin", middleware.AuthMiddleware(opts.Manager))
			{
				admin.GET("/me", authHandler.Me)
				admin.GET("/catalog", h.AdminCatalog)
			}
		}
	}

	return r
}
