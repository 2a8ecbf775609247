package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"s7scheduling/middleware"
	"s7scheduling/scheduling"
)

type RouterOptions struct {
	APIKey      string
	CORSOrigins []string
	StoreKind   string
	Version     string
}

// NewRouter builds the engine with every route. Reads are open; mutations
// require a writer.
func NewRouter(svc *scheduling.Service, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.Use(middleware.APIKey(opts.APIKey))

	r.GET("/health", HealthCheck(svc, opts.StoreKind, opts.Version))

	api := r.Group("/api/v1")
	write := middleware.RequireWriter()

	api.GET("/dashboard", Dashboard(svc))

	api.GET("/projects", ListProjects(svc))
	api.POST("/projects", write, CreateProject(svc))
	api.GET("/projects/:id", GetProject(svc))
	api.DELETE("/projects/:id", write, DeleteProject(svc))

	api.GET("/projects/:id/stripboard", Stripboard(svc))
	api.GET("/projects/:id/scenes", ListScenes(svc))
	api.POST("/projects/:id/scenes", write, CreateScene(svc))
	api.PATCH("/projects/:id/scenes/:scene_id", write, UpdateScene(svc))
	api.PATCH("/projects/:id/scenes/:scene_id/status", write, UpdateSceneStatus(svc))
	api.DELETE("/projects/:id/scenes/:scene_id", write, DeleteScene(svc))
	api.POST("/projects/:id/scenes/:scene_id/actions/:action", write, SceneAction(svc))

	api.GET("/locations", ListLocations(svc))
	api.POST("/locations", write, CreateLocation(svc))
	api.GET("/locations/:id", GetLocation(svc))
	api.DELETE("/locations/:id", write, DeleteLocation(svc))

	r.NoRoute(NotFound(logger))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// NotFound answers unknown routes and logs the attempted path.
func NotFound(logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("http")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		logger.Warn("Route not found", zap.String("method", c.Request.Method), zap.String("path", path))
		c.JSON(http.StatusNotFound, gin.H{"error": "Scene Not Found", "path": path})
	}
}
