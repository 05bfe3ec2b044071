package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func attachRoutes(ctx context.Context, r *gin.Engine, d Deps) {
	cfg := d.Config

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders:    []string{"Content-Length", requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Spy Cat Agency API"})
	})
	r.GET("/healthz", health(d.Checks))
	if cfg.MetricsEnabled && d.Metrics != nil && d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("")
	writes := r.Group("")
	if cfg.JWTSecret != "" {
		writes.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
	}
	if cfg.RateLimit > 0 {
		limit := RateLimitMiddleware(NewRateLimiter(ctx, cfg.RateLimit, cfg.RateWindow))
		api.Use(limit)
		writes.Use(limit)
	}

	catH := NewSpyCats(d.Service)
	missionH := NewMissions(d.Service)
	targetH := NewTargets(d.Service)

	api.GET("/spy-cats", catH.List)
	api.GET("/spy-cats/:id", catH.Get)
	writes.POST("/spy-cats", catH.Create)
	writes.PUT("/spy-cats/:id", catH.Update)
	writes.DELETE("/spy-cats/:id", catH.Delete)

	api.GET("/missions", missionH.List)
	api.GET("/missions/:id", missionH.Get)
	writes.POST("/missions", missionH.Create)
	writes.PUT("/missions/:id/assign", missionH.Assign)
	writes.DELETE("/missions/:id", missionH.Delete)

	api.GET("/targets/:id", targetH.Get)
	writes.PUT("/targets/:id", targetH.Update)
}
