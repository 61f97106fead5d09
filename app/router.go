// Package app wires the HTTP endpoints together
package app

import (
	"bitwise74/file-linker/app/link"
	"bitwise74/file-linker/app/root"
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/pkg/middleware"
	"context"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Password forms are tiny, anything bigger is not a browser
const maxFormSize = 4 << 10

type Options struct {
	CORS      []string
	RateLimit float64 // Requests per second per client IP
	JWTSecret string  // Empty disables the management API
}

// NewRouter builds the engine. Background work started for it stops when
// ctx is done.
func NewRouter(ctx context.Context, d *internal.Deps, o Options) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(corsConfig(o.CORS)),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD" || c.Request.URL.Path == "/metrics"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetInt64("userID"); v != 0 {
					fields = append(fields, zap.Int64("userID", v))
				}

				return fields
			},
		}),
		middleware.RateLimiterMiddleware(ctx, middleware.RateLimiterConfig{
			RequestsPerSecond: o.RateLimit,
			Burst:             int(o.RateLimit * 60),
		}),
	)

	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(link.Templates())

	store := persist.NewMemoryStore(time.Minute)

	// GET /			-> Service info
	router.GET("/", cache.CacheByRequestURI(store, 30*time.Second), func(c *gin.Context) { root.Info(c, d) })

	// GET /metrics			-> Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// GET /s/:id			-> Player page or password prompt
	router.GET("/s/:id", func(c *gin.Context) { link.Stream(c, d) })

	// GET /v/:id			-> Redirect to the object, public links only
	router.GET("/v/:id", func(c *gin.Context) { link.Direct(c, d) })

	// GET /d/:id			-> Redirect to the object as a download or password prompt
	router.GET("/d/:id", func(c *gin.Context) { link.Download(c, d) })

	// POST /p/:mode/:id		-> Password submission for the stream (s) or download (d) page
	router.POST("/p/:mode/:id", middleware.BodySizeLimiter(maxFormSize), func(c *gin.Context) { link.Unlock(c, d) })

	m := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	if o.JWTSecret == "" {
		zap.L().Info("No JWT secret set, management API disabled")
		return router
	}

	jwt := middleware.NewJWTMiddleware([]byte(o.JWTSecret))

	l := m.Group("/links", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/links		-> Creates a link for an already uploaded object
		l.POST("", func(c *gin.Context) { link.Create(c, d) })

		// DELETE /api/links/:id	-> Revokes a link owned by the caller
		l.DELETE("/:id", func(c *gin.Context) { link.Revoke(c, d) })
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Range"},
		ExposeHeaders: []string{"Content-Length", "Content-Range", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	// Links are meant to be opened from anywhere
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
