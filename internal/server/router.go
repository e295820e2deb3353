package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-storyboard-kit/pkg/contact"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"
)

// NewRouter は API のルーティングを構成します。
func NewRouter(catalog *gallery.Catalog, relay *contact.Relay, store *Store) *gin.Engine {
	h := &handlers{catalog: catalog, relay: relay, store: store}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", h.health)

	api := router.Group("/api")
	{
		api.GET("/categories", h.categories)
		api.GET("/projects", h.projects)
		api.GET("/parallax", h.parallax)
		api.GET("/parallax/setup", h.parallaxSetup)
		api.POST("/contact", h.contact)

		sessions := api.Group("/sessions")
		sessions.POST("", h.createSession)
		sessions.GET("/:id", h.getSession)
		sessions.DELETE("/:id", h.deleteSession)
		sessions.POST("/:id/messages", h.sendMessage)
		sessions.GET("/:id/events", h.streamEvents)
		sessions.PUT("/:id/category", h.selectCategory)
		sessions.POST("/:id/contact", h.sessionContact)
	}

	return router
}

// requestLogger は各リクエストを slog で記録するミドルウェアです。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "HTTP request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
