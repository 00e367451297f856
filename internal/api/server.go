// Package api exposes plans, recipes and shopping lists over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plansemanal/plansemanal/internal/config"
	"github.com/plansemanal/plansemanal/internal/services/planning"
	"github.com/plansemanal/plansemanal/internal/services/shopping"
)

// HealthChecker reports whether the backing store is usable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the services the handlers call into.
type Deps struct {
	Planning *planning.Service
	Shopping *shopping.Service
	Health   HealthChecker
	Version  string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg config.ServerConfig, deps Deps) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.Config{
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}
		if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = cfg.AllowedOrigins
		}
		router.Use(cors.New(corsConfig))
	}

	h := &handler{deps: deps}

	router.GET("/health", h.health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/plans", h.listPlans)
		v1.GET("/plans/latest", h.latestPlan)
		v1.GET("/plans/:id", h.getPlan)
		v1.GET("/plans/:id/shopping-list", h.shoppingList)
		v1.POST("/plans/:id/shopping-list/:item/toggle", h.toggleItem)
		v1.DELETE("/plans/:id/shopping-list/checks", h.clearChecks)
		v1.GET("/recipes/:id", h.getRecipe)
	}

	return router
}

// Serve runs the API on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, router http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving api: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api: %w", err)
	}
	slog.Info("api stopped")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}
