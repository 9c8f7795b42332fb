package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"gallery-backend/internal/infrastructure/storage"
	"gallery-backend/internal/shared/middleware"
	"gallery-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = c.Config.Storage.MaxUploadMB << 20

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigin),
	)

	// Cookie session carries the OAuth access token between
	// /callback and /userinfo.
	sessionStore := cookie.NewStore([]byte(c.Config.Session.Secret))
	router.Use(sessions.Sessions(c.Config.Session.Name, sessionStore))

	// Health check
	router.GET("/health", healthCheckHandler(c))

	setupImageRoutes(router, c)
	setupAuthorRoutes(router, c)
	setupAuthRoutes(router, c)
	setupStaticRoutes(router, c)

	return router
}

// ========================================
// IMAGE ROUTES
// ========================================
func setupImageRoutes(router *gin.Engine, c *container.Container) {
	images := router.Group("/images")
	{
		images.POST("", c.ImageHandler.Create)
		images.GET("", c.ImageHandler.GetAll)
		images.GET("/:id", c.ImageHandler.GetByID)
		images.PUT("/:id", c.ImageHandler.Update)
		images.DELETE("/:id", c.ImageHandler.Delete)
		// Preflight is answered by the CORS middleware with 200;
		// the explicit route keeps gin from returning 404 first.
		images.OPTIONS("", func(ctx *gin.Context) {})
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	authors := router.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// AUTH ROUTES (OAuth pass-through)
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/login", c.AuthHandler.Login)
	router.GET("/callback", c.AuthHandler.Callback)
	router.GET("/userinfo", c.AuthHandler.UserInfo)
}

// ========================================
// STATIC ROUTES
// ========================================
// With the disk driver the stored images are served straight from the
// content root at their projected public paths.
func setupStaticRoutes(router *gin.Engine, c *container.Container) {
	if disk, ok := c.Store.(*storage.DiskStore); ok {
		router.Static(c.Config.Storage.PublicPrefix, disk.Root())
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.DB == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check cache
		cacheStatus := "ok"
		if !appCtx.Config.Redis.Enabled {
			cacheStatus = "disabled"
		} else if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
