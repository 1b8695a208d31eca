package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/lumenview/lumen/internal/http/middleware"
	adminapi "github.com/lumenview/lumen/internal/http/api/admin/endpoints"
	displayapi "github.com/lumenview/lumen/internal/http/api/display/endpoints"
	"github.com/lumenview/lumen/internal/notify"
	"github.com/lumenview/lumen/internal/storage"
	"github.com/lumenview/lumen/internal/store"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	st store.Store,
	uploads storage.Storage,
	notifier *notify.Notifier,
	rdb *redis.Client,
) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
		},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes.
	admin := r.Group("/api/admin")
	adminapi.RegisterAuthRoutes(admin, env.SecretKey, env.AdminPasswordHash)

	// Protected admin routes.
	admin.Use(middleware.JWTMiddleware(env.SecretKey))
	adminapi.RegisterContentRoutes(admin, st, uploads)
	adminapi.RegisterLayoutRoutes(admin, st)
	adminapi.RegisterPlaylistRoutes(admin, st, notifier)
	adminapi.RegisterScheduleRoutes(admin, st, notifier)

	// Display routes stay token-free: players authenticate at the network
	// layer and only ever read.
	display := r.Group("/api/display")
	displayapi.RegisterDisplayRoutes(display, st, rdb)

	if !env.UseSpaces {
		r.Static("/uploads", env.UploadDir)
	}
}
