package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkatlas/core/internal/middleware"
	"github.com/parkatlas/core/internal/modules/auth"
	"github.com/parkatlas/core/internal/modules/park"
	"github.com/parkatlas/core/internal/modules/review"
	"github.com/parkatlas/core/internal/modules/storage/legacy"
	"github.com/parkatlas/core/internal/pkg/response"
	"github.com/parkatlas/core/internal/repository"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	parkRepo := repository.NewParkRepository(a.db)
	userRepo := repository.NewUserRepository(a.db)
	reviewRepo := repository.NewReviewRepository(a.db)

	authMW := middleware.Auth(userRepo)

	// OptionalAuth runs first so the rate limiter and the response cache can
	// tell authenticated traffic apart.
	r.Use(middleware.OptionalAuth(userRepo))
	r.Use(middleware.RateLimit(a.rc.Raw(), a.logger))

	api := r.Group(apiPrefix)
	api.Use(middleware.HTTPCache(a.rc.Raw(), middleware.HTTPCacheOptions{
		TTL:       time.Duration(a.cfg.Cache.TTLSeconds) * time.Second,
		Disable:   a.cfg.Cache.Disable || a.cfg.IsDev(),
		SkipPaths: []string{apiPrefix + "/hearts", apiPrefix + "/auth"},
	}))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	cleanCache := func(c *gin.Context) {
		deleted, err := middleware.PurgeHTTPCache(c.Request.Context(), a.rc.Raw())
		if err != nil {
			response.InternalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
	}
	api.GET("/clean_cache", authMW, cleanCache)

	auth.NewHandler(auth.NewService(userRepo), a.logger).RegisterRoutes(api, authMW)

	parkSvc := park.NewService(parkRepo, userRepo, a.cfg.TopParksLimit)
	park.NewHandler(parkSvc, a.logger).RegisterRoutes(api, authMW)

	reviewSvc := review.NewService(reviewRepo, parkRepo)
	review.NewHandler(reviewSvc, a.logger).RegisterRoutes(api, authMW)

	legacySvc := legacy.NewService(a.db, a.logger)
	legacy.NewHandler(legacySvc, a.logger).RegisterRoutes(api, authMW)
}
