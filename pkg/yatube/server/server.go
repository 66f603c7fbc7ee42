// Package server assembles the gin engine with every route of the site.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/yatube/pkg/yatube/admin"
	"github.com/mikepea/yatube/pkg/yatube/auth"
	"github.com/mikepea/yatube/pkg/yatube/cache"
	"github.com/mikepea/yatube/pkg/yatube/feed"
	"github.com/mikepea/yatube/pkg/yatube/follow"
	"github.com/mikepea/yatube/pkg/yatube/groups"
	"github.com/mikepea/yatube/pkg/yatube/logging"
	"github.com/mikepea/yatube/pkg/yatube/media"
	"github.com/mikepea/yatube/pkg/yatube/posts"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/mikepea/yatube/api/swagger"
)

// Deps are the collaborators the server is built from
type Deps struct {
	DB     *gorm.DB
	Logger *zap.Logger
	// Pages caches the global feed; nil disables caching
	Pages *cache.PageCache
	// Media stores uploaded images; nil disables uploads
	Media *media.FileStore
}

// New returns an engine serving the site, the admin API and the API docs
func New(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pages := deps.Pages
	if pages == nil {
		pages = cache.New(0)
	}

	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery(), auth.OptionalAuth())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "yatube",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var store media.Store
	if deps.Media != nil {
		store = deps.Media
		r.Static(media.URLPrefix, deps.Media.Root())
	}

	followService := follow.NewService(deps.DB, logger)

	// Identity (public)
	auth.NewHandler(deps.DB).RegisterRoutes(r.Group("/auth"))

	// Site pages
	site := &r.RouterGroup
	feed.NewHandler(feed.NewService(deps.DB, followService), pages, logger).RegisterRoutes(site)
	posts.NewHandler(posts.NewService(deps.DB, store, logger), logger).RegisterRoutes(site)
	follow.NewHandler(followService, logger).RegisterRoutes(site)

	// Admin routes (JWT only, admin role required)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth.AuthMiddleware(), auth.RequireAdmin())
	groups.NewHandler(groups.NewService(deps.DB, logger), logger).RegisterRoutes(adminGroup)
	admin.NewHandler(admin.NewService(deps.DB, logger), pages, logger).RegisterRoutes(adminGroup)

	return r
}
