package router

import (
	"context"
	"net/http"
	"slices"
	"time"

	"tokobagus/config"
	"tokobagus/internal/handler"
	"tokobagus/internal/memstore"
	"tokobagus/internal/metrics"
	"tokobagus/internal/middleware"
	"tokobagus/internal/repository"
	"tokobagus/internal/service"
	"tokobagus/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProductRepo interface {
	handler.ProductReader
	service.ProductStore
}

// Stores bundles the persistence the routes depend on.
type Stores struct {
	Products   ProductRepo
	Categories handler.CategoryStore
	Settings   handler.SettingStore
	Messages   handler.MessageStore
	Users      service.UserFinder
	Stats      handler.StatsSource
}

// NewStores wires the MySQL-backed repositories.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Products:   repository.NewProductRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Settings:   repository.NewSettingRepository(db),
		Messages:   repository.NewMessageRepository(db),
		Users:      repository.NewUserRepository(db),
		Stats:      repository.NewDashboardRepository(db),
	}
}

// MemoryStores wires an in-process store.
func MemoryStores(m *memstore.Store) Stores {
	return Stores{
		Products:   m.Products,
		Categories: m.Categories,
		Settings:   m.Settings,
		Messages:   m.Messages,
		Users:      m.Users,
		Stats:      m,
	}
}

// Setup builds the engine. Background workers it starts stop when ctx is done.
func Setup(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, stores Stores, images storage.ImageStore) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes + 1<<20
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("panic", recovered).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
	}))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	// Services
	authSvc := service.NewAuthService(&cfg.JWT, stores.Users)
	productSvc := service.NewProductService(stores.Products, images, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, log)
	productHandler := handler.NewProductHandler(stores.Products, productSvc, cfg.Server.MaxPageSize, cfg.Storage.MaxUploadBytes, log)
	categoryHandler := handler.NewCategoryHandler(stores.Categories, log)
	settingHandler := handler.NewSettingHandler(stores.Settings, log)
	messageHandler := handler.NewMessageHandler(stores.Messages, cfg.Server.MaxPageSize, log)
	adminHandler := handler.NewAdminHandler(stores.Stats, log)

	authMw := middleware.AuthRequired(&cfg.JWT)
	loginLimiter := middleware.NewWindowLimiter(20, time.Minute)
	loginLimiter.StopWhen(ctx)
	contactLimiter := middleware.NewWindowLimiter(10, time.Minute)
	contactLimiter.StopWhen(ctx)
	loginLimit := middleware.RateLimit(loginLimiter)
	contactLimit := middleware.RateLimit(contactLimiter)

	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimit, authHandler.Login)
		api.GET("/auth/me", authMw, authHandler.Me)

		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products", authMw, productHandler.Create)
		api.PUT("/products/:id", authMw, productHandler.Update)
		api.DELETE("/products/:id", authMw, productHandler.Delete)

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", authMw, categoryHandler.Create)
		api.PUT("/categories/:id", authMw, categoryHandler.Update)
		api.DELETE("/categories/:id", authMw, categoryHandler.Delete)

		api.GET("/settings", settingHandler.Get)
		api.PUT("/settings", authMw, settingHandler.Put)

		api.POST("/contact", contactLimit, messageHandler.Contact)

		admin := api.Group("")
		admin.Use(authMw)
		{
			admin.GET("/messages", messageHandler.List)
			admin.DELETE("/messages/:id", messageHandler.Delete)
			admin.GET("/admin/stats", adminHandler.Stats)
		}

		api.GET("/health", handler.Health)
	}

	if local, ok := images.(*storage.LocalStore); ok {
		r.Static(cfg.Storage.PublicPath, local.Dir())
	} else {
		// Remote stores keep the public path stable by redirecting.
		r.GET(cfg.Storage.PublicPath+"/:name", func(c *gin.Context) {
			c.Redirect(http.StatusFound, images.URL(c.Param("name")))
		})
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin"}
	return c
}
