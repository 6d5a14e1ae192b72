package api

import (
	"storefront/api/cart"
	"storefront/api/catalog"
	"storefront/api/category"
	"storefront/api/checkout"
	"storefront/api/health"
	"storefront/api/middleware"
	"storefront/api/order"
	"storefront/api/review"
	"storefront/config"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine             *gin.Engine
	config             *config.Config
	healthController   *health.Controller
	catalogController  *catalog.Controller
	categoryController *category.Controller
	cartController     *cart.Controller
	checkoutController *checkout.Controller
	orderController    *order.Controller
	reviewController   *review.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	catalogController *catalog.Controller,
	categoryController *category.Controller,
	cartController *cart.Controller,
	checkoutController *checkout.Controller,
	orderController *order.Controller,
	reviewController *review.Controller,
) *Router {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware (order is important)
	engine.Use(middleware.RequestIDMiddleware())                      // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())                       // 2. Recovery middleware
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))                  // 4. CORS
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 5. Rate limiting
	engine.Use(middleware.IdentityMiddleware())                       // 6. Resolve caller identity

	return &Router{
		engine:             engine,
		config:             cfg,
		healthController:   healthController,
		catalogController:  catalogController,
		categoryController: categoryController,
		cartController:     cartController,
		checkoutController: checkoutController,
		orderController:    orderController,
		reviewController:   reviewController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.catalogController.RegisterRoutes(apiGroup)
		r.categoryController.RegisterRoutes(apiGroup)
		r.cartController.RegisterRoutes(apiGroup)
		r.checkoutController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.reviewController.RegisterRoutes(apiGroup)
	}

	// Root path route
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
