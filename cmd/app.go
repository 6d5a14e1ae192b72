/*
Package cmd - application assembly.

Wires configuration, persistence (MySQL or in-memory per config),
application services, controllers, and the HTTP server.
*/
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/api"
	apicart "storefront/api/cart"
	apicatalog "storefront/api/catalog"
	apicategory "storefront/api/category"
	apicheckout "storefront/api/checkout"
	"storefront/api/health"
	apiorder "storefront/api/order"
	apireview "storefront/api/review"
	cartapp "storefront/application/cart"
	catalogapp "storefront/application/catalog"
	categoryapp "storefront/application/category"
	checkoutapp "storefront/application/checkout"
	orderapp "storefront/application/order"
	reviewapp "storefront/application/review"
	"storefront/config"
	cartdomain "storefront/domain/cart"
	catalogdomain "storefront/domain/catalog"
	categorydomain "storefront/domain/category"
	orderdomain "storefront/domain/order"
	reviewdomain "storefront/domain/review"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/mysql"
	"storefront/infrastructure/persistence/retry"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App Application instance
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
}

// repositories groups the persistence implementations one backend provides.
type repositories struct {
	catalog    catalogdomain.Repository
	category   categorydomain.Repository
	cart       cartdomain.Repository
	order      orderdomain.Repository
	review     reviewdomain.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApp Create the application from configuration
func NewApp(cfg *config.Config) *App {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	var db *gorm.DB
	var repos repositories

	switch cfg.Database.Type {
	case "mysql":
		db, repos = initMySQL(cfg)
	default:
		logger.Info("Using in-memory persistence layer")
		catalogRepo := memory.NewCatalogRepository()
		cartRepo := memory.NewCartRepository()
		orderRepo := memory.NewOrderRepository()
		reviewRepo := memory.NewReviewRepository()
		categoryRepo := memory.NewCategoryRepository()
		repos = repositories{
			catalog:    catalogRepo,
			category:   categoryRepo,
			cart:       cartRepo,
			order:      orderRepo,
			review:     reviewRepo,
			uowFactory: memory.NewUnitOfWorkFactory(cartRepo, catalogRepo, categoryRepo, orderRepo, reviewRepo),
		}
	}

	// Application services
	catalogService := catalogapp.NewApplicationService(repos.catalog, repos.order)
	categoryService := categoryapp.NewApplicationService(repos.category, repos.catalog)
	cartService := cartapp.NewApplicationService(repos.cart, repos.catalog)
	checkoutService := checkoutapp.NewApplicationService(repos.cart, repos.catalog, repos.order, repos.uowFactory)
	orderService := orderapp.NewApplicationService(repos.order, repos.uowFactory)
	reviewService := reviewapp.NewApplicationService(repos.review, repos.order, repos.catalog, repos.uowFactory)

	// Controllers
	var healthDB *sql.DB
	if db != nil {
		healthDB, _ = db.DB()
	}
	router := api.NewRouter(
		cfg,
		health.NewController(cfg, healthDB),
		apicatalog.NewController(catalogService),
		apicategory.NewController(categoryService),
		apicart.NewController(cartService),
		apicheckout.NewController(checkoutService),
		apiorder.NewController(orderService),
		apireview.NewController(reviewService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config: cfg,
		router: router,
		server: server,
		db:     db,
	}
}

func initMySQL(cfg *config.Config) (*gorm.DB, repositories) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(cfg).Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	// Auto migration in development environment
	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
	}

	return db, repositories{
		catalog:    mysql.NewCatalogRepository(db),
		category:   mysql.NewCategoryRepository(db),
		cart:       mysql.NewCartRepository(db),
		order:      mysql.NewOrderRepository(db),
		review:     mysql.NewReviewRepository(db),
		uowFactory: mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg)),
	}
}

// Run Start the HTTP server and block until shutdown
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("Server stopped")
	_ = logger.Sync()
	return nil
}
