// Package server boots the HTTP process: configuration, infrastructure
// connections, dependency wiring, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shirshak001/JEWEL/app/controllers"
	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/app/routes"
	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/config"
	"github.com/shirshak001/JEWEL/pkg/cache"
	"github.com/shirshak001/JEWEL/pkg/database"
	"github.com/shirshak001/JEWEL/pkg/event"
	"github.com/shirshak001/JEWEL/pkg/logger"
	"github.com/shirshak001/JEWEL/pkg/metrics"
	"github.com/shirshak001/JEWEL/pkg/middleware"
	"github.com/shirshak001/JEWEL/pkg/reqid"
	"github.com/shirshak001/JEWEL/pkg/router"
	"github.com/shirshak001/JEWEL/pkg/session"
	"github.com/shirshak001/JEWEL/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start runs the server until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	if err := cache.Connect(ctx); err != nil {
		// Redis degrades features (cart, sessions, snapshot) but the
		// storefront catalogue still serves from MongoDB.
		logger.Warn("redis unavailable, continuing without cache", "error", err)
	}
	defer cache.Close()

	if err := logger.EnableMongo(config.MongoURI(), config.MongoDatabase(), config.MongoLogCollection()); err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
	}
	defer logger.Close()

	storage.Connect()

	r := BuildRouter()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	event.Flush()
	return srv.Shutdown(shutdownCtx)
}

// BuildRouter wires repositories, services and controllers onto a fresh
// router. Split from Start so the CLI's route listing can reuse it.
func BuildRouter() *router.Router {
	sessions := session.NewStore(config.SessionTTL())

	productRepo := repositories.NewProductRepository()
	categoryRepo := repositories.NewCategoryRepository()
	orderRepo := repositories.NewOrderRepository(productRepo)
	userRepo := repositories.NewUserRepository()

	catalogSvc := services.NewCatalogService(productRepo)
	cartSvc := services.NewCartService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, cartSvc, catalogSvc)
	paymentSvc := services.NewPaymentService(orderSvc)
	authSvc := services.NewAuthService(userRepo, sessions)
	inventorySvc := services.NewInventoryService(productRepo, catalogSvc)
	categorySvc := services.NewCategoryService(categoryRepo)
	statsSvc := services.NewStatsService(productRepo, orderRepo)
	uploadSvc := services.NewUploadService()

	r := router.New()
	r.Use(
		metrics.Middleware,
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	r.Mount("/metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Controllers{
		Products:   controllers.NewProductController(catalogSvc),
		Cart:       controllers.NewCartController(cartSvc),
		Orders:     controllers.NewOrderController(orderSvc),
		Payments:   controllers.NewPaymentController(paymentSvc),
		Auth:       controllers.NewAuthController(authSvc),
		Inventory:  controllers.NewInventoryController(inventorySvc),
		Categories: controllers.NewCategoryController(categorySvc),
		Stats:      controllers.NewStatsController(statsSvc),
		Uploads:    controllers.NewUploadController(uploadSvc),
		Alerts:     controllers.NewAlertController(sessions),
	}, sessions)

	// Warm the catalogue snapshot so the Redis fallback works from the
	// first request. Skipped when the router is built without a database,
	// as route:list does.
	if database.Client() != nil {
		go func() {
			warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			catalogSvc.RefreshSnapshot(warmCtx)
		}()
	}

	return r
}
