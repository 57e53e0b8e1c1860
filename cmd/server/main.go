package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/masalakitchen/storefront/internal/cache"
	"github.com/masalakitchen/storefront/internal/config"
	"github.com/masalakitchen/storefront/internal/events"
	"github.com/masalakitchen/storefront/internal/httpserver"
	"github.com/masalakitchen/storefront/internal/payments"
	"github.com/masalakitchen/storefront/internal/qr"
	"github.com/masalakitchen/storefront/internal/repo"
	"github.com/masalakitchen/storefront/internal/search"
	"github.com/masalakitchen/storefront/internal/service"
	"github.com/masalakitchen/storefront/pkg/logging"
	loggingmw "github.com/masalakitchen/storefront/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	producer := events.NewProducer(cfg.KafkaBrokers)

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
	}
	index := search.NewIndex(esClient)

	menuCache := cache.NewMenuCache(cfg.RedisAddr, cfg.RedisPassword, 5*time.Minute)

	cartService := &service.CartService{Repo: gormRepo, Producer: producer}
	orderService := &service.OrderService{
		Repo:     gormRepo,
		Producer: producer,
		QR:       &qr.Generator{BaseURL: cfg.SuccessURL},
	}
	catalogService := &service.CatalogService{Repo: gormRepo, Cache: menuCache, Index: index}
	authService := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	checkoutService := &service.CheckoutService{
		Cart:     cartService,
		Orders:   orderService,
		Payments: payments.NewClient(cfg.PaymentURL, cfg.SuccessURL),
	}

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := authService.EnsureAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("admin bootstrap failed", "error", err)
	}
	if err := catalogService.ReindexAll(bootCtx); err != nil {
		logger.Warn("search reindex failed", "error", err)
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:     &httpserver.CartHTTP{Svc: cartService},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderService},
		MenuHandler:     &httpserver.MenuHTTP{Svc: catalogService, Index: index},
		AdminHandler:    &httpserver.AdminHTTP{Auth: authService, Catalog: catalogService},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutService},
		JWTSecret:       cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting storefront", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}
	if err := menuCache.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("shutdown complete")
}
