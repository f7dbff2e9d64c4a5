package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/core/config"
	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/metrics"
	"storefront-gateway/internal/core/proxy"
	"storefront-gateway/internal/core/server"
	filteradapter "storefront-gateway/internal/features/filters/adapters"
	filterhandler "storefront-gateway/internal/features/filters/handler"
	filterservice "storefront-gateway/internal/features/filters/service"
	orderadapter "storefront-gateway/internal/features/orders/adapters"
	orderhandler "storefront-gateway/internal/features/orders/handler"
	orderservice "storefront-gateway/internal/features/orders/service"
	paymentadapter "storefront-gateway/internal/features/payments/adapters"
	paymenthandler "storefront-gateway/internal/features/payments/handler"
	paymentservice "storefront-gateway/internal/features/payments/service"
	shippingadapter "storefront-gateway/internal/features/shipping/adapters"
	shippinghandler "storefront-gateway/internal/features/shipping/handler"
	shippingservice "storefront-gateway/internal/features/shipping/service"
	trackingadapter "storefront-gateway/internal/features/tracking/adapters"
	trackinghandler "storefront-gateway/internal/features/tracking/handler"
	trackingservice "storefront-gateway/internal/features/tracking/service"
	txadapter "storefront-gateway/internal/features/transactions/adapters"
	txhandler "storefront-gateway/internal/features/transactions/handler"
	txservice "storefront-gateway/internal/features/transactions/service"

	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title Storefront Gateway API
// @version 1.0
// @description Gateway between the marketplace storefront and its backend: order status reconciliation, shipping, tracking, filter sessions and card payment confirmation.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	backendMetrics := metrics.NewBackendMetrics(registry)

	// Backend client shared by every feature adapter
	httpClient := httpclient.NewClient(cfg.Marketplace.Timeout(), proxy.FromConfig(cfg.Proxy))
	backend := apiclient.New(cfg.Marketplace, httpClient, backendMetrics)

	// Filter state store and health check
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL, "storefront:")
	if err != nil {
		l.Fatal("Failed to configure Redis", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Warn("Redis is not reachable, filter sessions will fail until it is", zap.Error(err))
	} else {
		l.Info("Redis connection verified")
	}
	cancelPing()

	// Payment provider
	stripeAdapter, err := paymentadapter.NewStripeAdapter(cfg.Stripe)
	if err != nil {
		l.Fatal("Invalid payment provider configuration", zap.Error(err))
	}

	// Services
	txService := txservice.NewTransactionService(txadapter.NewMarketplaceAdapter(backend))
	orderService := orderservice.NewOrderService(orderadapter.NewMarketplaceAdapter(backend), txService)
	shippingService := shippingservice.NewShippingService(shippingadapter.NewMarketplaceAdapter(backend))
	trackingService := trackingservice.NewTrackingService(
		trackingadapter.NewMarketplaceAdapter(backend),
		clock.WallClock,
		cfg.Tracking.RefreshInterval(),
	)
	defer trackingService.Close()
	filterService := filterservice.NewFilterService(
		filteradapter.NewCacheStore(redisCache, cfg.Redis.FilterStateTTL()),
	)
	paymentFlow := paymentservice.NewFlow(stripeAdapter, clock.WallClock)
	autoProcessor := paymentservice.NewAutoProcessor(paymentFlow)

	srv := server.New(cfg, registry)

	// Register Routes
	txhandler.NewTransactionHandler(txService).Register(srv.App)
	orderhandler.NewOrderHandler(orderService).Register(srv.App)
	shippinghandler.NewShippingHandler(shippingService).Register(srv.App)
	trackinghandler.NewTrackingHandler(trackingService).Register(srv.App)
	filterhandler.NewFilterHandler(filterService).Register(srv.App)
	paymenthandler.NewPaymentHandler(paymentFlow, autoProcessor).Register(srv.App)

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down")
	if err := srv.Shutdown(); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
}
