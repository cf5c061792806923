package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/cafe/internal/adapter/auth"
	"github.com/rl1809/cafe/internal/adapter/handler"
	"github.com/rl1809/cafe/internal/app"
	"github.com/rl1809/cafe/internal/config"
	"github.com/rl1809/cafe/internal/core/service"
	"github.com/rl1809/cafe/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize stores
	store, closeStore, err := app.OpenStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	idempotency, closeIdempotency, err := app.OpenIdempotencyStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to connect redis", zap.Error(err))
	}

	publisher, closePublisher, err := app.OpenEventPublisher(cfg, lg)
	if err != nil {
		lg.Fatal("failed to connect rabbitmq", zap.Error(err))
	}

	images, err := app.OpenImageStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to configure s3", zap.Error(err))
	}

	// Initialize services
	orderService := service.NewOrderService(store, store, lg, cfg.EventQueueSize)
	menuService := service.NewMenuService(store, images, lg)
	reservationService := service.NewReservationService(store, lg)
	contactService := service.NewContactService(store, lg)
	authService := service.NewAuthService(service.AdminCredentials{
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}, auth.NewJWTIssuer(cfg.JWTSecret, cfg.AdminCookieMaxAge), lg)

	// Start event workers
	var wg sync.WaitGroup
	for i := 0; i < cfg.EventWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			service.RunEventWorker(id, orderService.GetEventQueue(), publisher, lg)
		}(i)
	}
	lg.Info("started event workers", zap.Int("count", cfg.EventWorkers))

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.AdminAuthInterceptor(authService)))
	handler.RegisterOrderServiceServer(grpcServer, handler.NewGRPCHandler(orderService, idempotency, lg))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		lg.Fatal("failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	go func() {
		lg.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			lg.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	gin.SetMode(gin.ReleaseMode)
	httpHandler := handler.NewHTTPHandler(handler.HTTPHandlerDeps{
		Orders:       orderService,
		Menu:         menuService,
		Reservations: reservationService,
		Contacts:     contactService,
		Auth:         authService,
		Idempotency:  idempotency,
		Cookie: handler.CookieConfig{
			Name:   cfg.AdminCookieName,
			MaxAge: cfg.AdminCookieMaxAge,
			Secure: cfg.CookieSecure,
		},
		Logger: lg,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Router(),
	}

	go func() {
		lg.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		lg.Error("HTTP server shutdown failed", zap.Error(err))
	}
	lg.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	lg.Info("gRPC server stopped")

	// Close event queue and wait for workers to drain it
	orderService.Close()
	wg.Wait()
	lg.Info("event workers stopped")

	closePublisher()
	closeIdempotency()
	closeStore()
	lg.Info("connections closed")
}
