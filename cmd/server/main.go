package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/application"
	"github.com/Selam-Hotels/service-reservation/internal/config"
	"github.com/Selam-Hotels/service-reservation/internal/domain/booking"
	"github.com/Selam-Hotels/service-reservation/internal/events"
	"github.com/Selam-Hotels/service-reservation/internal/handler"
	"github.com/Selam-Hotels/service-reservation/internal/repository"
	"github.com/Selam-Hotels/service-reservation/pkg/auth"
	"github.com/Selam-Hotels/service-reservation/pkg/database"
	"github.com/Selam-Hotels/service-reservation/pkg/health"
	"github.com/Selam-Hotels/service-reservation/pkg/kafka"
	"github.com/Selam-Hotels/service-reservation/pkg/logger"
	"github.com/Selam-Hotels/service-reservation/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, "service-reservation")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-reservation",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.RoomModel{},
			&repository.BookingModel{},
			&repository.PaymentModel{},
			&repository.GuestProfileModel{},
		); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := cfg.DBConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	// Initialize repositories
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	guestRepo := repository.NewGuestProfileRepository(db)

	// Per-room and per-booking lock registries serialize the
	// check-and-insert windows in the services below.
	roomLocks := booking.NewLockRegistry()
	settlementLocks := booking.NewLockRegistry()

	// Initialize application services
	roomService := application.NewRoomService(roomRepo, zapLogger)
	availabilityService := application.NewAvailabilityService(roomRepo, bookingRepo, zapLogger)
	bookingService := application.NewBookingService(bookingRepo, roomRepo, guestRepo, roomLocks, kafkaProducer, zapLogger)
	settlementService := application.NewSettlementService(paymentRepo, bookingRepo, roomRepo, settlementLocks, kafkaProducer, zapLogger)

	// Initialize Kafka consumer for guest events
	consumerGroupID := cfg.KafkaConfig.GroupPrefix + "reservation-service"
	guestConsumer := events.NewGuestEventConsumer(
		cfg.KafkaConfig.Brokers,
		consumerGroupID,
		guestRepo,
		zapLogger,
	)
	defer guestConsumer.Close()

	// Start Kafka consumer in a goroutine
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	go func() {
		zapLogger.Info("starting guest event consumer")
		if err := guestConsumer.Start(consumerCtx); err != nil {
			if consumerCtx.Err() == nil {
				zapLogger.Error("guest event consumer failed", zap.Error(err))
			}
		}
	}()

	// Initialize HTTP handlers
	roomHandler := handler.NewRoomHandler(roomService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	bookingHandler := handler.NewBookingHandler(bookingService, settlementService)
	paymentHandler := handler.NewPaymentHandler(settlementService)
	adminHandler := handler.NewAdminHandler(settlementService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-reservation")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	roomHandler.RegisterRoutes(apiV1, jwtManager)
	availabilityHandler.RegisterRoutes(apiV1, jwtManager)
	bookingHandler.RegisterRoutes(apiV1, jwtManager)
	paymentHandler.RegisterRoutes(apiV1, jwtManager)
	adminHandler.RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-reservation...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-reservation stopped")
}
