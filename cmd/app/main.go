package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/account"
	"github.com/Domenick1991/carrental/internal/bootstrap"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/kvstore"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/auth"
	"github.com/Domenick1991/carrental/internal/service/booking"
	"github.com/Domenick1991/carrental/internal/service/catalog"
	"github.com/Domenick1991/carrental/internal/service/checkout"
	"github.com/Domenick1991/carrental/internal/service/dashboard"
	"github.com/Domenick1991/carrental/internal/service/payments"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := kvstore.Open(ctx, cfg)
	if err != nil {
		zl.Fatal("open store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	bookingRepo := repository.NewBookingRepository(store, zl)
	carRepo := repository.NewCarRepository(store, zl, repository.WithFirstCarID(catalog.FirstManagedCarID))
	paymentRepo := repository.NewPaymentRepository(store, zl)
	sessionRepo := repository.NewSessionRepository(store, zl)
	counterRepo := repository.NewCounterRepository(store, zl)

	var opts []booking.BookingServiceOption
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, zl)
		defer producer.Close()
		if err := producer.Ping(ctx); err != nil {
			zl.Warn("kafka unreachable, events will be dropped", zap.Error(err))
		}
		opts = append(opts,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	accountClient := account.NewClient(cfg.Account, zl)
	var gateway checkout.PaymentGateway = checkout.StubGateway{}
	if cfg.Booking.PaymentGateway == "remote" {
		gateway = accountClient
	}

	bookingService := booking.NewBookingService(bookingRepo, zl, opts...)
	catalogService := catalog.NewCatalogService(carRepo, cfg.Booking.MaxRentalDays, zl)
	checkoutService := checkout.NewCheckoutService(catalogService, bookingService, paymentRepo, sessionRepo, gateway, zl)
	authService := auth.NewAuthService(cfg.Admin, accountClient, sessionRepo, zl)
	dashboardService := dashboard.NewDashboardService(bookingRepo, counterRepo, zl)
	paymentService := payments.NewPaymentService(paymentRepo, zl)

	router := bootstrap.NewRouter(cfg, bootstrap.Handlers{
		Bookings:  api.NewBookingHandler(bookingService),
		Cars:      api.NewCarHandler(catalogService),
		Checkout:  api.NewCheckoutHandler(checkoutService),
		Auth:      api.NewAuthHandler(authService),
		Dashboard: api.NewDashboardHandler(dashboardService),
		Payments:  api.NewPaymentHandler(paymentService),
	}, zl)

	if err := bootstrap.Run(ctx, cfg, router, zl); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
