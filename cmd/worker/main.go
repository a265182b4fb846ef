package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/kvstore"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/notify"
	"github.com/Domenick1991/carrental/internal/repository"
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
	zl = zl.With(zap.String("component", "worker"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := kvstore.Open(ctx, cfg)
	if err != nil {
		zl.Fatal("open store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	bookingRepo := repository.NewBookingRepository(store, zl)

	sched, err := gocron.NewScheduler()
	if err != nil {
		zl.Fatal("create scheduler", zap.Error(err))
	}
	_, err = sched.NewJob(
		gocron.DurationJob(time.Duration(cfg.Worker.ReconcileIntervalMinutes)*time.Minute),
		gocron.NewTask(func() {
			count, err := bookingRepo.ReconcileConfirmedCount(ctx)
			if err != nil {
				zl.Error("reconcile confirmed count", zap.Error(err))
				return
			}
			zl.Debug("confirmed count reconciled", zap.Int("count", count))
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		zl.Fatal("schedule reconcile job", zap.Error(err))
	}
	sched.Start()
	defer func() {
		if err := sched.Shutdown(); err != nil {
			zl.Warn("scheduler shutdown", zap.Error(err))
		}
	}()

	if cfg.Kafka.Enabled() && cfg.Kafka.NotificationsTopic != "" {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, zl)
		defer consumer.Close()

		var senderOpts []notify.SenderOption
		if cfg.Notify.MailEnabled() {
			client, err := notify.NewSMTPClient(cfg.Notify)
			if err != nil {
				zl.Fatal("smtp client", zap.Error(err))
			}
			senderOpts = append(senderOpts, notify.WithMailer(client, cfg.Notify.From, cfg.Notify.To))
		}
		sender := notify.NewSender(zl, senderOpts...)
		go func() {
			if err := consumer.Consume(ctx, sender.Send); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("consumer stopped", zap.Error(err))
			}
		}()
	} else {
		zl.Info("kafka disabled, notifications are not consumed")
	}

	<-ctx.Done()
	zl.Info("shutting down")
}
