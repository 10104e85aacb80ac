package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"liken/internal/application/payout/settlementgateway"
	payoutUsecases "liken/internal/application/payout/usecases"
	reminderUsecases "liken/internal/application/reminder/usecases"
	"liken/internal/infrastructure/config"
	"liken/internal/infrastructure/email"
	"liken/internal/infrastructure/ledgerstore"
	"liken/internal/infrastructure/lock"
	"liken/internal/infrastructure/repository"
	"liken/internal/infrastructure/scheduler"
	"liken/internal/infrastructure/settlement"
	"liken/internal/shared/logger"
)

const payoutLockKey = "liken:payout_cycle_lock"

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting payout worker", "environment", env)

	store := ledgerstore.NewClient(cfg.LedgerStore)
	settingsRepo := repository.NewPayoutSettingsRepository(store)
	recordRepo := repository.NewEarningRecordRepository(store)
	requestRepo := repository.NewPayoutRequestRepository(store)
	accountRepo := repository.NewAgencyAccountRepository(store)
	invoiceRepo := repository.NewDueInvoiceRepository(store)

	var gateway *settlement.StripeGateway
	if cfg.Stripe.Configured() {
		gateway = settlement.NewStripeGateway(cfg.Stripe, accountRepo, requestRepo, log)
	} else {
		log.Warnw("stripe not configured, payout settlement disabled")
	}

	// The lock is optional: a single-instance deployment runs without
	// Redis, relying on ticker semantics alone.
	var cycleLock *lock.RedisLock
	if cfg.Redis.Configured() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

		cycleLock = lock.NewRedisLock(redisClient, payoutLockKey, cfg.Payout.Interval)
	}

	runCycleUC := payoutUsecases.NewRunPayoutCycleUseCase(
		settingsRepo,
		recordRepo,
		requestRepo,
		gatewayOrNil(gateway),
		cfg.Payout,
		log,
	)

	sendRemindersUC := reminderUsecases.NewSendPaymentRemindersUseCase(
		invoiceRepo,
		email.NewSMTPEmailService(cfg.Email),
		cfg.Reminder.LeadDays,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payoutScheduler := scheduler.NewPayoutScheduler(runCycleUC, cycleLock, cfg.Payout.Interval, log)
	payoutScheduler.Start(ctx)

	var reminderScheduler *scheduler.ReminderScheduler
	if cfg.Reminder.Enabled {
		reminderScheduler = scheduler.NewReminderScheduler(sendRemindersUC, cfg.Reminder.Interval, log)
		reminderScheduler.Start(ctx)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Infow("shutting down payout worker")
	cancel()
	payoutScheduler.Stop()
	if reminderScheduler != nil {
		reminderScheduler.Stop()
	}
	log.Infow("payout worker stopped")
}

// gatewayOrNil keeps the use case's nil check working: a typed nil
// pointer stored in the interface would not compare equal to nil.
func gatewayOrNil(g *settlement.StripeGateway) settlementgateway.SettlementGateway {
	if g == nil {
		return nil
	}
	return g
}
