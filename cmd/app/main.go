package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devlink-platform/internal/config"
	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/infra/api"
	pg "devlink-platform/internal/infra/db/postgres"
	"devlink-platform/internal/infra/logging"
	"devlink-platform/internal/infra/metrics"
	pay "devlink-platform/internal/infra/payment"
	red "devlink-platform/internal/infra/redis"
	"devlink-platform/internal/infra/sched"
	"devlink-platform/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (local gateway, relaxed config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()

	locker := red.NewLocker(redisClient)
	counter := red.NewHitCounter(redisClient)

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	userRepo := pg.NewUserRepoCacheDecorator(pg.NewUserRepo(pool), redisClient, cfg.Redis.TTL)
	profileRepo := pg.NewProfileRepoCacheDecorator(pg.NewProfileRepo(pool), redisClient, cfg.Redis.TTL)
	featureRepo := pg.NewFeatureRepoCacheDecorator(pg.NewFeatureRepo(pool), redisClient, cfg.Redis.TTL)
	paymentRepo := pg.NewPaymentRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	linkRepo := pg.NewLinkRepo(pool)
	projectRepo := pg.NewProjectRepo(pool)
	experienceRepo := pg.NewExperienceRepo(pool)
	statsRepo := pg.NewStatsRepo(pool)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Runtime.Dev && cfg.Payment.Razorpay.KeyID == "" {
		gateway = pay.NewNoOpGateway(cfg.Payment.Razorpay.KeySecret)
		logger.Warn().Msg("payment gateway: noop (dev)")
	} else {
		gateway, err = pay.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
		if err != nil {
			logger.Fatal().Err(err).Msg("razorpay gateway init failed")
		}
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, profileRepo, tm, logger)
	profileUC := usecase.NewProfileUseCase(userRepo, profileRepo, linkRepo, projectRepo, experienceRepo, counter, logger)
	contentUC := usecase.NewContentUseCase(linkRepo, projectRepo, experienceRepo)
	featureUC := usecase.NewFeatureUseCase(featureRepo, logger)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, featureRepo, subRepo, profileRepo, gateway, tm, locker, logger)
	accessUC := usecase.NewAccessUseCase(subRepo, featureRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(statsRepo, counter, logger)

	// ---- HTTP server ----
	auth := api.NewAuthManager(cfg.Auth.JWTSecret, !cfg.Runtime.Dev, cfg.Auth.SessionTTL)
	srv := api.NewServer(userUC, profileUC, contentUC, featureUC, paymentUC, accessUC, analyticsUC, auth, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Background workers ----
	flusher := sched.NewAnalyticsFlusher(analyticsUC, cfg.Analytics.FlushInterval, logger)
	go flusher.Start(ctx)

	reconciler := sched.NewPaymentReconciler(paymentRepo, gateway, cfg.Reconciler.Interval, cfg.Reconciler.StaleAfter, logger)
	go reconciler.Start(ctx)

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
}
