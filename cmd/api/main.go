package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/infra/gateway"
	"github.com/BruksfildServices01/salon-booking/internal/infra/idempotency"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db := dbpkg.NewDB(cfg, log)
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	metrics.Register()

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	deps := routes.Deps{
		Config: cfg,
		Log:    log,

		Merchants: infraRepo.NewMerchantGormRepository(db),
		Users:     infraRepo.NewUserGormRepository(db),
		Workers:   infraRepo.NewWorkerGormRepository(db),
		Slots:     infraRepo.NewSlotGormRepository(db),
		Bookings:  infraRepo.NewBookingGormRepository(db),
		Payments:  infraRepo.NewPaymentGormRepository(db),

		Gateways:    paymentGateways(cfg, log),
		Idempotency: idempotencyStore(cfg, log),
		Objects:     objectStore(cfg, log),

		Audit:     auditDispatcher,
		AuditLogs: audit.New(db),
		DB:        sqlDB,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// paymentGateways picks the provider when it is configured and the
// simulated gateway otherwise.
func paymentGateways(cfg *config.Config, log zerolog.Logger) []payment.Gateway {
	if cfg.MPAccessToken == "" {
		log.Warn().Msg("MP_ACCESS_TOKEN not set, using simulated payments")
		return []payment.Gateway{gateway.NewSimulated(payment.StatusCompleted)}
	}

	mp, err := gateway.NewMercadoPago(cfg.MPAccessToken, cfg.MPNotificationURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure payment provider")
	}
	return []payment.Gateway{mp}
}

func idempotencyStore(cfg *config.Config, log zerolog.Logger) idempotency.Store {
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, idempotency keys kept in process")
		return idempotency.NewMemoryStore()
	}

	client, err := idempotency.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis unreachable")
	}

	return idempotency.NewRedisStore(client, "salon:")
}

func objectStore(cfg *config.Config, log zerolog.Logger) storage.ObjectStore {
	if cfg.S3Bucket == "" {
		log.Warn().Msg("S3_BUCKET not set, cover images kept in process")
		return storage.NewMemoryStore()
	}

	s3Store, err := storage.NewS3Store(storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure object storage")
	}
	return s3Store
}
