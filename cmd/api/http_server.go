package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/giovaniif/device-rental/infra/auth"
	"github.com/giovaniif/device-rental/infra/config"
	"github.com/giovaniif/device-rental/infra/gateways"
	"github.com/giovaniif/device-rental/infra/logging"
	"github.com/giovaniif/device-rental/infra/loki"
	"github.com/giovaniif/device-rental/infra/metrics"
	"github.com/giovaniif/device-rental/infra/repositories"
	"github.com/giovaniif/device-rental/infra/tracing"
	"github.com/giovaniif/device-rental/protocols"
	"github.com/giovaniif/device-rental/use_cases/approve"
	"github.com/giovaniif/device-rental/use_cases/availability"
	"github.com/giovaniif/device-rental/use_cases/cancel"
	"github.com/giovaniif/device-rental/use_cases/catalog"
	"github.com/giovaniif/device-rental/use_cases/complete"
	"github.com/giovaniif/device-rental/use_cases/login"
	"github.com/giovaniif/device-rental/use_cases/reject"
	"github.com/giovaniif/device-rental/use_cases/reserve"
)

const (
	serviceName  = "device-rental"
	eventBuffer  = 256
	shutdownWait = 10 * time.Second
)

type gatewaySet struct {
	idempotency protocols.IdempotencyGateway
	events      protocols.EventPublisher
	clock       protocols.Clock
}

// buildDependencies wires stores and use cases around the given gateways and
// seeds the catalog and directory.
func buildDependencies(logger *slog.Logger, tokens *auth.Tokens, gw gatewaySet) (Dependencies, error) {
	itemRepository := repositories.NewItemRepository()
	reservationRepository := repositories.NewReservationRepository(itemRepository)
	accountRepository := repositories.NewAccountRepository()
	if err := seed(itemRepository, accountRepository); err != nil {
		return Dependencies{}, err
	}
	recorder := metrics.NewRecorder()

	return Dependencies{
		Logger:       logger,
		Tokens:       tokens,
		Reservations: reservationRepository,
		Catalog:      catalog.NewCatalog(itemRepository, reservationRepository),
		Login:        login.NewLogin(accountRepository, tokens),
		Reserve:      reserve.NewReserve(itemRepository, reservationRepository, gw.idempotency, gw.events, gw.clock),
		Approve:      approve.NewApprove(reservationRepository, gw.events, recorder, gw.clock),
		Reject:       reject.NewReject(reservationRepository, gw.events, recorder, gw.clock),
		Cancel:       cancel.NewCancel(reservationRepository, gw.events, recorder, gw.clock),
		Complete:     complete.NewComplete(reservationRepository, gw.events, recorder, gw.clock),
		Availability: availability.NewAvailability(itemRepository, reservationRepository, recorder),
		HealthChecks: map[string]func(context.Context) error{},
	}, nil
}

func StartServer() {
	cfg := config.Load()

	lokiWriter := loki.NewWriter(cfg.LokiURL, serviceName, map[string]string{"env": cfg.Env})
	var logger *slog.Logger
	if lokiWriter != nil {
		logger = logging.New(cfg.LogLevel, lokiWriter)
		defer lokiWriter.Close()
	} else {
		logger = logging.New(cfg.LogLevel, nil)
	}
	slog.SetDefault(logger)

	if shutdown := tracing.Init(serviceName); shutdown != nil {
		defer shutdown()
	}
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	gw := gatewaySet{
		idempotency: gateways.NewIdempotencyGatewayMemory(),
		events:      gateways.NewEventPublisherLog(logger),
		clock:       gateways.NewClock(),
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancelPing()
		if err != nil {
			logger.Warn("redis unavailable, using in-memory idempotency", "addr", cfg.RedisAddr, "err", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			gw.idempotency = gateways.NewIdempotencyGatewayRedis(redisClient)
			defer redisClient.Close()
		}
	}

	var kafkaWriter *kafka.Writer
	var asyncEvents *gateways.AsyncEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter = gateways.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		retrying := gateways.NewRetryingEventPublisher(gateways.NewEventPublisherKafka(kafkaWriter), gateways.NewSleeper())
		asyncEvents = gateways.NewAsyncEventPublisher(retrying, eventBuffer)
		gw.events = asyncEvents
		logger.Info("publishing reservation events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	deps, err := buildDependencies(logger, tokens, gw)
	if err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
	if redisClient != nil {
		deps.HealthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("rental service listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownWait)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if asyncEvents != nil {
		if err := asyncEvents.Close(shutdownCtx); err != nil {
			logger.Error("draining events", "err", err)
		}
	}
	if kafkaWriter != nil {
		_ = kafkaWriter.Close()
	}
}
