package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bursar/internal/accesscontrol"
	adminhandler "bursar/internal/admin/handler"
	"bursar/internal/events"
	"bursar/internal/events/kafka"
	"bursar/internal/gateway"
	gatewayhandler "bursar/internal/gateway/handler"
	gatewaymetrics "bursar/internal/gateway/metrics"
	httpapi "bursar/internal/http"
	"bursar/internal/ledger"
	ledgermemory "bursar/internal/ledger/store/memory"
	ledgerpostgres "bursar/internal/ledger/store/postgres"
	ledgerredis "bursar/internal/ledger/store/redis"
	"bursar/internal/oracle"
	"bursar/internal/period"
	"bursar/internal/platform/config"
	"bursar/internal/platform/httpserver"
	"bursar/internal/platform/logger"
	"bursar/internal/platform/postgres"
	platformredis "bursar/internal/platform/redis"
	"bursar/internal/settings"
	"bursar/internal/token"
	"bursar/internal/transfer"
	id "bursar/pkg/domain"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Event stream. Without brokers notifications still land in the log.
	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := kafka.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("kafka publisher connected", "topic", cfg.Kafka.Topic)
	}

	// Persistence. Postgres when configured, Redis for the ledger as a
	// lighter alternative, in-memory for local development.
	var (
		settingsStore settings.Store
		periodStore   period.Store
		ledgerStore   ledger.Store
	)

	defaultSettings := settings.Settings{
		FeeAmount:    cfg.DefaultFeeAmount,
		PayoutAmount: cfg.DefaultPayoutAmount,
		OracleRef:    cfg.OracleURL,
	}
	now := time.Now()
	defaultPeriod := id.Period{Month: int(now.Month()), Year: now.Year()}

	switch {
	case cfg.PostgresDSN != "":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("postgres migration failed", "error", err)
			os.Exit(1)
		}
		settingsStore = settings.NewPostgres(db, defaultSettings)
		periodStore = period.NewPostgres(db, defaultPeriod)
		ledgerStore = ledgerpostgres.New(db)
		log.Info("using postgres stores")

	case cfg.Redis.URL != "":
		redisClient, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer func() { _ = redisClient.Close() }()
		settingsStore = settings.NewInMemoryStore(defaultSettings)
		periodStore = period.NewInMemoryStore(defaultPeriod)
		ledgerStore = ledgerredis.New(redisClient)
		log.Info("using redis ledger store")

	default:
		settingsStore = settings.NewInMemoryStore(defaultSettings)
		periodStore = period.NewInMemoryStore(defaultPeriod)
		ledgerStore = ledgermemory.New()
		log.Warn("using in-memory stores; state is lost on restart")
	}

	access, err := accesscontrol.NewStaticChecker(cfg.AdminAccounts)
	if err != nil {
		log.Error("invalid admin account list", "error", err)
		os.Exit(1)
	}

	settingsSvc, err := settings.New(settingsStore, access,
		settings.WithLogger(log),
		settings.WithPublisher(publisher),
	)
	if err != nil {
		log.Error("settings service init failed", "error", err)
		os.Exit(1)
	}

	periodSvc, err := period.New(periodStore, access, cfg.EpochFloorYear,
		period.WithLogger(log),
		period.WithPublisher(publisher),
	)
	if err != nil {
		log.Error("period service init failed", "error", err)
		os.Exit(1)
	}

	// The oracle endpoint is read through the settings service on every call
	// so an operator change takes effect without a restart.
	oracleClient := oracle.NewHTTPClient(settingsSvc, cfg.OracleTimeout)

	var transferer transfer.Transferer
	if cfg.TreasuryURL != "" {
		transferer = transfer.NewHTTPClient(cfg.TreasuryURL, cfg.TransferTimeout)
	} else {
		transferer = &transfer.MockTransferer{}
		log.Warn("no treasury configured; transfers are recorded in memory only")
	}

	gatewaySvc, err := gateway.New(oracleClient, ledgerStore, transferer, settingsSvc, periodSvc,
		gateway.WithLogger(log),
		gateway.WithMetrics(gatewaymetrics.New()),
	)
	if err != nil {
		log.Error("gateway service init failed", "error", err)
		os.Exit(1)
	}

	tokens := token.NewService(cfg.JWTSigningKey, "bursar", "bursar")

	router := httpapi.NewRouter(httpapi.Deps{
		Payments:       gatewayhandler.New(gatewaySvc, log),
		Admin:          adminhandler.New(settingsSvc, periodSvc, log),
		Tokens:         tokens,
		AdminTokenHash: cfg.AdminTokenHash,
		Logger:         log,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting bursar", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("bursar stopped")
}
