package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingapp "github.com/jdcrm/backend/internal/application/booking"
	catalogapp "github.com/jdcrm/backend/internal/application/catalog"
	"github.com/jdcrm/backend/internal/application/notify"
	pipelineapp "github.com/jdcrm/backend/internal/application/pipeline"
	reportapp "github.com/jdcrm/backend/internal/application/report"
	"github.com/jdcrm/backend/internal/infrastructure/auth"
	"github.com/jdcrm/backend/internal/infrastructure/cache"
	"github.com/jdcrm/backend/internal/infrastructure/config"
	"github.com/jdcrm/backend/internal/infrastructure/event"
	"github.com/jdcrm/backend/internal/infrastructure/logger"
	"github.com/jdcrm/backend/internal/infrastructure/persistence"
	"github.com/jdcrm/backend/internal/infrastructure/resilience"
	"github.com/jdcrm/backend/internal/infrastructure/storage"
	"github.com/jdcrm/backend/internal/interfaces/http/handler"
	"github.com/jdcrm/backend/internal/interfaces/http/router"
)

//	@title			JDCRM Lifecycle API
//	@version		1.0
//	@description	Lead-to-booking lifecycle and payment schedule backend for real-estate sales teams.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("failover_mode", cfg.Failover.Mode),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The simulated store always opens; it is what keeps the API answering
	// when the remote store is down.
	simulatedDB, err := persistence.NewSimulatedDatabase()
	if err != nil {
		log.Fatal("failed to open simulated store", zap.Error(err))
	}
	simulated := buildRepositories(simulatedDB)

	var remotePing resilience.Pinger
	remote := simulated
	failoverCfg := cfg.Failover
	if failoverCfg.Mode != string(resilience.ModeSimulated) {
		gl := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		remoteDB, err := persistence.NewDatabaseWithLogger(&cfg.Database, gl)
		if err != nil {
			log.Warn("remote store unavailable at startup, serving from simulated store",
				zap.Error(err))
			failoverCfg.Mode = string(resilience.ModeSimulated)
		} else {
			if err := remoteDB.Migrate(); err != nil {
				log.Fatal("failed to migrate remote store", zap.Error(err))
			}
			remote = buildRepositories(remoteDB)
			remotePing = remoteDB
			defer remoteDB.Close() //nolint:errcheck
		}
	}

	bus := event.NewInMemoryEventBus(log)

	statsCache, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("failed to create cache", zap.Error(err))
	}
	invalidator := cache.NewInvalidator(statsCache, log)
	bus.Subscribe(invalidator, invalidator.EventTypes()...)

	notifier := notify.NewZapNotifier(log)
	lifecycleNotify := notify.NewBookingLifecycleHandler(notifier, log)
	bus.Subscribe(lifecycleNotify, lifecycleNotify.EventTypes()...)

	facade := resilience.New(&failoverCfg, remote, simulated, remotePing, bus, log)

	sessionRevoker := buildSessionRevoker(cfg, log)
	tokenService := auth.NewTokenService(cfg.JWT)

	documents := buildDocumentStore(cfg, log)

	leadService := pipelineapp.NewLeadService(facade.Leads(), facade.Interactions(), facade.Agents(), bus, log)
	agentService := pipelineapp.NewAgentService(facade.Agents(), log)
	distributionService := pipelineapp.NewDistributionService(facade.Leads(), facade.Agents())
	inventoryService := catalogapp.NewInventoryService(facade.Projects(), facade.Units(), log)
	bookingService := bookingapp.NewBookingService(facade.Bookings(), facade.Leads(), facade.Units(), documents, bus, log)
	dashboardService := reportapp.NewDashboardService(facade.Leads(), facade.Bookings(), facade.Units(), statsCache, log)

	sse := handler.NewConnectivitySSEHandler(facade, handler.WithSSELogger(log))
	bus.Subscribe(sse, sse.EventTypes()...)
	sse.Start()

	engine := router.New(router.Config{
		TokenService:   tokenService,
		SessionRevoker: sessionRevoker,
		Logger:         log,
		Auth:           handler.NewAuthHandler(tokenService, sessionRevoker, agentService, cfg.App.Env),
		Leads:          handler.NewLeadHandler(leadService),
		Agents:         handler.NewAgentHandler(agentService, distributionService),
		Projects:       handler.NewProjectHandler(inventoryService),
		Bookings:       handler.NewBookingHandler(bookingService),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
		System:         handler.NewSystemHandler(facade, cfg.App.Name, version),
		SSE:            sse,
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	// Leave UNKNOWN before the first request so clients see a real verdict
	state := facade.Probe(context.Background())
	log.Info("data store probe complete", zap.String("connectivity", state.String()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	sse.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if err := simulatedDB.Close(); err != nil {
		log.Warn("failed to close simulated store", zap.Error(err))
	}

	log.Info("server stopped")
}

func buildRepositories(db *persistence.Database) resilience.Repositories {
	return resilience.Repositories{
		Leads:        persistence.NewGormLeadRepository(db.DB),
		Interactions: persistence.NewGormInteractionRepository(db.DB),
		Agents:       persistence.NewGormAgentRepository(db.DB),
		Bookings:     persistence.NewGormBookingRepository(db.DB),
		Projects:     persistence.NewGormProjectRepository(db.DB),
		Units:        persistence.NewGormUnitRepository(db.DB),
	}
}

func buildSessionRevoker(cfg *config.Config, log *zap.Logger) auth.SessionRevoker {
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, session revocation is process-local", zap.Error(err))
		return auth.NewInMemorySessionRevoker()
	}
	return auth.NewRedisSessionRevoker(client)
}

func buildDocumentStore(cfg *config.Config, log *zap.Logger) storage.DocumentStore {
	if cfg.Storage.Provider == "s3" {
		store, err := storage.NewS3DocumentStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Warn("S3 unavailable, storing documents in memory", zap.Error(err))
			return storage.NewStubDocumentStore()
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			log.Warn("failed to ensure document bucket", zap.Error(err))
		}
		return store
	}
	return storage.NewStubDocumentStore()
}
