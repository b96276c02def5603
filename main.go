package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printshop-backend/config"
	"printshop-backend/metrics"
	"printshop-backend/routes"
	"printshop-backend/services"
	"printshop-backend/store"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	repo, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	catalog := services.NewCatalogService(repo, log)
	customers := services.NewCustomerService(repo, log)
	ledger := services.NewOrderLedger(services.LedgerDeps{
		Repo:     repo,
		Metrics:  metrics.NewLedgerMetrics(registry),
		Logger:   log,
		Location: cfg.Location,
	})
	reports := services.NewReportingEngine(repo, time.Now, cfg.Location)

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set, generating a random secret for this process")
		secret = utils.GenerateJWTSecret()
	}
	tokens := utils.NewTokenManager(secret, cfg.JWTExpiry)

	if cfg.Report.Cron != "" {
		job := services.NewReportJob(reports, newNotifier(cfg, log), cfg.Report.Dir, cfg.Report.Days, log)
		scheduler, err := job.Schedule(cfg.Report.Cron, cfg.Location)
		if err != nil {
			log.Fatal("failed to start report scheduler", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(routes.Deps{
		Catalog:         catalog,
		Customers:       customers,
		Ledger:          ledger,
		Reports:         reports,
		Tokens:          tokens,
		Logger:          log,
		Registry:        registry,
		RequestObserver: metrics.NewHTTPMetrics(registry),
		CORSOrigins:     cfg.CORSOrigins,
		SlowRequest:     cfg.SlowRequest,
	})
	printRoutes(r, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

// openStore uses Postgres when DB_URL is set and the in-memory store
// otherwise.
func openStore(cfg *config.Config, log *zap.Logger) (store.Repository, error) {
	if cfg.DBURL != "" {
		db, err := config.ConnectDB(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		gs, err := store.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		log.Info("using postgres store")
		return gs, nil
	}
	if cfg.SeedData {
		log.Info("using in-memory store with demo data")
		return store.NewSeededMemoryStore(time.Now().In(cfg.Location)), nil
	}
	log.Info("using empty in-memory store")
	return store.NewMemoryStore(), nil
}

func newNotifier(cfg *config.Config, log *zap.Logger) services.Notifier {
	if !cfg.Twilio.Enabled() {
		return services.NewLogNotifier(log)
	}
	return services.NewTwilioNotifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.PhoneNumber, cfg.Twilio.To, log)
}

func printRoutes(r *gin.Engine, log *zap.Logger) {
	for _, route := range r.Routes() {
		log.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}
