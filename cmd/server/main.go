package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/config"
	"github.com/mamadbah2/farmledger/internal/domain/models"
	"github.com/mamadbah2/farmledger/internal/repository/memory"
	"github.com/mamadbah2/farmledger/internal/repository/mongodb"
	"github.com/mamadbah2/farmledger/internal/repository/sheets"
	"github.com/mamadbah2/farmledger/internal/scheduler"
	"github.com/mamadbah2/farmledger/internal/server/handlers"
	"github.com/mamadbah2/farmledger/internal/server/router"
	"github.com/mamadbah2/farmledger/internal/service/access"
	archivesvc "github.com/mamadbah2/farmledger/internal/service/archive"
	"github.com/mamadbah2/farmledger/internal/service/ledger"
	notifysvc "github.com/mamadbah2/farmledger/internal/service/notify"
	reportingsvc "github.com/mamadbah2/farmledger/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/farmledger/pkg/clients/whatsapp"
	"github.com/mamadbah2/farmledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	ledgerSvc := ledger.New(
		ledger.WithLocation(loc),
		ledger.WithFarms(cfg.Farm.Farms),
		ledger.WithLogger(logger.Named(baseLogger, "svc.ledger")),
	)
	if cfg.Farm.SeedDemo {
		if err := ledger.SeedDemo(ledgerSvc); err != nil {
			baseLogger.Fatal("failed to seed demo data", zap.Error(err))
		}
		baseLogger.Info("demo data loaded")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	var (
		sessionStore access.SessionStore = memory.NewSessionStore()
		archiveStore archivesvc.Store
	)
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(startCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sessionStore = mongoRepo
		archiveStore = mongoRepo
	} else {
		baseLogger.Warn("mongodb not configured, sessions and archives are kept in memory")
	}

	var archiveExporter archivesvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(startCtx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		archiveExporter = sheets.NewArchiveExporter(sheetsRepo)
	}

	accessSvc := access.NewService(sessionStore, []models.User{{
		ID:       "1",
		Name:     cfg.Auth.AdminName,
		Email:    cfg.Auth.AdminEmail,
		Password: cfg.Auth.AdminPassword,
		Role:     models.RoleAdmin,
		Active:   true,
	}}, logger.Named(baseLogger, "svc.access"))
	if err := accessSvc.Restore(startCtx); err != nil {
		baseLogger.Error("failed to restore session", zap.Error(err))
	}

	publisher := archivesvc.NewPublisher(ledgerSvc, archiveStore, archiveExporter, logger.Named(baseLogger, "svc.archive"))
	if err := publisher.Restore(startCtx); err != nil {
		baseLogger.Fatal("failed to restore archives", zap.Error(err))
	}

	reportingSvc := reportingsvc.NewService(ledgerSvc, loc, logger.Named(baseLogger, "svc.reporting"))

	var (
		messagingSvc notifysvc.MessagingService
		notifier     scheduler.ManagerNotifier
	)
	if cfg.WhatsApp.Enabled() {
		svc := notifysvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsappclient.NewClient(cfg.WhatsApp), logger.Named(baseLogger, "svc.notify"))
		messagingSvc = svc
		notifier = svc
	} else {
		baseLogger.Warn("whatsapp not configured, digest delivery disabled")
	}

	sched := scheduler.NewScheduler(cfg.Schedule, loc, publisher, reportingSvc, notifier, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Ledger: handlers.NewLedgerHandler(ledgerSvc, logger.Named(baseLogger, "handlers.ledger")),
		Access: handlers.NewAccessHandler(accessSvc, logger.Named(baseLogger, "handlers.access")),
		Report: handlers.NewReportHandler(reportingSvc, messagingSvc, logger.Named(baseLogger, "handlers.report")),
	}, accessSvc, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	// Publish anything archived since the last scheduled run.
	if err := publisher.Sync(shutdownCtx); err != nil {
		baseLogger.Error("final archive sync failed", zap.Error(err))
	}
}
