// Package server initializes and runs the application server: it opens the
// database, runs migrations, constructs the blob store and services, and
// starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Tejani8980/job-app-tracker-backend/internal/logging"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/blobstore"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/config"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/httpapi"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/repositories/repomanager"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	userSvc    *services.UserService
	appSvc     *services.ApplicationService
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewProductionZapLogger()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return newApp(ctx, cfg, logger, db)
}

// newApp finishes construction over an already opened handle and closes it
// when any later init step fails.
func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Options{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		BaseEndpoint:    cfg.S3BaseEndpoint,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	userSvc := services.NewUserService(rm.Users(db), cfg)
	appSvc := services.NewApplicationService(rm.Entities(db), blobs)

	router := httpapi.NewRouter(cfg, logger, userSvc, appSvc)
	httpServer := httpapi.NewServer(cfg.EndpointAddr, router, logger)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		userSvc:    userSvc,
		appSvc:     appSvc,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "err", err.Error())
	}
}
