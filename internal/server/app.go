// Package server wires the launcher together: it picks storage backends from
// the configuration, starts the HTTP API and the gRPC health endpoint, and
// tears everything down on shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/launcher/internal/cryptox"
	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/dmitrijs2005/launcher/internal/server/approval"
	"github.com/dmitrijs2005/launcher/internal/server/config"
	"github.com/dmitrijs2005/launcher/internal/server/httpapi"
	"github.com/dmitrijs2005/launcher/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/launcher/internal/server/services"
	"github.com/dmitrijs2005/launcher/internal/server/sessions"
	"github.com/dmitrijs2005/launcher/internal/server/storage"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/launcher/internal/server/grpc"
)

const (
	startupTimeout = 10 * time.Second
	storageBackoff = 100 * time.Millisecond
)

// ErrWeakOperatorSecret is returned when manual approval would sit behind an
// admin API signed with an empty or development secret.
var ErrWeakOperatorSecret = errors.New("manual approval needs a non-default operator secret (-s)")

// Seams for tests.
var (
	openPostgres = repomanager.OpenPostgres
	dialNATS     = approval.DialNATS
)

type App struct {
	config *config.Config
	logger logging.Logger

	db     *sql.DB
	redis  *redis.Client
	nats   *nats.Conn
	bridge *approval.NATSBridge

	sessions *sessions.Manager
	http     *httpapi.Server
	health   *gs.HealthServer
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}

	mode, err := approval.ParseMode(c.ApprovalMode)
	if err != nil {
		return nil, err
	}
	if mode == approval.ModeManual && (c.SecretKey == "" || c.SecretKey == config.DefaultSecretKey) {
		return nil, ErrWeakOperatorSecret
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	app := &App{config: c, logger: logger}
	if err := app.init(ctx, mode); err != nil {
		return nil, multierr.Append(err, app.Close(ctx))
	}
	return app, nil
}

func (app *App) init(ctx context.Context, mode approval.Mode) error {
	c := app.config

	rm := repomanager.NewInMemoryRepositoryManager()
	if c.DatabaseDSN != "" {
		db, err := openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			return err
		}
	}

	var store sessions.Store = sessions.NewMemoryStore()
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis init error: %w", err)
		}
		store = sessions.NewRedisStore(app.redis)
	}

	var dirs storage.DirectoryStore = storage.NewMemoryStore()
	if c.S3Bucket != "" {
		client, err := storage.NewS3Client(ctx, c)
		if err != nil {
			return fmt.Errorf("s3 init error: %w", err)
		}
		dirs = storage.NewS3Store(client, c.S3Bucket)
	}
	dirs = storage.NewRetrying(dirs, storageBackoff, app.logger)

	gate := approval.NewGate(mode, c.ApprovalTimeout, app.logger)
	if c.NATSURL != "" {
		conn, err := dialNATS(c.NATSURL, app.logger)
		if err != nil {
			return err
		}
		app.nats = conn
		app.bridge = approval.NewNATSBridge(conn, gate, c.NATSSubjectPrefix, app.logger)
		if err := app.bridge.Start(); err != nil {
			return err
		}
	}

	kx := cryptox.NewKeyExchange(nil)
	app.sessions = sessions.NewManager(store, kx.Rand(), c.SessionTTL)

	accounts := services.NewAccountService(app.db, rm, app.logger)
	authSvc := services.NewAuthService(accounts, gate, kx, app.sessions, app.logger)
	nfs := services.NewNFSService(dirs, app.logger)

	h := httpapi.NewHandler(accounts, authSvc, nfs, gate, c.SecretKey, app.logger)
	app.http = httpapi.NewServer(c.EndpointAddrHTTP, h, app.logger)
	if c.EndpointAddrGRPC != "" {
		app.health = gs.NewHealthServer(c.EndpointAddrGRPC, app.logger)
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then releases every resource.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.http.Run(gctx)
	})
	if app.health != nil {
		app.health.SetServing(true)
		g.Go(func() error {
			return app.health.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	return multierr.Append(err, app.Close(closeCtx))
}

// Close drops all sessions and closes backend connections.
func (app *App) Close(ctx context.Context) error {
	var err error
	if app.sessions != nil {
		err = multierr.Append(err, app.sessions.Clear(ctx))
	}
	if app.bridge != nil {
		err = multierr.Append(err, app.bridge.Close())
	}
	if app.nats != nil {
		app.nats.Close()
	}
	if app.redis != nil {
		err = multierr.Append(err, app.redis.Close())
	}
	if app.db != nil {
		err = multierr.Append(err, app.db.Close())
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
