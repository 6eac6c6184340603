// Command rdvgateway runs the local RDV360 session gateway: it owns the
// signed-in session of one client and exposes it, with the appointment and
// admin endpoints, over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/api"
	"github.com/rdv360/session-gateway/internal/api/handler"
	"github.com/rdv360/session-gateway/internal/api/metrics"
	"github.com/rdv360/session-gateway/internal/core/ports"
	"github.com/rdv360/session-gateway/internal/core/service"
	"github.com/rdv360/session-gateway/internal/core/session"
	"github.com/rdv360/session-gateway/internal/infrastructure/apiclient"
	mongostore "github.com/rdv360/session-gateway/internal/infrastructure/db/mongo"
	redisstore "github.com/rdv360/session-gateway/internal/infrastructure/db/redis"
	"github.com/rdv360/session-gateway/internal/infrastructure/storage"
	"github.com/rdv360/session-gateway/internal/pkg/config"
	"github.com/rdv360/session-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// sessionStorage is a persisted session backend that readiness can ping.
type sessionStorage interface {
	ports.KeyValueStore
	handler.Pinger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rdvgateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "rdvgateway",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("session_store", cfg.Session.Store).
		Str("auth_url", cfg.API.AuthURL).
		Str("rdv_url", cfg.API.RdvURL).
		Msg("starting session gateway")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	authAPI := apiclient.New(apiclient.Config{Name: "auth", BaseURL: cfg.API.AuthURL, Timeout: cfg.API.Timeout}, store, logger.Component(log, "apiclient"))
	rdvAPI := apiclient.New(apiclient.Config{Name: "rdv", BaseURL: cfg.API.RdvURL, Timeout: cfg.API.Timeout}, store, logger.Component(log, "apiclient"))

	authService := service.NewAuthService(authAPI, store, logger.Component(log, "auth"))
	appointmentService := service.NewAppointmentService(rdvAPI, logger.Component(log, "appointments"))
	adminService := service.NewAdminService(rdvAPI)

	sessions := session.NewStore(authService, logger.Component(log, "session"))
	sessions.Subscribe(metrics.ObserveSession)

	// Hydrate before serving.
	st := sessions.Initialize(ctx)
	log.Info().Str("status", st.Status.String()).Msg("session hydrated")

	e := api.NewRouter(api.Dependencies{
		Sessions:     sessions,
		Appointments: appointmentService,
		Admin:        adminService,
		Readiness:    map[string]handler.Pinger{cfg.Session.Store: store},
		Logger:       logger.Component(log, "http"),
	})

	srvErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err, ok := <-srvErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("session gateway stopped")
	return nil
}

// openStorage opens the configured session backend and returns its closer.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (sessionStorage, func(), error) {
	noop := func() {}
	switch cfg.Session.Store {
	case config.StoreMemory:
		log.Warn().Msg("memory session store: the session will not survive a restart")
		return storage.NewMemory(), noop, nil

	case config.StoreFile:
		f, err := storage.OpenFile(cfg.Session.File, cfg.Session.Secret)
		if err != nil {
			return nil, nil, fmt.Errorf("open session file: %w", err)
		}
		if cfg.Session.Secret == "" {
			log.Warn().Str("path", cfg.Session.File).Msg("SESSION_SECRET is empty, tokens are stored in clear")
		}
		return f, noop, nil

	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSessionStore(client, cfg.Session.ClientID), func() { _ = client.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}
		return mongostore.NewSessionStore(db, cfg.Session.ClientID), closer, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
