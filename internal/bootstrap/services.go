package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/recruitdesk/recruit-web/config"
	"github.com/recruitdesk/recruit-web/internal/adapters/backendapi"
	"github.com/recruitdesk/recruit-web/internal/adapters/jwtclaims"
	"github.com/recruitdesk/recruit-web/internal/ports"
	"github.com/recruitdesk/recruit-web/internal/service"
	"golang.org/x/sync/errgroup"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions    *service.SessionManager
	Recruitment *service.RecruitmentService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Store  ports.CredentialStore
	// HTTPClient overrides the transport used for backend calls (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// BuildServices wires the backend API client, token decoder and credential
// store into the session manager and recruitment service.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("config is required")
	}
	if deps.Store == nil {
		return ServiceContainer{}, errors.New("credential store is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := backendapi.NewClient(backendapi.Options{
		BaseURL:          deps.Config.API.BaseURL,
		Timeout:          deps.Config.API.Timeout,
		ErrorMessagePath: deps.Config.API.ErrorMessagePath,
		HTTPClient:       deps.HTTPClient,
		Logger:           logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create backend client: %w", err)
	}

	sessions, err := service.NewSessionManager(service.SessionManagerOptions{
		API:     backendapi.NewAuthClient(client),
		Store:   deps.Store,
		Decoder: jwtclaims.NewDecoder(),
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create session manager: %w", err)
	}

	recruitment, err := service.NewRecruitmentService(service.RecruitmentServiceOptions{
		API:      backendapi.NewRecruitmentClient(client),
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create recruitment service: %w", err)
	}

	return ServiceContainer{Sessions: sessions, Recruitment: recruitment}, nil
}

// ServiceOrchestrationConfig contains everything needed to run the client.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown serves HTTP and restores the persisted session in the
// background until ctx is cancelled or the server fails, then shuts down gracefully.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server, err := NewHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	// Pages rendered before this finishes see a loading session.
	g.Go(func() error {
		cfg.Services.Sessions.Restore(gctx)
		logger.Info("session restored", "status", cfg.Services.Sessions.Snapshot().Status)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", serveErr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(gctx),
			Server:  server,
			Logger:  logger,
		})
	})

	return g.Wait()
}
