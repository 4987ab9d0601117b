package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/config"
	"github.com/matchday-dev/matchday/internal/interfaces/httpapi"
	"github.com/matchday-dev/matchday/internal/platform/logging"
	"github.com/matchday-dev/matchday/internal/platform/resilience"
	"github.com/matchday-dev/matchday/internal/query"
	"github.com/matchday-dev/matchday/internal/usecase"
)

// App owns every long-lived component: the upstream client, the query store
// with its poller, the page and resource services, and the HTTP server.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	server *http.Server
	store  *query.Store
	poller *query.Poller
	live   *usecase.LiveRefreshService
}

func New(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	client := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:            cfg.FootballDataBaseURL,
		Token:              cfg.FootballDataToken,
		AuthViaProxy:       cfg.FootballDataAuthViaProxy,
		Timeout:            cfg.FootballDataTimeout,
		UserAgent:          cfg.ServiceName + "/" + cfg.ServiceVersion,
		RateLimitPerMinute: cfg.FootballDataRateLimitRPM,
		Logger:             logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})

	store := query.NewStore(query.StoreConfig{
		DefaultCacheTime: cfg.QueryCacheTime,
		GCInterval:       cfg.QueryGCInterval,
	})

	poller, err := query.NewPoller(store, query.PollerConfig{
		Workers: cfg.PollWorkers,
		Logger:  logger,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build poller: %w", err)
	}

	clock := clockwork.NewRealClock()

	handler := httpapi.NewHandler(
		usecase.NewHomePageService(client, store, clock),
		usecase.NewCompetitionPageService(client, store),
		usecase.NewMatchPageService(client, store),
		usecase.NewTeamPageService(client, store),
		usecase.NewResourceService(client, store, clock),
		logger,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		server: server,
		store:  store,
		poller: poller,
	}
	if cfg.LiveRefreshEnabled {
		app.live = usecase.NewLiveRefreshService(client, store, poller, clock, logger)
	}

	return app, nil
}

func (a *App) Server() *http.Server {
	return a.server
}

// Start brings up the background live-refresh loop. The HTTP listener is the
// caller's to run so it can own the error path.
func (a *App) Start(ctx context.Context) error {
	if a.live == nil {
		return nil
	}
	if err := a.live.Start(ctx); err != nil {
		return fmt.Errorf("start live refresh: %w", err)
	}
	a.logger.Info("live refresh started")
	return nil
}

// Shutdown stops the HTTP server first so no request observes a closed store.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	if a.live != nil {
		a.live.Stop()
	}
	a.poller.Close()
	a.store.Close()

	if err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
