package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darts-league/external/dartconnect"
	"github.com/riskibarqy/darts-league/internal/config"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	"github.com/riskibarqy/darts-league/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/darts-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/darts-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/darts-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/darts-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/darts-league/internal/platform/cache"
	idgen "github.com/riskibarqy/darts-league/internal/platform/id"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"github.com/riskibarqy/darts-league/internal/usecase"
)

// Services holds every usecase the binaries need, built over one storage
// backend.
type Services struct {
	Scrape        *usecase.ScrapeService
	ScrapeJobs    *usecase.ScrapeJobService
	Aggregation   *usecase.AggregationService
	Qualification *usecase.QualificationService

	db *sqlx.DB
}

// NewServices wires storage, the DartConnect client and the usecases.
// authorizer decides who may write; the API passes the owner authorizer
// and the CLI the trusted one.
func NewServices(cfg config.Config, authorizer usecase.ScopeAuthorizer, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stats, winners, db, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := dartconnect.NewClient(dartconnect.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.DartConnectTimeout},
		TVBaseURL:      cfg.DartConnectTVBaseURL,
		RecapBaseURL:   cfg.DartConnectRecapBaseURL,
		UserAgent:      cfg.DartConnectUserAgent,
		Timeout:        cfg.DartConnectTimeout,
		MaxRetries:     cfg.DartConnectMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.DartConnectCircuit,
	})

	ids := idgen.NewTimeOrderedGenerator()
	scrapeSvc := usecase.NewScrapeService(
		authorizer,
		usecase.NewEventMatchDiscoverer(client),
		usecase.NewMatchStatsFetcher(client),
		usecase.NewStatUpserter(stats),
		ids,
		usecase.ScrapeConfig{MatchDelay: cfg.ScrapeMatchDelay},
		logger,
	)
	jobSvc, err := usecase.NewScrapeJobService(
		scrapeSvc,
		authorizer,
		memory.NewScrapeJobRepository(),
		ids,
		usecase.ScrapeJobConfig{Workers: cfg.ScrapeWorkerCount},
		logger,
	)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	aggregationSvc := usecase.NewAggregationService(stats, winners)
	qualificationSvc := usecase.NewQualificationService(
		authorizer,
		stats,
		winners,
		aggregationSvc,
		qualification.Series{
			QualifyingEvents: cfg.SeriesQualifyingEvents,
			TotalEvents:      cfg.SeriesTotalEvents,
		},
		logger,
	)

	return &Services{
		Scrape:        scrapeSvc,
		ScrapeJobs:    jobSvc,
		Aggregation:   aggregationSvc,
		Qualification: qualificationSvc,
		db:            db,
	}, nil
}

// Close drains background jobs for up to timeout and closes the database.
func (s *Services) Close(timeout time.Duration) error {
	jobErr := s.ScrapeJobs.Close(timeout)
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	return errors.Join(jobErr, dbErr)
}

// NewHTTPServer returns the API server together with the services it
// serves. The caller owns Services.Close.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, *Services, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	services, err := NewServices(cfg, usecase.NewOwnerScopeAuthorizer(cfg.AdminUserIDs), logger)
	if err != nil {
		return nil, nil, err
	}

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		PrincipalTTL:   cfg.AnubisPrincipalTTL,
		CircuitBreaker: cfg.AnubisCircuit,
		Logger:         logger,
	})

	handler := httpapi.NewHandler(
		services.Scrape,
		services.ScrapeJobs,
		services.Aggregation,
		services.Qualification,
		logger,
	)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, services, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (matchstats.Repository, qualification.Repository, *sqlx.DB, error) {
	var (
		stats   matchstats.Repository
		winners qualification.Repository
		db      *sqlx.DB
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		stats = memory.NewStatRepository()
		winners = memory.NewWinnerRepository()
	case config.StoragePostgres:
		var err error
		db, err = openPostgres(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		stats = postgres.NewStatRepository(db)
		winners = postgres.NewWinnerRepository(db)
	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	logger.Info("storage ready", "driver", cfg.StorageDriver, "cache_enabled", cfg.CacheEnabled)
	if !cfg.CacheEnabled {
		return stats, winners, db, nil
	}

	stats = cache.NewStatRepository(stats, basecache.NewStore[[]matchstats.PlayerStatRecord](cfg.CacheTTL))
	winners = cache.NewWinnerRepository(winners, basecache.NewStore[[]qualification.EventWinner](cfg.CacheTTL))
	return stats, winners, db, nil
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
