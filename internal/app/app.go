package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/editathon/contest-api/internal/config"
	"github.com/editathon/contest-api/internal/domain/contest"
	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/infrastructure/account/idp"
	"github.com/editathon/contest-api/internal/infrastructure/encyclopedia"
	"github.com/editathon/contest-api/internal/infrastructure/notify"
	"github.com/editathon/contest-api/internal/infrastructure/repository/memory"
	"github.com/editathon/contest-api/internal/infrastructure/repository/postgres"
	"github.com/editathon/contest-api/internal/interfaces/httpapi"
	"github.com/editathon/contest-api/internal/platform/cache"
	idgen "github.com/editathon/contest-api/internal/platform/id"
	"github.com/editathon/contest-api/internal/platform/resilience"
	"github.com/editathon/contest-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	contestRepo, submissionRepo, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var articles usecase.ArticleChecker
	var articleDirectory usecase.ArticleDirectory
	if cfg.WikiEnabled {
		wikiClient := encyclopedia.NewClient(encyclopedia.Config{
			BaseURL: cfg.WikiBaseURL,
			Timeout: cfg.WikiTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WikiCircuitEnabled,
				FailureThreshold: cfg.WikiCircuitFailureCount,
				OpenTimeout:      cfg.WikiCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WikiCircuitHalfOpenMaxReq,
			},
		}, logger)
		articles = wikiClient
		articleDirectory = wikiClient
	}

	var events usecase.JudgedEventPublisher
	if cfg.WebhookEnabled {
		events = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			Endpoint: cfg.WebhookEndpoint,
			Token:    cfg.WebhookToken,
			Timeout:  cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMax,
			},
		}, logger)
	}

	ids := idgen.NewRandomGenerator()
	contestSvc := usecase.NewContestService(contestRepo, ids)
	leaderboardSvc := usecase.NewLeaderboardService(submissionRepo, store)
	submissionSvc := usecase.NewSubmissionService(
		contestRepo,
		submissionRepo,
		articles,
		events,
		leaderboardSvc,
		ids,
		logger,
	)
	warmupSvc := usecase.NewLeaderboardWarmupService(contestRepo, leaderboardSvc, cfg.WarmupPoolSize, logger)

	idpClient := idp.NewClient(
		&http.Client{Timeout: cfg.IDPTimeout},
		cfg.IDPBaseURL,
		cfg.IDPIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.IDPCircuitEnabled,
			FailureThreshold: cfg.IDPCircuitFailureCount,
			OpenTimeout:      cfg.IDPCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IDPCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(contestSvc, submissionSvc, leaderboardSvc, warmupSvc, articleDirectory, logger)
	router := httpapi.NewRouter(handler, idpClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (contest.Repository, submission.Repository, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Info("storage driver", "driver", cfg.StorageDriver)
		return memory.NewContestRepository(memory.SeedContests()), memory.NewSubmissionRepository(), nil
	case config.StorageDriverPostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		logger.Info("storage driver", "driver", cfg.StorageDriver, "database", dbNameFromURL(cfg.DBURL))
		return postgres.NewContestRepository(db), postgres.NewSubmissionRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
