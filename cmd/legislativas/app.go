package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/legislativas/internal/adapters/driven/ai"
	"github.com/custodia-labs/legislativas/internal/adapters/driven/auth"
	"github.com/custodia-labs/legislativas/internal/adapters/driven/github"
	"github.com/custodia-labs/legislativas/internal/adapters/driven/memory"
	"github.com/custodia-labs/legislativas/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/legislativas/internal/adapters/driven/redis"
	"github.com/custodia-labs/legislativas/internal/config"
	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
	"github.com/custodia-labs/legislativas/internal/core/services"
	"github.com/custodia-labs/legislativas/internal/postprocessors"
	"github.com/custodia-labs/legislativas/internal/runtime"
)

// llmVerifyTimeout bounds the startup ping of the LLM provider
const llmVerifyTimeout = 30 * time.Second

// app holds the wired services for one process
type app struct {
	cfg    config.Config
	logger *slog.Logger
	roster *domain.Roster

	runtime *runtime.Services
	cache   driven.DocumentCache

	answers  driving.AnswerService
	programs driving.ProgramService
	admin    driving.AdminService
	auth     driving.AuthService // nil without ADMIN_JWT_SECRET

	// Optional backends, kept for readiness checks and shutdown
	db          *postgres.DB
	redisClient *redis.Client
	redisCache  *redisadapter.DocumentCache
}

// appOptions selects which optional parts to wire
type appOptions struct {
	needLLM      bool
	verifyLLM    bool // ping the provider before accepting the service
	needBackends bool // Redis and PostgreSQL, when configured
}

// newApp builds the service graph from configuration
func newApp(ctx context.Context, cfg config.Config, opts appOptions) (*app, error) {
	logger := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	roster, err := config.LoadRoster(cfg.PartiesFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, roster: roster}

	cacheBackend, logBackend := "memory", "memory"
	if opts.needBackends {
		cacheBackend, logBackend = cfg.CacheBackend(), cfg.QueryLogBackend()
	}

	// ===== Document cache =====
	if cacheBackend == "redis" {
		log.Println("Connecting to Redis...")
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse Redis URL: %w", err)
		}
		a.redisClient = redis.NewClient(redisOpts)
		if err := a.redisClient.Ping(ctx).Err(); err != nil {
			_ = a.redisClient.Close()
			return nil, fmt.Errorf("connect to Redis: %w", err)
		}
		a.redisCache = redisadapter.NewDocumentCache(a.redisClient, cfg.CacheTTL)
		a.cache = a.redisCache
		log.Println("Using Redis document cache")
	} else {
		a.cache = memory.NewDocumentCache(cfg.CacheTTL, nil)
		log.Println("Using in-memory document cache")
	}

	// ===== Query log =====
	var queryLog driven.QueryLog
	if logBackend == "postgres" {
		log.Println("Connecting to PostgreSQL...")
		a.db, err = postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := a.db.InitSchema(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("initialize schema: %w", err)
		}
		queryLog = postgres.NewQueryLog(a.db)
		log.Println("PostgreSQL connected and schema initialized")
	} else {
		queryLog = memory.NewQueryLog(memory.DefaultQueryLogSize)
	}

	// ===== Runtime services =====
	a.runtime = runtime.NewServices(domain.NewRuntimeConfig(cacheBackend, logBackend))
	if opts.needLLM {
		llm, err := ai.NewFactory().CreateLLMService(&cfg.LLM)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create LLM service: %w", err)
		}
		if llm == nil {
			log.Println("Warning: no LLM API key configured, answers will report the missing key")
		}
		if opts.verifyLLM && llm != nil {
			pingCtx, cancel := context.WithTimeout(ctx, llmVerifyTimeout)
			err := a.runtime.ValidateAndSetLLM(pingCtx, llm)
			cancel()
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("verify LLM service: %w", err)
			}
			log.Printf("LLM service verified (model=%s)", llm.Model())
		} else {
			a.runtime.SetLLMService(llm)
		}
	}

	// ===== Core services =====
	fetcher := services.NewDocumentFetcher(services.DocumentFetcherConfig{
		Roster:  roster,
		BaseURL: cfg.DocumentBaseURL,
		Source:  github.NewRawSource(cfg.FetchTimeout),
		Cache:   a.cache,
		Logger:  logger,
	})
	pipeline := postprocessors.NewChunkPipeline(postprocessors.ChunkConfig{
		TargetSize: cfg.ChunkTargetSize,
		Overlap:    cfg.ChunkOverlap,
	})
	assembler := services.NewContextAssembler(services.ContextAssemblerConfig{
		Roster:      roster,
		Fetcher:     fetcher,
		Pipeline:    pipeline,
		Concurrency: cfg.FetchConcurrency,
		Logger:      logger,
	})
	client := services.NewAnswerClient(services.AnswerClientConfig{
		Services: a.runtime,
		Logger:   logger,
	})

	a.answers = services.NewAnswerService(services.AnswerServiceConfig{
		Roster:    roster,
		Assembler: assembler,
		Client:    client,
		QueryLog:  queryLog,
		Services:  a.runtime,
		Budget:    cfg.BudgetConfig(),
		Logger:    logger,
	})
	a.programs = services.NewProgramService(fetcher, pipeline)
	a.admin = services.NewAdminService(a.cache, queryLog, logger)
	if cfg.AdminJWTSecret != "" {
		a.auth = services.NewAuthService(auth.NewAdapter(cfg.AdminJWTSecret))
	}

	cfgRuntime := a.runtime.Config()
	log.Printf("Runtime config: cache=%s, query_log=%s, llm=%t, model=%s",
		cfgRuntime.CacheBackend, cfgRuntime.QueryLogBackend, cfgRuntime.LLMAvailable(), cfgRuntime.LLMModel())

	return a, nil
}

// Close releases every backend the app opened
func (a *app) Close() {
	if a.runtime != nil {
		_ = a.runtime.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
}
