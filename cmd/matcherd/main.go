// Package main - точка входа сервиса подбора менторов Forge Accelerator Hub.
//
// Философия подбора: "Разреженный профиль - не приговор". Каждое измерение
// скоринга при отсутствии данных получает нейтральное значение, поэтому
// новый ментор без рейтинга не проигрывает подбор из-за пустых полей.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая логика скоринга и ранжирования без внешних зависимостей
// - Application: оркестрация запросов (CQRS read side)
// - Infrastructure: PostgreSQL-справочник, Redis-кеш, защитные обёртки
// - Interface: REST API
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/forge-hub/forge-accelerator-hub/config"
	"github.com/forge-hub/forge-accelerator-hub/internal/application/query"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/matching"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/infrastructure/persistence/postgres"
	"github.com/forge-hub/forge-accelerator-hub/internal/infrastructure/persistence/redis"
	"github.com/forge-hub/forge-accelerator-hub/internal/infrastructure/service"
	httpserver "github.com/forge-hub/forge-accelerator-hub/internal/interface/http"
	"github.com/forge-hub/forge-accelerator-hub/internal/interface/http/handlers"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
	"github.com/forge-hub/forge-accelerator-hub/pkg/retry"
)

// defaultParallelThreshold - размер пула, с которого скоринг уходит
// в воркеры, если параллельный режим включён, а порог не настроен.
const defaultParallelThreshold = 64

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(
		os.Stdout,
		logger.ParseLevel(cfg.Observability.LogLevel),
		logger.Format(cfg.Observability.LogFormat),
	)
	log.Info("starting mentor matching service", logger.Fields{
		"env":     string(cfg.App.Environment),
		"version": cfg.App.Version,
		"debug":   cfg.App.Debug,
	})

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ
	// Ретраи с экспоненциальной паузой: при деплое база может подняться
	// на несколько секунд позже сервиса.
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database", nil)

	var dbConn *postgres.Connection
	err = retry.Do(ctx, retry.DefaultConfig(), func(ctx context.Context) error {
		var cerr error
		dbConn, cerr = postgres.NewConnection(ctx, postgres.Config{
			URL:             cfg.Database.URL,
			MaxConns:        int32(cfg.Database.MaxOpenConns),
			MinConns:        int32(cfg.Database.MinIdleConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		})
		return cerr
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection", nil)
		dbConn.Close()
	}()
	log.Info("database connection established", nil)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("running database migrations", nil)
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// Без Redis сервис работает, просто каждый запуск подбора ходит в базу.
	// ─────────────────────────────────────────────────────────────────────────
	var redisCache *redis.Cache
	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis", nil)
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, directory caching disabled", logger.Fields{
				"error": err.Error(),
			})
			redisCache = nil
		} else {
			defer redisCache.Close()
			log.Info("Redis connection established", nil)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. СБОРКА СПРАВОЧНИКА МЕНТОРОВ
	// postgres → (redis cache-aside) → таймаут + circuit breaker.
	// ─────────────────────────────────────────────────────────────────────────
	var directory mentor.Directory = postgres.NewMentorDirectory(dbConn)

	if redisCache != nil && cfg.Features.IsEnabled(config.FeatureDirectoryCache) {
		directory = redis.NewCachedDirectory(directory, redisCache, cfg.Redis.DirectoryCacheTTL, log)
		log.Info("directory snapshot cache enabled", logger.Fields{
			"ttl": cfg.Redis.DirectoryCacheTTL.String(),
		})
	}

	directory = service.NewGuardedDirectory(directory, service.GuardConfig{
		FetchTimeout:            cfg.Matching.FetchTimeout,
		BreakerFailureThreshold: cfg.Matching.BreakerFailureThreshold,
		BreakerTimeout:          cfg.Matching.BreakerTimeout,
	}, log)

	participantRepo := postgres.NewParticipantRepository(dbConn)
	projectRepo := postgres.NewProjectRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. СБОРКА ДВИЖКА ПОДБОРА
	// ─────────────────────────────────────────────────────────────────────────
	weights := matching.ScoreWeights{
		Expertise:    cfg.Matching.WeightExpertise,
		Industry:     cfg.Matching.WeightIndustry,
		Availability: cfg.Matching.WeightAvailability,
		Rating:       cfg.Matching.WeightRating,
		ProjectNeeds: cfg.Matching.WeightProjectNeeds,
	}

	scorer, err := matching.NewScoringEngine(weights, cfg.Matching.ZoneTolerance)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}

	parallelThreshold := 0
	if cfg.Features.IsEnabled(config.FeatureParallelScoring) {
		parallelThreshold = cfg.Matching.ParallelThreshold
		if parallelThreshold <= 0 {
			parallelThreshold = defaultParallelThreshold
		}
	}
	ranker := matching.NewRankingEngine(scorer, parallelThreshold)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Queries)
	// ─────────────────────────────────────────────────────────────────────────
	softTypePreference := !cfg.Features.IsEnabled(config.FeatureTypeHardFilter)
	resolver := query.NewCriteriaResolver(participantRepo, projectRepo, softTypePreference)

	matchHandler := query.NewMatchMentorsHandler(directory, resolver, ranker, log)
	recommendationsHandler := query.NewGetRecommendationsHandler(matchHandler, resolver, log)
	expertHandler := query.NewFindExpertHandler(
		directory,
		cfg.Features.IsEnabled(config.FeatureExpertSubstringMatch),
		log,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HEALTH CHECKS
	// ─────────────────────────────────────────────────────────────────────────
	healthChecker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	healthChecker.AddCheck("postgres", handlers.NewDatabaseCheck(dbConn))
	if redisCache != nil {
		healthChecker.AddCheck("redis", handlers.NewCacheCheck(redisCache))
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 10. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout

	httpDeps := httpserver.Dependencies{
		MatchMentorsHandler:       matchHandler,
		GetRecommendationsHandler: recommendationsHandler,
		FindExpertHandler:         expertHandler,
		Logger:                    log,
		HealthChecker:             healthChecker,
	}

	server := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 11. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	log.Info("mentor matching service is running", logger.Fields{
		"address":              server.Address(),
		"soft_type_preference": softTypePreference,
		"parallel_threshold":   parallelThreshold,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.Fields{"signal": sig.String()})
	case err := <-errCh:
		log.Error("service error", logger.Fields{"error": err.Error()})
		return err
	case <-ctx.Done():
		log.Info("context canceled", nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	log.Info("starting graceful shutdown", logger.Fields{
		"timeout": cfg.App.ShutdownTimeout.String(),
	})

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Fields{"error": err.Error()})
		return err
	}

	log.Info("shutdown completed successfully", nil)
	return nil
}
