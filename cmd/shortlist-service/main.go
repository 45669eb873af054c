// shortlist-service
//
// Shortlist/job-matching backend for the recruitment app. Exposes a REST API
// used by the web client to implement:
//   - the shortlist workflow (match, clear, select, snapshot)
//   - job description listing, updates and confirmed deletion
//   - the matched-candidate view
//   - the employer profile
//
// All operations run on behalf of the user session resolved once at startup.
// Notifications are published to Redis for client delivery.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/zanybarlee/a8-manpower/internal/cache"
	"github.com/zanybarlee/a8-manpower/internal/candidate"
	"github.com/zanybarlee/a8-manpower/internal/config"
	"github.com/zanybarlee/a8-manpower/internal/db"
	"github.com/zanybarlee/a8-manpower/internal/employer"
	"github.com/zanybarlee/a8-manpower/internal/httpapi"
	"github.com/zanybarlee/a8-manpower/internal/jobdesc"
	"github.com/zanybarlee/a8-manpower/internal/logger"
	"github.com/zanybarlee/a8-manpower/internal/matcher"
	"github.com/zanybarlee/a8-manpower/internal/matching"
	"github.com/zanybarlee/a8-manpower/internal/notify"
	"github.com/zanybarlee/a8-manpower/internal/scheduler"
	"github.com/zanybarlee/a8-manpower/internal/session"
	"github.com/zanybarlee/a8-manpower/internal/shortlist"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.JSONLog, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()
	log.Info("postgres connected")

	// ── Redis (optional) ─────────────────────────────────────────────────────
	var (
		listCache cache.Cache     = cache.NewMemory()
		notifier  notify.Notifier = notify.NewLogNotifier(log)
	)
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		listCache = cache.NewRedis(rdb, log)
		notifier = notify.NewRedisNotifier(rdb, log)
		log.Info("redis connected")
	} else {
		log.Info("no redis configured, using in-memory cache and log notifications")
	}

	// ── Session ──────────────────────────────────────────────────────────────
	var resolver session.Resolver
	if cfg.IdentityURL != "" {
		resolver = session.NewIdentityClient(cfg.IdentityURL, cfg.IdentityToken)
	}
	provider := session.NewProvider(ctx, resolver, log)

	// ── Stores ───────────────────────────────────────────────────────────────
	jobRepo := jobdesc.NewPostgresRepository(pool)
	jobStore := jobdesc.NewStore(jobRepo, listCache, cfg.CacheTTL(), notifier, log)

	matchRepo := candidate.NewPostgresRepository(pool)
	candStore := candidate.NewStore(matchRepo, listCache, cfg.CacheTTL(), log)

	empRepo := employer.NewPostgresRepository(pool)
	empStore := employer.NewStore(empRepo, notifier, log)

	// ── Matcher ──────────────────────────────────────────────────────────────
	var m matcher.Matcher
	switch cfg.MatcherProvider {
	case config.MatcherProviderGemini:
		gen, err := matcher.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal("gemini matcher init failed", zap.Error(err))
		}
		m = matcher.NewGeminiMatcher(gen, matcher.NewPostgresCVStore(pool), log)
		log.Info("matcher provider: gemini")
	default:
		m = matcher.NewHTTPMatcher(cfg.MatcherURL)
		log.Info("matcher provider: http", zap.String("endpoint", cfg.MatcherURL))
	}

	// ── Orchestrator + facade ────────────────────────────────────────────────
	orch := matching.NewOrchestrator(m, candStore, matchRepo, notifier, log)
	facade := shortlist.New(provider, jobStore, candStore, orch)

	// ── Maintenance cron ─────────────────────────────────────────────────────
	sched := scheduler.New(matchRepo, candStore, provider.UserID(), cfg.MaintenanceIntervalHours, log)
	if err := sched.Start(ctx); err != nil {
		log.Fatal("scheduler start failed", zap.Error(err))
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	httpapi.NewHandler(facade, jobStore, empStore, log).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // match runs execute in the request goroutine
	}

	go func() {
		log.Info("listening", zap.String("version", version), zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
	log.Info("stopped")
}
