package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/geoindex/internal/audit"
	"github.com/freeeve/geoindex/internal/auth"
	"github.com/freeeve/geoindex/internal/cache"
	"github.com/freeeve/geoindex/internal/config"
	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/handler"
	"github.com/freeeve/geoindex/internal/logger"
	"github.com/freeeve/geoindex/internal/middleware"
	"github.com/freeeve/geoindex/internal/repository/postgres"
	redisrepo "github.com/freeeve/geoindex/internal/repository/redis"
	"github.com/freeeve/geoindex/internal/service"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("port", cfg.Port).Msg("config loaded")

	eng := engine.New()

	auditLog := connectAudit(cfg.DatabaseURL)
	searchCache := connectCache(cfg.RedisURL)

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)
	wsHub := handler.NewHub()

	searchSvc := service.NewSearchService(eng, searchCache)
	importSvc := service.NewImportService(eng, auditLog)

	authHandler := handler.NewAuthHandler(jwtMgr, cfg.AdminToken)
	searchHandler := handler.NewSearchHandler(searchSvc)
	adminHandler := handler.NewAdminHandler(eng, importSvc)
	wsHandler := handler.NewWSHandler(wsHub, eng)

	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /auth/admin/login", authHandler.AdminLogin)

	mux.HandleFunc("GET /api/v1/search", searchHandler.Search)
	mux.HandleFunc("GET /api/v1/search/ws", wsHandler.ServeWS)

	admin := http.NewServeMux()
	admin.HandleFunc("POST /import", adminHandler.Import)
	admin.HandleFunc("GET /export", adminHandler.Export)
	admin.HandleFunc("GET /stats", adminHandler.Stats)
	mux.Handle("/api/v1/admin/", http.StripPrefix("/api/v1/admin", authMw(admin)))

	root := middleware.Chain(mux, middleware.Logger, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}

// connectAudit opens the Postgres audit log, falling back to a no-op
// logger (ingest still works, just unrecorded) if the database is
// unreachable — the audit trail is a convenience, not load-bearing.
func connectAudit(databaseURL string) audit.Log {
	db, err := postgres.Connect(databaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("audit database unreachable, import runs will not be recorded")
		return audit.Noop{}
	}
	pg := audit.NewPostgres(db)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure import_runs schema, import runs will not be recorded")
		return audit.Noop{}
	}
	return pg
}

// connectCache opens the Redis search cache, falling back to a no-op
// cache (every Search recomputes) if Redis is unreachable.
func connectCache(redisURL string) cache.Cache {
	client, err := redisrepo.NewClient(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("cache redis unreachable, search results will not be cached")
		return cache.Noop{}
	}
	return cache.NewRedis(client)
}
