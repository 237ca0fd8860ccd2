package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pthomasfournet/nytspellingbeesolver-sub001/config"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/dictionary"
	"github.com/pthomasfournet/nytspellingbeesolver-sub001/internal/solvestore"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

func loadDictionary(path string) (dictionary.Set, error) {
	if filepath.Ext(path) == ".db" {
		return dictionary.LoadSqlite(path)
	}
	return dictionary.LoadTextFile(path)
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if strings.ToLower(cfg.LogLevel) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	dict, err := loadDictionary(cfg.DictionaryPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DictionaryPath).Msg("could not load dictionary")
	}

	var store *solvestore.Store
	if cfg.DBConnUri != "" {
		m, err := migrate.New(cfg.DBMigrationsPath, cfg.DBConnUri)
		if err != nil {
			log.Fatal().Err(err).Msg("could not set up migrations")
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("could not run migrations")
		}
		m.Close()
		dbPool, err := pgxpool.New(context.Background(), cfg.DBConnUri)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to run history db")
		}
		defer dbPool.Close()
		store = solvestore.NewStore(dbPool)
	} else {
		log.Info().Msg("no db-conn-uri; run history disabled")
	}

	srv := newServer(cfg, dict, store)

	open := alice.New(logRequests)
	authed := alice.New(logRequests, requireToken([]byte(cfg.SecretKey)))

	mux := http.NewServeMux()
	mux.Handle("POST /api/solve", open.ThenFunc(srv.handleSolve))
	mux.Handle("GET /api/runs", authed.ThenFunc(srv.handleRecentRuns))
	mux.Handle("GET /api/runs/{id}", authed.ThenFunc(srv.handleGetRun))
	mux.Handle("GET /ws/solve", open.ThenFunc(srv.handleSolveWS))
	mux.Handle("GET /txt", open.Then(plainTextHandler(srv)))

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}
	idleConnsClosed := make(chan struct{})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)

		if err := httpSrv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		cancel()
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", cfg.ListenAddr).Int("words", dict.Len()).Msg("solve server listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
