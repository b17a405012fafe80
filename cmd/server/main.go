package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/lawsearch/internal/api"
	"github.com/dgallion1/lawsearch/internal/config"
	"github.com/dgallion1/lawsearch/internal/index"
	"github.com/dgallion1/lawsearch/internal/search"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	store := index.NewStore(cfg, log)
	engine := search.NewEngine(store, log)
	engine.GroupByUnit = cfg.GroupByUnit

	// Build the index up front so the first query doesn't pay for it.
	// A failed build is not fatal: queries trigger a lazy rebuild.
	if laws, err := store.Build(); err != nil {
		log.Error("startup index build failed", "error", err)
	} else {
		log.Info("startup index ready", "documents", len(laws))
	}

	srv := api.NewServer(store, engine, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting lawsearch", "port", cfg.Port, "docs_dir", cfg.DocsDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
