package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formel/internal/definition"
	"github.com/goliatone/go-formel/internal/preview"
	"github.com/goliatone/go-formel/pkg/phrase"
)

func runServe(cfg Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	defs := fs.String("definitions", cfg.Definitions, "directory holding form definitions")
	phrases := fs.String("phrases", cfg.Phrases, "directory holding phrase files (watched for changes)")
	locale := fs.String("locale", cfg.Locale, "default phrase locale")
	addr := fs.String("addr", cfg.Addr, "listen address")
	logFormat := fs.String("log-format", cfg.LogFormat, "log format (text or json)")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*logFormat, *logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := definition.LoadFS(os.DirFS(*defs))
	if err != nil {
		return err
	}

	catalog := phrase.NewCatalog(
		phrase.WithLocale(*locale),
		phrase.WithFallback("en"),
		phrase.WithLogger(logger),
	)
	if dir := strings.TrimSpace(*phrases); dir != "" {
		if err := catalog.Watch(ctx, dir); err != nil {
			return err
		}
	}

	router := chi.NewRouter()
	preview.New(store, preview.WithCatalog(catalog), preview.WithLogger(logger)).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("preview server listening", slog.String("addr", *addr), slog.Int("forms", len(store.IDs())))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
