package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-cafe/job-alerts/internal/alert"
	"github.com/golang-cafe/job-alerts/internal/config"
	"github.com/golang-cafe/job-alerts/internal/handler"
	"github.com/golang-cafe/job-alerts/internal/listing"
	"github.com/golang-cafe/job-alerts/internal/middleware"
	"github.com/golang-cafe/job-alerts/internal/server"
	"github.com/golang-cafe/job-alerts/internal/session"
	"github.com/golang-cafe/job-alerts/internal/template"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

//go:embed static/views/*.html
var views embed.FS

func main() {
	logger := middleware.NewLogger(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to load config")
	}
	catalogue, err := listing.Default()
	if cfg.ListingsFile != "" {
		catalogue, err = listing.LoadFile(cfg.ListingsFile)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to load job listings")
	}

	cookieStore := sessions.NewCookieStore(cfg.SessionKey)
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.Secure = cfg.Env != "dev"
	cookieStore.Options.MaxAge = int(cfg.SessionIdleTimeout.Seconds())
	registry := session.NewRegistry(cookieStore, func() *alert.Store {
		return alert.NewStore(alert.KsuidGenerator{}, nil)
	}, cfg.SessionIdleTimeout, logger)

	svr := server.NewServer(
		cfg,
		mux.NewRouter(),
		template.NewTemplate(views),
		logger,
	)

	handler.RegisterRoutes(svr, registry, catalogue)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go registry.Run(ctx, cfg.SessionSweepEvery)

	if err := svr.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
