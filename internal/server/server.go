package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-cafe/job-alerts/internal/config"
	"github.com/golang-cafe/job-alerts/internal/middleware"
	"github.com/golang-cafe/job-alerts/internal/template"

	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	CacheKeyMatchesFeed = "matchesFeed"
)

type Server struct {
	cfg      config.Config
	router   *mux.Router
	tmpl     *template.Template
	bigCache *bigcache.BigCache
	logger   zerolog.Logger
}

func NewServer(
	cfg config.Config,
	r *mux.Router,
	t *template.Template,
	logger zerolog.Logger,
) Server {
	if cfg.SentryDSN != "" {
		raven.SetDSN(cfg.SentryDSN)
	}

	// only a handful of rendered documents are cached
	cacheCfg := bigcache.DefaultConfig(12 * time.Hour)
	cacheCfg.Shards = 16
	cacheCfg.MaxEntriesInWindow = 1024
	cacheCfg.MaxEntrySize = 4096
	bigCache, err := bigcache.NewBigCache(cacheCfg)
	svr := Server{
		cfg:      cfg,
		router:   r,
		tmpl:     t,
		bigCache: bigCache,
		logger:   logger,
	}
	if err != nil {
		svr.Log(err, "unable to initialise big cache")
	}

	return svr
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) Logger() zerolog.Logger {
	return s.logger
}

func (s Server) Render(w http.ResponseWriter, status int, htmlView string, data map[string]interface{}) error {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["SiteName"] = s.cfg.SiteName
	data["SiteHost"] = s.cfg.SiteHost

	return s.tmpl.Render(w, status, htmlView, data)
}

func (s Server) XML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) Log(err error, msg string) {
	if s.cfg.SentryDSN != "" {
		raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	}
	s.logger.Error().Err(err).Msg(msg)
}

func (s Server) Redirect(w http.ResponseWriter, r *http.Request, status int, dst string) {
	http.Redirect(w, r, dst, status)
}

// Handler is the router wrapped in the same middleware chain Run serves.
func (s Server) Handler() http.Handler {
	return middleware.HTTPSMiddleware(
		middleware.LoggingMiddleware(middleware.HeadersMiddleware(s.router, s.cfg.Env), s.logger),
		s.cfg.Env,
	)
}

// Run serves until ctx is done, then gives in-flight requests five seconds
// to finish.
func (s Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		s.logger.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	if s.bigCache == nil {
		return []byte{}, false
	}
	out, err := s.bigCache.Get(key)
	if err != nil {
		return []byte{}, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	if s.bigCache == nil {
		return fmt.Errorf("cache is not initialised")
	}
	return s.bigCache.Set(key, val)
}
