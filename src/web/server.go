package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"trackdash/src/binding"
	"trackdash/src/config"
	"trackdash/src/dataset"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"has": func(list []string, v string) bool { return slices.Contains(list, v) },
}

type Server struct {
	view       config.ViewConfig
	serverCfg  config.ServerConfig
	ds         *dataset.Dataset
	categories []string
	dispatcher *binding.Dispatcher
	tmpl       *template.Template
}

func NewServer(cfg *config.Config, ds *dataset.Dataset, categories []string, dispatcher *binding.Dispatcher) (*Server, error) {
	tmpl, err := template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{
		view:       cfg.ViewCfg,
		serverCfg:  cfg.ServerCfg,
		ds:         ds,
		categories: categories,
		dispatcher: dispatcher,
		tmpl:       tmpl,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /update", s.handleUpdate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return withRequestLog(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.serverCfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving dashboard", "addr", srv.Addr, "tracks", s.ds.Len(), "genres", len(s.categories))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve on %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.serverCfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	})
	return g.Wait()
}
