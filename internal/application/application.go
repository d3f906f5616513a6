package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"chatblack/internal/api"
	"chatblack/internal/assistant"
	"chatblack/internal/config"
	"chatblack/internal/styleconf"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	styles    *styleconf.Holder
	responder assistant.Responder
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	stylesPath, err := resolveProjectPath(cfg.StylesPath)
	if err != nil {
		return nil, fmt.Errorf("locate style config: %w", err)
	}

	styles, err := styleconf.NewHolder(stylesPath, styleconf.NewRegistry(), logger)
	if err != nil {
		return nil, fmt.Errorf("load style config: %w", err)
	}

	responder := assistant.New()
	handler := api.NewHandler(responder, styles)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithMetrics(cfg.EnableMetrics),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	rootHandler, err := BuildRootHandler(apiRouter, cfg.TemplatesDir, cfg.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP handler: %w", err)
	}

	return &App{
		styles:    styles,
		responder: responder,
		handler:   handler,
		router:    apiRouter,
		logger:    logger,
		server:    NewServer(cfg, rootHandler),
	}, nil
}

// BuildRootHandler constructs the root HTTP handler: the chat page at /,
// static assets, and everything else forwarded to the API router (which also
// owns /theme.css and /metrics).
func BuildRootHandler(apiHandler http.Handler, templatesDir, staticDir string) (http.Handler, error) {
	mux := http.NewServeMux()

	staticPath, err := resolveProjectPath(staticDir)
	if err != nil {
		return nil, err
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticPath))))

	// Both forms so that GET /api is handled directly instead of being
	// redirected to /api/ and lost.
	mux.Handle("/api", apiHandler)
	mux.Handle("/api/", apiHandler)
	mux.Handle("/theme.css", apiHandler)
	mux.Handle("/metrics", apiHandler)

	indexPath, err := resolveProjectPath(filepath.Join(templatesDir, "index.html"))
	if err != nil {
		return nil, err
	}
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, indexPath)
	}))

	return mux, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// StartWatcher begins hot reloading the style config on file changes, until
// ctx is done. Call it only when the config enables watching.
func (a *App) StartWatcher(ctx context.Context) {
	go func() {
		if err := a.styles.Watch(ctx); err != nil {
			a.logger.Error("style watcher stopped", zap.Error(err))
		}
	}()
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Styles returns the style config holder, mainly for reload hooks and tests.
func (a *App) Styles() *styleconf.Holder {
	return a.styles
}

// resolveProjectPath locates a file or directory relative to the project root
// by walking up the directory tree. Absolute paths are checked as-is.
func resolveProjectPath(relative string) (string, error) {
	if filepath.IsAbs(relative) {
		if _, err := os.Stat(relative); err != nil {
			return "", fmt.Errorf("unable to locate %s", relative)
		}
		return relative, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
