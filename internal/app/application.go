package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bme-guide/internal/config"
	"bme-guide/internal/course"
	"bme-guide/internal/handlers"
	"bme-guide/internal/middleware"
	"bme-guide/internal/pages"
	"bme-guide/internal/shell"
	"bme-guide/internal/sidebar"
	"bme-guide/internal/theme"
	"bme-guide/pkg/logger"
	"bme-guide/pkg/navigation"
)

const stylesheetURL = "/static/shell.css"

type Options struct {
	// Registry receives the HTTP collectors. A fresh registry is created when
	// nil.
	Registry *prometheus.Registry
	// CourseProvider overrides the provider built from the site config.
	CourseProvider course.Provider
}

type Application struct {
	cfg     *config.Config
	options Options

	stylesheet  *theme.Stylesheet
	shell       *shell.Shell
	pages       *pages.Loader
	metrics     *middleware.Metrics
	rateLimiter *middleware.RateLimitManager

	templateHandler *handlers.TemplateHandler
	sidebarHandler  *handlers.SidebarHandler
	router          *gin.Engine
	server          *http.Server
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
		opts.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if opts.CourseProvider == nil {
		opts.CourseProvider = course.NewStaticProvider(cfg.SiteTagline, "")
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initTheme(); err != nil {
		return nil, err
	}

	if err := app.initShell(); err != nil {
		return nil, err
	}

	app.metrics = middleware.NewMetrics(opts.Registry)
	app.rateLimiter = middleware.NewRateLimitManager(context.Background(), middleware.RateLimitSettings{
		Requests: cfg.RateLimitRequests,
		Window:   time.Duration(cfg.RateLimitWindow) * time.Second,
		Burst:    cfg.RateLimitBurst,
	})

	if err := app.initHandlers(); err != nil {
		app.rateLimiter.Shutdown()
		return nil, err
	}

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

// initTheme registers the global stylesheet. It runs once, before any
// template is parsed.
func (a *Application) initTheme() error {
	tokens, err := theme.Default()
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	if language := strings.TrimSpace(a.cfg.DefaultLanguage); language != "" && language != tokens.Language {
		tokens.Language = language
		tokens.Direction = ""
	}

	tokens, err = tokens.Override(a.cfg.ThemeFontFamily, a.cfg.ThemeColors, a.cfg.ThemeColorNames())
	if err != nil {
		return fmt.Errorf("invalid theme override: %w", err)
	}

	a.stylesheet = &theme.Stylesheet{}
	a.stylesheet.Register(tokens)

	logger.Info("Theme registered", map[string]interface{}{
		"theme":     tokens.Name,
		"language":  tokens.Language,
		"direction": tokens.Direction,
	})
	return nil
}

func (a *Application) initShell() error {
	layout, err := shell.New(shell.Options{
		Brand: shell.Brand{
			Title:      a.cfg.SiteName,
			ShortTitle: a.cfg.SiteShortName,
			Subtitle:   a.cfg.SiteTagline,
		},
		Stylesheet:    a.stylesheet,
		StylesheetURL: stylesheetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	a.shell = layout

	loader, err := pages.NewLoader(a.cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}
	a.pages = loader

	known := make(map[string]struct{})
	for _, name := range loader.Names() {
		known[name] = struct{}{}
	}
	for _, name := range pageNames(layout.Entries()) {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("navigation entry %q has no page content", name)
		}
	}

	logger.Info("Templates loaded successfully", map[string]interface{}{"pages": len(loader.Names())})
	return nil
}

func (a *Application) initHandlers() error {
	templateHandler, err := handlers.NewTemplateHandler(a.shell, a.pages)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	a.sidebarHandler = handlers.NewSidebarHandler(a.metrics)
	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware(a.stylesheet.Hash()))
	if a.cfg.EnableMetrics {
		router.Use(a.metrics.Middleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SidebarStateMiddleware(sidebar.CookieOptions{
		DefaultOpen: a.cfg.SidebarDefaultOpen,
		Secure:      a.cfg.SidebarCookieSecure,
	}))
	router.Use(middleware.CourseContextMiddleware(a.options.CourseProvider))

	router.GET("/health", handlers.Health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.options.Registry, promhttp.HandlerOpts{})))
	}

	router.StaticFS("/static", theme.StaticFileSystem())

	router.GET("/", a.templateHandler.RenderIndex)
	entries := a.shell.Entries()
	for i, name := range pageNames(entries) {
		router.GET(entries[i].URL, a.templateHandler.RenderPage(name))
	}

	router.POST(shell.DefaultToggleAction,
		middleware.SameOriginMiddleware(),
		middleware.RateLimitMiddleware(a.rateLimiter),
		a.sidebarHandler.Toggle,
	)

	router.NoRoute(a.templateHandler.NotFound)

	a.router = router
}

// pageNames lists the page names routed by the navigation entries.
func pageNames(entries []navigation.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimPrefix(entry.URL, "/"))
	}
	return names
}
