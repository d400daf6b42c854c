package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/locvowork/employee_pairs/internal/config"
	"github.com/locvowork/employee_pairs/internal/database"
	"github.com/locvowork/employee_pairs/internal/handler"
	"github.com/locvowork/employee_pairs/internal/logger"
	"github.com/locvowork/employee_pairs/internal/metrics"
	"github.com/locvowork/employee_pairs/internal/parser"
	"github.com/locvowork/employee_pairs/internal/report"
	"github.com/locvowork/employee_pairs/internal/repository"
	"github.com/locvowork/employee_pairs/internal/service"
	"github.com/locvowork/employee_pairs/internal/service/serviceutils"
)

type App struct {
	Echo     *echo.Echo
	DB       *sql.DB
	Registry *prometheus.Registry
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = serviceutils.HTTPErrorHandler
	return &App{
		Echo:     e,
		Registry: prometheus.NewRegistry(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(logger.Options{
		FilePath: cfg.LOG_FILE_PATH,
		Level:    cfg.LOG_LEVEL,
		Console:  cfg.LOG_CONSOLE,
	})
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	collector, err := metrics.NewPrometheus(a.Registry, cfg.METRICS_NAMESPACE)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	svcOpts := []service.Option{
		service.WithMetrics(collector),
		service.WithParserOptions(parserOptions()...),
	}

	// The database is optional; uploads work without it
	if cfg.DB_ENABLED {
		repo, err := a.initRepository(ctx)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, service.WithRepository(repo))
	}

	reportCfg, err := loadReportConfig()
	if err != nil {
		return err
	}
	exporter, err := report.NewExporter(reportCfg)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	// Initialize dependencies
	matchSvc := service.NewMatchService(svcOpts...)
	matchHandler := handler.NewMatchHandler(matchSvc, exporter, cfg.MAX_UPLOAD_BYTES)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(matchHandler)

	return nil
}

func (a *App) initRepository(ctx context.Context) (*repository.AssignmentRepository, error) {
	db, err := database.NewPostgresDB(ctx, DatabaseConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	logger.InfoLog(ctx, "Database connection established successfully")

	repo := repository.NewAssignmentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// DatabaseConfig maps the loaded environment onto database settings.
func DatabaseConfig() database.Config {
	cfg := config.DefaultEnvConfig
	return database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}
}

func parserOptions() []parser.Option {
	opts := []parser.Option{parser.WithStrict(config.DefaultEnvConfig.MATCH_STRICT)}
	if layouts := config.DefaultEnvConfig.MATCH_DATE_LAYOUTS; len(layouts) > 0 {
		opts = append(opts, parser.WithLayouts(layouts...))
	}
	return opts
}

func loadReportConfig() (*report.Config, error) {
	path := config.DefaultEnvConfig.REPORT_CONFIG_PATH
	if path == "" {
		return report.DefaultConfig(), nil
	}
	cfg, err := report.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load report config: %w", err)
	}
	return cfg, nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := logger.Logger().Info()
			if v.Error != nil {
				evt = logger.Logger().Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(h *handler.MatchHandler) {
	a.Echo.GET("/healthz", h.HealthHandler)
	a.Echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	// Multipart overhead on top of the file itself
	limit := middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: fmt.Sprintf("%dB", config.DefaultEnvConfig.MAX_UPLOAD_BYTES+64<<10),
	})
	matchGroup := a.Echo.Group("/matches", limit)
	matchGroup.POST("", h.MatchHandler)
	matchGroup.POST("/export", h.ExportHandler)

	if a.DB != nil {
		a.Echo.GET("/assignments/matches", h.StoredMatchesHandler)
	}
}

func (a *App) Run() error {
	if a.DB != nil {
		defer a.DB.Close()
	}
	err := a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}
