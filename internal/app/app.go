package app

import (
	"context"
	"errors"
	"llm_survey_backend/internal/config"
	"llm_survey_backend/internal/controller"
	"llm_survey_backend/internal/repository"
	"llm_survey_backend/internal/service"
	"llm_survey_backend/internal/view"
	"llm_survey_backend/pkg/configwatcher"
	"llm_survey_backend/pkg/database"
	"llm_survey_backend/pkg/logger"
	"llm_survey_backend/pkg/markdown"
	"llm_survey_backend/pkg/monitoring"
	"llm_survey_backend/pkg/security"
	"llm_survey_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	services        *services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	stop            chan struct{}
	closeOnce       sync.Once
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	student  *repository.StudentRepository
	question *repository.QuestionRepository
	response *repository.ResponseRepository
	feedback *repository.FeedbackRepository
}

type services struct {
	auth   *service.AuthService
	survey *service.SurveyService
	export *service.ExportService
}

type controllers struct {
	auth   *controller.AuthController
	survey *controller.SurveyController
	admin  *controller.AdminController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		student:  repository.NewStudentRepository(db),
		question: repository.NewQuestionRepository(db),
		response: repository.NewResponseRepository(db),
		feedback: repository.NewFeedbackRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	renderer := markdown.NewRenderer(markdown.DefaultStyle)
	return &services{
		auth:   service.NewAuthService(repos.student, repos.feedback, &cfg.Session),
		survey: service.NewSurveyService(repos.student, repos.question, repos.response, repos.feedback, renderer),
		export: service.NewExportService(repos.feedback, cfg.Export.QuoteFields),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, cfg *config.Config) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth, &cfg.Session),
		survey: controller.NewSurveyController(s.survey, &cfg.Session),
		admin:  controller.NewAdminController(s.export),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(security.RequestID())
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New builds the application on an open database. NewApp uses it after
// connecting; tests pass their own database.
func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := view.Templates()
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
		stop:    make(chan struct{}),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services, db, cfg)

	monitoring.Init()

	router := gin.New()
	// 限流按客户端 IP 计数，只信任配置的代理
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.ApplyConfig)

	return app, nil
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}

	if cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	app, err := New(cfg, db)
	if err != nil {
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	return app, nil
}

func (a *App) startBackgroundTasks() {
	go a.limiter.Run(a.stop)

	if a.Config.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(a.Config.ConfigFile, a.applyConfig, a.stop); err != nil {
				logger.Log.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.startBackgroundTasks()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case runErr = <-errCh:
		logger.Log.Error("Server failed", zap.Error(runErr))
	case <-quit:
		logger.Log.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && runErr == nil {
		runErr = err
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
	return runErr
}

// Close stops background tasks, flushes the tracer and closes the database
// pool. It is safe to call more than once.
func (a *App) Close(ctx context.Context) {
	a.closeOnce.Do(func() {
		close(a.stop)

		if a.tracer != nil {
			if err := a.tracer.Shutdown(ctx); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}

		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Log.Error("Failed to close database", zap.Error(err))
			}
		}
	})
}
