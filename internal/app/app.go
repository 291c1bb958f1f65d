package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/internal/controller"
	"questionnaire_backend/internal/repository"
	"questionnaire_backend/internal/service"
	"questionnaire_backend/pkg/configwatcher"
	"questionnaire_backend/pkg/database"
	"questionnaire_backend/pkg/logger"
	"questionnaire_backend/pkg/monitoring"
	"questionnaire_backend/pkg/security"
	"questionnaire_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	rateLimit       *security.RateLimit
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	questionnaire *repository.QuestionnaireRepository
	question      *repository.QuestionRepository
	assignment    *repository.AssignmentRepository
	placement     *repository.PlacementRepository
	scoreCache    *repository.ScoreCacheRepository
}

type services struct {
	auth          *service.AuthService
	storage       *service.StorageService
	placement     *service.PlacementService
	scoring       *service.ScoringService
	questionnaire *service.QuestionnaireService
	quiz          *service.QuizService
	assignment    *service.AssignmentService
	csv           *service.CSVService
}

type controllers struct {
	auth          *controller.AuthController
	questionnaire *controller.QuestionnaireController
	quiz          *controller.QuizController
	assignment    *controller.AssignmentController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		user:          repository.NewUserRepository(db),
		questionnaire: repository.NewQuestionnaireRepository(db),
		question:      repository.NewQuestionRepository(db),
		assignment:    repository.NewAssignmentRepository(db),
		placement:     repository.NewPlacementRepository(db),
	}
	if rdb != nil {
		ttl := time.Duration(cfg.Questionnaire.MaxScoreCacheTTL) * time.Minute
		repos.scoreCache = repository.NewScoreCacheRepository(rdb, ttl)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	// Redis 未启用时缓存保持为 nil 接口
	var cache service.ScoreCache
	if repos.scoreCache != nil {
		cache = repos.scoreCache
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.placement = service.NewPlacementService(repos.placement)
	s.scoring = service.NewScoringService(repos.questionnaire, repos.question, repos.assignment, cache)
	s.questionnaire = service.NewQuestionnaireService(
		repos.questionnaire,
		repos.question,
		repos.assignment,
		s.placement,
		s.scoring,
		cfg,
	)
	s.quiz = service.NewQuizService(repos.questionnaire, repos.question, repos.assignment, cfg)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.questionnaire, s.scoring)
	s.csv = service.NewCSVService(repos.questionnaire, repos.question, s.storage, s.scoring)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		questionnaire: controller.NewQuestionnaireController(s.questionnaire, s.scoring, s.assignment, s.csv),
		quiz:          controller.NewQuizController(s.quiz),
		assignment:    controller.NewAssignmentController(s.assignment),
		health:        controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimit = security.NewRateLimit(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.rateLimit.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders 配置热更新时同步日志级别和限流参数
func (a *App) registerReloaders() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetLevel(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.rateLimit.Update(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.Config.Questionnaire = cfg.Questionnaire
		a.Config.CORS = cfg.CORS
	})
}

func (a *App) watchConfig() {
	go func() {
		configDir := a.Config.ConfigDir
		if configDir == "" {
			configDir = "configs"
		}
		err := configwatcher.WatchConfig(filepath.Join(configDir, "config.yaml"), func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下只有显式指定 -migrate 时才迁移
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, max score cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	repos := app.initRepositories(db, app.Redis, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerReloaders()
	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
