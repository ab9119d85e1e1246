package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zenplan_backend/internal/config"
	"zenplan_backend/internal/controller"
	"zenplan_backend/internal/repository"
	"zenplan_backend/internal/service"
	"zenplan_backend/pkg/database"
	"zenplan_backend/pkg/kvstore"
	"zenplan_backend/pkg/logger"
	"zenplan_backend/pkg/monitoring"
	"zenplan_backend/pkg/security"
	"zenplan_backend/pkg/tracing"

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
	KV              *kvstore.Store
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	userDoc    *repository.UserDocumentRepository
	motivation *repository.MotivationRepository
}

type services struct {
	storage    service.StorageProvider
	sync       *service.SyncService
	auth       *service.AuthService
	streak     *service.StreakService
	mood       *service.MoodService
	task       *service.TaskService
	goal       *service.GoalService
	stats      *service.StatsService
	user       *service.UserService
	motivation *service.MotivationService
}

type controllers struct {
	auth       *controller.AuthController
	task       *controller.TaskController
	goal       *controller.GoalController
	mood       *controller.MoodController
	stats      *controller.StatsController
	sync       *controller.SyncController
	user       *controller.UserController
	motivation *controller.MotivationController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 配置热更新入口，configwatcher 的回调。
func (a *App) OnConfigReload(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		userDoc:    repository.NewUserDocumentRepository(db),
		motivation: repository.NewMotivationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, kv *kvstore.Store, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.sync = service.NewSyncService(kv, repos.userDoc)
	s.auth = service.NewAuthService(repos.user, repos.userDoc, s.sync, cfg)
	s.streak = service.NewStreakService(kv, repos.userDoc)
	s.mood = service.NewMoodService(kv, repos.userDoc, rdb)
	s.task = service.NewTaskService(kv, repos.userDoc, s.streak, s.mood)
	s.goal = service.NewGoalService(kv, repos.userDoc)
	s.stats = service.NewStatsService(kv)
	s.user = service.NewUserService(repos.user, repos.userDoc, kv, storage)
	s.motivation = service.NewMotivationService(repos.motivation)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		task:       controller.NewTaskController(s.task),
		goal:       controller.NewGoalController(s.goal),
		mood:       controller.NewMoodController(s.mood),
		stats:      controller.NewStatsController(s.stats, s.streak),
		sync:       controller.NewSyncController(s.sync, s.auth),
		user:       controller.NewUserController(s.user),
		motivation: controller.NewMotivationController(s.motivation),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	kv, err := kvstore.New(cfg.App.DataDir)
	if err != nil {
		logger.Log.Fatal("Failed to initialize local store", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		KV:     kv,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, kv, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("zenplan-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
