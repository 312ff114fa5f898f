package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tryout_lms_backend/internal/config"
	"tryout_lms_backend/internal/controller"
	"tryout_lms_backend/internal/repository"
	"tryout_lms_backend/internal/service"
	"tryout_lms_backend/pkg/database"
	"tryout_lms_backend/pkg/logger"
	"tryout_lms_backend/pkg/monitoring"
	"tryout_lms_backend/pkg/security"
	"tryout_lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	tryout       *repository.TryoutRepository
	attempt      *repository.AttemptRepository
	course       *repository.CourseRepository
	announcement *repository.AnnouncementRepository
	document     *repository.DocumentRepository
	scholarship  *repository.ScholarshipRepository
	job          *repository.JobRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	tryout       *service.TryoutService
	attempt      *service.AttemptService
	course       *service.CourseService
	announcement *service.AnnouncementService
	document     *service.DocumentService
	scholarship  *service.ScholarshipService
	job          *service.JobService
	notification *service.NotificationService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	tryout       *controller.TryoutController
	attempt      *controller.AttemptController
	course       *controller.CourseController
	announcement *controller.AnnouncementController
	document     *controller.DocumentController
	scholarship  *controller.ScholarshipController
	job          *controller.JobController
	notification *controller.NotificationController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 应用热更新后的配置并通知所有已注册的回调
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("配置已热更新")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		tryout:       repository.NewTryoutRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		course:       repository.NewCourseRepository(db),
		announcement: repository.NewAnnouncementRepository(db),
		document:     repository.NewDocumentRepository(db),
		scholarship:  repository.NewScholarshipRepository(db),
		job:          repository.NewJobRepository(db),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg, logger.Log)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.tryout = service.NewTryoutService(repos.tryout, rdb, logger.Log)
	s.attempt = service.NewAttemptService(repos.tryout, repos.attempt)
	s.notification = service.NewNotificationService(repos.notification, rdb, cfg.Push.Channel, logger.Log)
	s.attempt.Notifications = s.notification
	s.course = service.NewCourseService(repos.course)
	s.announcement = service.NewAnnouncementService(repos.announcement, s.notification)
	s.document = service.NewDocumentService(repos.document, s.storage)
	s.scholarship = service.NewScholarshipService(repos.scholarship)
	s.job = service.NewJobService(repos.job)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		tryout:       controller.NewTryoutController(s.tryout),
		attempt:      controller.NewAttemptController(s.attempt),
		course:       controller.NewCourseController(s.course),
		announcement: controller.NewAnnouncementController(s.announcement),
		document:     controller.NewDocumentController(s.document),
		scholarship:  controller.NewScholarshipController(s.scholarship),
		job:          controller.NewJobController(s.job),
		notification: controller.NewNotificationController(s.notification),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
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

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tryout-lms", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
