package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todo-api/docs"
	"todo-api/internal/application/controller"
	"todo-api/internal/application/middleware"
	"todo-api/internal/application/schedule"
	"todo-api/internal/application/server"
	"todo-api/internal/domain/gateway/cache"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/usecase/attachment"
	"todo-api/internal/domain/usecase/auth"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/subtask"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/infra/database"
	"todo-api/internal/infra/security"
	"todo-api/internal/infra/storage"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
	"todo-api/pkg/resource"
)

// @title Todo API
// @version 1.0
// @description Personal todo tracker with subtasks, attachments and links.
// @BasePath /api/v1
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	defer func() { _ = log.Sync() }()
	log.Info(msg.GetMessage("app.start"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	conn, err := database.Open(database.Config{
		Driver:   resource.GetString("app.db.driver"),
		Host:     resource.GetString("app.db.host"),
		Port:     resource.GetString("app.db.port"),
		Username: resource.GetString("app.db.username"),
		Password: resource.GetString("app.db.password"),
		Database: resource.GetString("app.db.database"),
		Schema:   resource.GetString("app.db.schema"),
		SSLMode:  resource.GetString("app.db.ssl-mode"),
		Path:     resource.GetString("app.db.path"),
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.db-connected"))
	log.Info(msg.GetMessage("app.db-migrated"))

	fileStorage, err := storage.NewLocalStorage(resource.GetString("app.attachment.upload-dir"))
	if err != nil {
		log.Fatal("Failed to prepare attachment storage", zap.Error(err))
	}

	redisClient := newRedisClient(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	issuer, err := security.NewJWTIssuer([]byte(resource.GetString("app.auth.jwt-secret")), resource.GetDuration("app.auth.token-ttl"))
	if err != nil {
		log.Fatal("Invalid JWT configuration", zap.Error(err))
	}

	// Init Gateways
	userGateway := db.NewGormUserGateway(conn)
	todoGateway := db.NewGormTodoGateway(conn)
	subTaskGateway := db.NewGormSubTaskGateway(conn)
	fileCleanupGateway := db.NewGormFileCleanupGateway(conn)
	var cacheHealthGateway cache.HealthGateway = cache.DisabledHealthGateway{}
	if redisClient != nil {
		cacheHealthGateway = cache.NewRedisHealthGateway(redisClient)
	}

	// Init UseCase
	attachmentManager := attachment.NewManager(fileStorage, fileCleanupGateway, resource.GetInt64("app.attachment.max-size"))
	cleanupUseCase := attachment.NewCleanupUseCase(fileStorage, fileCleanupGateway,
		resource.GetInt("app.attachment.cleanup.max-attempts"), resource.GetInt("app.attachment.cleanup.batch-size"))
	authUseCase := auth.NewAuthUseCase(userGateway, security.NewBcryptHasher(bcrypt.DefaultCost), issuer)
	todoUseCase := todo.NewTodoUseCase(todoGateway, attachmentManager)
	subTaskUseCase := subtask.NewSubTaskUseCase(todoGateway, subTaskGateway, attachmentManager)
	healthUseCase := health.NewHealthUseCase(db.NewGormHealthDBGateway(conn), cacheHealthGateway, fileStorage)

	// Init Echo
	serverConfig := server.NewConfig()
	e, api := server.New(serverConfig)
	docs.SwaggerInfo.BasePath = serverConfig.ContextPath
	e.GET(serverConfig.ContextPath+"/swagger/*", echoSwagger.WrapHandler)

	session := middleware.Session(authUseCase, resource.GetString("app.auth.cookie-name"))
	var rateLimiter *redis.RateLimiter
	if redisClient != nil {
		rateLimiter = redis.NewRateLimiter(redisClient, redis.NewRateLimiterOptions().
			WithMaxRequests(resource.GetInt("app.auth.rate-limit.max-requests")).
			WithWindow(resource.GetDuration("app.auth.rate-limit.window")))
	}
	cookie := controller.CookieConfig{
		Name:   resource.GetString("app.auth.cookie-name"),
		Secure: resource.GetBool("app.auth.cookie-secure"),
		TTL:    issuer.TTL(),
	}

	// Init Controller
	healthController := controller.NewHealthController(api, healthUseCase)
	userController := controller.NewUserController(api, authUseCase, cookie, session, middleware.RateLimit(rateLimiter, "auth"))
	todoController := controller.NewTodoController(api, todoUseCase, session)
	subTaskController := controller.NewSubTaskController(api, subTaskUseCase, session)

	// Init Routes
	healthController.InitHealthRoutes()
	userController.InitUserRoutes()
	todoController.InitTodoRoutes()
	subTaskController.InitSubTaskRoutes()

	// Init Schedule
	cleanupScheduler := schedule.NewFileCleanupScheduler(cleanupUseCase, redisClient, schedule.FileCleanupSchedulerConfig{
		CronExpression: resource.GetString("app.attachment.cleanup.cron"),
		LockTTL:        resource.GetDuration("app.attachment.cleanup.lock-ttl"),
	})
	if err := cleanupScheduler.InitFileCleanupScheduleTasks(ctx); err != nil {
		log.Fatal("Failed to initialize attachment cleanup scheduler", zap.Error(err))
	}

	// Start Routes
	go func() {
		if err := e.Start(":" + resource.GetString("app.server.port")); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started"))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down server", zap.Error(err))
	}
	cleanupScheduler.Stop()
}

// newRedisClient returns nil when Redis is disabled by configuration.
func newRedisClient(ctx context.Context) *redis.Client {
	if !resource.GetBool("app.redis.enabled") {
		log.Warn(msg.GetMessage("app.redis-disabled"))
		return nil
	}

	client, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")))
	if err != nil {
		log.Fatal("Invalid Redis configuration", zap.Error(err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.Warn("Redis is not reachable yet, continuing", zap.Error(err))
	}
	return client
}
