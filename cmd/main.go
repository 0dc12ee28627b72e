package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	configs "github.com/lianxu-dev/user-center/config"
	"github.com/lianxu-dev/user-center/internal/handler"
	"github.com/lianxu-dev/user-center/internal/middleware"
	"github.com/lianxu-dev/user-center/internal/notify"
	"github.com/lianxu-dev/user-center/internal/repository"
	"github.com/lianxu-dev/user-center/internal/router"
	"github.com/lianxu-dev/user-center/internal/service"
	"github.com/lianxu-dev/user-center/pkg/cache"
	"github.com/lianxu-dev/user-center/pkg/database"
	"github.com/lianxu-dev/user-center/pkg/logger"
	"github.com/lianxu-dev/user-center/pkg/redis"
	"github.com/lianxu-dev/user-center/pkg/validation"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", "1.0.0"),
	)

	if err := validation.RegisterCustomValidators(); err != nil {
		logger.GetLogger().Fatal("Failed to register validators", zap.Error(err))
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	userRepo := repository.NewUserRepository(db)

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	// Sessions and codes fall back to the in-process store when Redis is
	// disabled; fine for a single node, not for a fleet.
	var kv service.KVStore = redisClient
	if !redisClient.IsEnabled() {
		kv = cache.NewStore()
		logger.GetLogger().Warn("Redis disabled, using in-memory cache")
	}

	tokenService := service.NewTokenService(config.JWT.Secret, config.JWT.ExpirationTime)
	sessionCache := service.NewSessionCache(kv, config.Session.TTL)
	codeService := service.NewVerificationCodeService(kv, config.Verification.CodeTTL)
	sender := notify.NewGuardedSender(notify.NewLogSender(), logger.GetLogger())

	authService := service.NewAuthService(userRepo, sessionCache, codeService, tokenService, service.NewBcryptHasher(), sender)
	userService := service.NewUserService(userRepo, sessionCache)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, sessionCache, userRepo)

	r := router.NewRouter(
		authHandler,
		userHandler,
		healthHandler,
		authMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
