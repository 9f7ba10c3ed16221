package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"comphub.backend/internal/config"
	"comphub.backend/internal/infrastructure/repositories"
	"comphub.backend/internal/interfaces/http/handlers"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/usecases"
	"comphub.backend/pkg/jwt"
	"comphub.backend/pkg/logger"
	"comphub.backend/pkg/redis"
	"comphub.backend/pkg/storage"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	mediaStore := storage.NewLocalStore(cfg.Media.Root)

	audit := usecases.NewAuditRecorder(loginAttemptRepo, activityRepo, logger.WithContext(context.Background()), cfg.Audit.BufferSize)

	accountUsecase := usecases.NewAccountUsecase(userRepo, profileRepo, vendorRepo, uow, jwtService, audit)
	profileUsecase := usecases.NewProfileUsecase(profileRepo, mediaStore, audit)
	vendorUsecase := usecases.NewVendorUsecase(vendorRepo, userRepo, uow, mediaStore, audit)
	verificationUsecase := usecases.NewVerificationUsecase(verificationRepo, userRepo, mediaStore, audit)

	authHandler := handlers.NewAuthHandler(accountUsecase, sessionStore)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	vendorHandler := handlers.NewVendorHandler(vendorUsecase)
	verificationHandler := handlers.NewVerificationHandler(verificationUsecase)
	activityHandler := handlers.NewActivityHandler(audit)
	adminHandler := handlers.NewAdminHandler(accountUsecase, verificationUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Background audit writer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go audit.Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		vendorHandler:       vendorHandler,
		verificationHandler: verificationHandler,
		activityHandler:     activityHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		cancel()
	}()

	log.Printf("🚀 CompHub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
