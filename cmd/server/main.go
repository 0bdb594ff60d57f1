package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ezzcrafts/testimania/internal/api"
	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/ezzcrafts/testimania/internal/database"
	"github.com/ezzcrafts/testimania/internal/mail"
	"github.com/ezzcrafts/testimania/pkg/config"
	"github.com/ezzcrafts/testimania/pkg/crypto"
	"github.com/ezzcrafts/testimania/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting Testimania server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Redis. The server runs without it: signin tokens fall back
	// to the in-memory store and mail throttling is skipped.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis", "error", err)
		redisClient = nil
	}

	// Initialize mailer
	var mailer mail.Mailer
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		logger.Warn("SMTP_HOST not set, verification codes will be logged instead of mailed")
		mailer = mail.NewConsoleMailer(logger)
	}

	// Initialize encryptor for testimonial contact details
	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Key)
	if err != nil {
		logger.Error("failed to create encryptor", "error", err)
		os.Exit(1)
	}
	if cfg.Encryption.Key == "" {
		logger.Warn("ENCRYPTION_KEY not set, using generated key - stored contact details will be unreadable on restart")
	}

	// Initialize services
	var signinTokens auth.SigninTokenStore
	if redisClient != nil {
		signinTokens = auth.NewRedisSigninTokens(redisClient)
	} else {
		signinTokens = auth.NewMemorySigninTokens()
	}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService, mailer, signinTokens)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:            db,
		Redis:         redisClient,
		Logger:        logger,
		JWTService:    jwtService,
		AuthService:   authService,
		Encryptor:     encryptor,
		RateLimitReqs: cfg.RateLimit.Requests,
		RateLimitSecs: cfg.RateLimit.WindowSeconds,
		MailLimitReqs: cfg.RateLimit.MailRequests,
		MailLimitSecs: cfg.RateLimit.MailWindowSeconds,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
