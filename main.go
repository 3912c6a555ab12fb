// main.go
package main

import (
	"context"
	"log"
	"time"

	"advonex/cmd"
	"advonex/internal/data/repository"
	"advonex/internal/usecase"
	"advonex/internal/wire"
	"advonex/pkg/database"
	"advonex/pkg/imagestore"
	"advonex/pkg/mailer"
	"advonex/pkg/ratelimit"
	"advonex/pkg/sms"
	"advonex/pkg/token"
	"advonex/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Token manager
	tokens, err := token.NewManager(config.JWT)
	if err != nil {
		logger.Fatal("Failed to init token manager", zap.Error(err))
	}

	// OTP rate limiter: Redis when configured, per-process fallback otherwise
	var limiter ratelimit.Limiter
	if config.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		limiter = ratelimit.NewRedisLimiter(client, "otp", config.OTP.MaxRequestsPerHour, time.Hour)
		logger.Info("Using Redis rate limiter", zap.String("addr", config.Redis.Addr))
	} else {
		limiter = ratelimit.NewMemoryLimiter(config.OTP.MaxRequestsPerHour, time.Hour)
		logger.Info("Using in-memory rate limiter")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Object storage for image uploads
	images, err := imagestore.NewS3Store(ctx, config.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to init image store", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(usecase.Deps{
		Repo:    repos,
		Config:  config,
		Tokens:  tokens,
		Limiter: limiter,
		SMS:     sms.NewSender(config.SMS, logger),
		Mailer:  mailer.NewMailer(config.Email, logger),
		Images:  images,
		Log:     logger,
	})

	// Background OTP sweeps
	app.Cleanup.Start(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
