package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tg-checkin-backend/docs"
	"tg-checkin-backend/internal/common/cache"
	"tg-checkin-backend/internal/common/config"
	"tg-checkin-backend/internal/common/logger"
	"tg-checkin-backend/internal/common/middleware"
	accountHTTP "tg-checkin-backend/internal/features/account/delivery/http"
	accountRepo "tg-checkin-backend/internal/features/account/repository/mongo"
	accountService "tg-checkin-backend/internal/features/account/service"
	typeHTTP "tg-checkin-backend/internal/features/accounttype/delivery/http"
	typeRepo "tg-checkin-backend/internal/features/accounttype/repository/mongo"
	typeService "tg-checkin-backend/internal/features/accounttype/service"
	authHTTP "tg-checkin-backend/internal/features/auth/delivery/http"
	authService "tg-checkin-backend/internal/features/auth/service"
	"tg-checkin-backend/internal/features/checkin"
	checkinHTTP "tg-checkin-backend/internal/features/checkin/delivery/http"
	"tg-checkin-backend/internal/features/checkin/pending"
	"tg-checkin-backend/internal/platform/mongo"
	"tg-checkin-backend/internal/platform/redis"
	"tg-checkin-backend/internal/platform/telegram"
	"tg-checkin-backend/internal/workers"
)

const serviceName = "tg-checkin-backend"

// @title           Telegram Check-In API
// @version         1.0
// @description     Admin API and mini-app endpoints of the check-in bot.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string

func main() {
	cfg := config.MustLoad()

	logger.Init(serviceName, cfg.Debug)
	logger.Info().Str("bot_mode", cfg.Telegram.Mode).Msg("Starting check-in backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis
	redisClient, err := redis.CreateRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	cacheService := cache.NewCacheService(redisClient)

	// MongoDB
	mongoClient, err := mongo.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	db := mongoClient.Database()

	liveRepository := accountRepo.NewLiveRepository(db)
	historicRepository := accountRepo.NewHistoricRepository(db)
	typeRepository := typeRepo.NewAccountTypeRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		mongo.CollectionAccounts:  liveRepository.EnsureIndexes,
		mongo.CollectionHistoric:  historicRepository.EnsureIndexes,
		mongo.CollectionPassCodes: typeRepository.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Fatal().Err(err).Str("collection", name).Msg("Failed to create indexes")
		}
	}
	logger.Info().Msg("Repositories initialized")

	// Services
	policy := typeService.TTLOnly
	if cfg.CheckIn.CatalogInvalidateOnWrite {
		policy = typeService.InvalidateOnWrite
	}
	catalog := typeService.NewCatalogService(typeRepository, cacheService, cfg.CheckIn.CatalogTTL, policy)
	pendingStore := pending.NewStore(cacheService, cfg.CheckIn.ContactTTL, cfg.CheckIn.PickerTTL)

	tokens := authService.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	sessions := authService.NewSessionStore(cacheService, cfg.Auth.SessionSecret, cfg.Auth.SessionCookie, cfg.Auth.SessionTTL)
	auth := authService.NewAuthService(authService.Credentials{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
	}, tokens, sessions)
	logger.Info().Str("catalog_policy", policy.String()).Msg("Services initialized")

	// Bot
	bot, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.Debug)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	deps := checkin.Deps{
		Bot:      bot.API(),
		Live:     liveRepository,
		Historic: historicRepository,
		Catalog:  catalog,
		Pending:  pendingStore,
	}
	if cfg.CheckIn.LockEnabled {
		deps.Locker = cacheService
	}
	orchestrator := checkin.NewOrchestrator(deps, checkin.Options{LockTTL: cfg.CheckIn.LockTTL})
	dispatcher := checkin.NewDispatcher(orchestrator, cfg.Telegram.HandlerTimeout)

	// Heartbeat
	heartbeat := workers.NewHeartbeatWorker(cfg.Health.Interval,
		workers.Check{Name: "mongo", Pinger: mongoClient},
		workers.Check{Name: "redis", Pinger: cacheService},
	)
	if err := heartbeat.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start heartbeat worker")
	}

	// Gin
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.Origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", middleware.InitDataHeader}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	setupProbes(router, heartbeat)
	if cfg.Debug {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHTTP.NewAuthHandler(auth, tokens, sessions, cfg.Auth.SecureCookie).RegisterRoutes(router)
	checkinHTTP.NewWebhookHandler(cfg.Telegram.BotToken, dispatcher.Dispatch).RegisterRoutes(router)

	miniApp := router.Group("/", middleware.MiniAppAuth(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL, tokens, sessions))
	accountHTTP.NewMiniAppHandler(
		accountService.NewMiniAppService(liveRepository, historicRepository, pendingStore),
	).RegisterRoutes(miniApp)

	admin := router.Group("/", middleware.RequireAuth(tokens, sessions))
	accountHTTP.NewLiveHandler(accountService.NewLiveService(liveRepository)).RegisterRoutes(admin)
	accountHTTP.NewHistoricHandler(accountService.NewHistoricService(historicRepository)).RegisterRoutes(admin)
	typeHTTP.NewAccountTypeHandler(typeService.NewAccountTypeService(typeRepository, catalog)).RegisterRoutes(admin)

	logger.Info().Msg("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	pollDone := make(chan struct{})
	switch cfg.Telegram.Mode {
	case config.BotModeWebhook:
		close(pollDone)
		url := strings.TrimRight(cfg.Telegram.WebhookURL, "/") + "/webhook/telegram/" + cfg.Telegram.BotToken
		if err := bot.SetWebhook(url); err != nil {
			logger.Fatal().Err(err).Msg("Failed to set webhook")
		}
		logger.Info().Msg("Webhook registered")
	default:
		go func() {
			defer close(pollDone)
			if err := bot.Poll(ctx, cfg.Telegram.PollTimeout, dispatcher.Dispatch); err != nil {
				logger.Error().Err(err).Msg("Polling stopped")
			}
		}()
		logger.Info().Msg("Polling for updates")
	}

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	<-pollDone
	dispatcher.Wait()

	if err := heartbeat.Stop(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop heartbeat worker")
	}
	if err := mongoClient.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to close MongoDB client")
	}
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close Redis client")
	}

	logger.Info().Msg("Server exited")
}

func setupProbes(router *gin.Engine, heartbeat *workers.HeartbeatWorker) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// last heartbeat result, not a live ping
	router.GET("/ready", func(c *gin.Context) {
		ready, checks := heartbeat.Ready()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"checks":    checks,
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})
}
