package main

import (
	"context"
	"net/http"
	"os"

	"tirehub-line-gateway/internal/application"
	"tirehub-line-gateway/internal/application/event_handlers"
	"tirehub-line-gateway/internal/config"
	apiinfra "tirehub-line-gateway/internal/infrastructure/api"
	"tirehub-line-gateway/internal/infrastructure/cache"
	lineinfra "tirehub-line-gateway/internal/infrastructure/line"
	"tirehub-line-gateway/internal/infrastructure/metrics"
	"tirehub-line-gateway/internal/infrastructure/repository"
	"tirehub-line-gateway/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)

	// Initialize repositories
	storeRepo := repository.NewMongoStoreRepository(db)
	tireRepo := repository.NewMongoTireRepository(db)
	dotRepo := repository.NewMongoTireDotRepository(db)
	logRepo := repository.NewMongoStockLogRepository(db)
	profileRepo := repository.NewMongoProfileRepository(db)
	membershipRepo := repository.NewMongoMembershipRepository(db)
	linkCodeRepo := repository.NewMongoLinkCodeRepository(db)

	// Replay guard is optional: without redis, duplicate confirm
	// deliveries are accepted as-is.
	var replayGuard ports.ReplayGuard
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		replayGuard = cache.NewRedisReplayGuard(redisClient, cfg.Line.ReplayGuardTTL, logger)
	} else {
		logger.Warn().Msg("Redis disabled: confirm postbacks are not deduplicated")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	replyClient := lineinfra.NewClient(cfg.Line.ReplyTimeout, logger)

	// Initialize application services
	tenantService := application.NewTenantService(storeRepo, cfg.Line.ChannelSecret, cfg.Line.ChannelAccessToken, logger)
	permissionService := application.NewPermissionService(profileRepo, storeRepo, membershipRepo, logger)
	searchService := application.NewSearchService(tireRepo, dotRepo, storeRepo, logger)
	stockService := application.NewStockService(dotRepo, logRepo, logger)
	linkService := application.NewLinkService(linkCodeRepo, profileRepo, storeRepo, logger)

	// Initialize event dispatcher and register handlers
	dispatcher := event_handlers.NewDispatcher(replyClient, m, logger)
	dispatcher.RegisterHandler(event_handlers.NewFollowHandler(logger))
	dispatcher.RegisterHandler(event_handlers.NewMessageHandler(permissionService, searchService, linkService, logger))
	dispatcher.RegisterHandler(event_handlers.NewPostbackHandler(permissionService, searchService, stockService, replayGuard, m, logger))

	webhookHandler := apiinfra.NewWebhookHandler(tenantService, dispatcher, storeRepo, m, logger, cfg.Server.EventTimeout)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", lineinfra.SignatureHeader},
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Webhook endpoint: POST /webhooks/line
	r.Post("/webhooks/line", webhookHandler.Handle)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info().Str("addr", cfg.Server.Addr()).Msg("Starting LINE gateway")
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
