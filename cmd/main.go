package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	_ "inkboard/docs"
	"inkboard/internal/domain"
	"inkboard/internal/infrastructure/configs"
	"inkboard/internal/infrastructure/events"
	"inkboard/internal/infrastructure/logging"
	"inkboard/internal/infrastructure/messaging"
	"inkboard/internal/infrastructure/metrics"
	"inkboard/internal/infrastructure/ratelimiter"
	"inkboard/internal/infrastructure/tracing"
	"inkboard/internal/infrastructure/ws"
	"inkboard/internal/persistence/db"
	"inkboard/internal/persistence/repository"
	"inkboard/internal/presentation/api"
	"inkboard/internal/presentation/handler/health"
	"inkboard/internal/presentation/handler/rooms"
)

const (
	serviceName = "inkboard-relay"
)

// @title           Inkboard Relay API
// @version         1.0
// @description     Realtime collaborative whiteboard relay with persistent drawing history.
// @BasePath        /api
func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())
	logger.Init()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	var (
		roomRepository domain.RoomRepository
		commandLog     domain.CommandLog
		activityRepo   domain.RoomActivityRepository
	)

	if cfg.Mongo.URI != "" {
		mongoCfg := db.NewMongoConfig(cfg.Mongo.URI, cfg.Mongo.Database)

		mongoClient, err := db.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.DisconnectMongo(context.Background(), mongoClient)

		database := db.GetDatabase(mongoClient, mongoCfg)

		mongoRooms := repository.NewRoomRepository(database)
		if err := mongoRooms.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to ensure room indexes: %v", err)
		}

		activityRepo = repository.NewRoomActivityLogRepository(database)
		if err := activityRepo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to ensure activity log indexes: %v", err)
		}

		roomRepository = mongoRooms
		commandLog = mongoRooms
	} else {
		logger.Info(logging.General, logging.Startup, "no mongodb uri configured, using in-memory storage", nil)

		memory := repository.NewMemoryRoomRepository(0, 0)
		roomRepository = memory
		commandLog = memory
	}

	var roomPublisher events.Publisher = events.NewNoopPublisher()

	if cfg.Amqp.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.Amqp.URI)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitmq.Close()

		log.Println("Starting RabbitMQ connection")

		roomPublisher = events.NewRoomPublisher(rabbitmq)

		// The audit consumer needs durable storage behind it
		if activityRepo != nil {
			roomConsumer := events.NewRoomConsumer(rabbitmq, activityRepo)
			if err := roomConsumer.Listen(); err != nil {
				log.Fatalf("Failed to start room consumer: %v", err)
			}
		} else {
			logger.Warn(logging.RabbitMQ, logging.Startup, "audit consumer disabled, no durable storage configured", nil)
		}
	}

	m := metrics.New(nil)

	relay := ws.NewRelay(ws.RelayOptions{
		CommandLog:       commandLog,
		Publisher:        roomPublisher,
		Metrics:          m,
		HistoryTimeout:   cfg.Relay.HistoryTimeout,
		CommitTimeout:    cfg.Relay.CommitTimeout,
		CommitQueueSize:  cfg.Relay.CommitQueueSize,
		ClientBufferSize: cfg.Relay.ClientBufferSize,
	})
	go relay.Run(ctx)

	roomHandler := rooms.NewHandler(roomRepository, relay, roomPublisher)
	healthHandler := health.NewHandler()

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(*cfg, *roomHandler, *healthHandler, logger, rl, m)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatal(logging.General, logging.Shutdown, "server exited with error", map[logging.ExtraKey]any{
			"error": err.Error(),
		})
	}
}
