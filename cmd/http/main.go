package main

import (
	"context"
	"flag"
	"log"
	"time"

	_ "github.com/hilthontt/huddle/docs"
	"github.com/hilthontt/huddle/internal/infrastructure/configs"
	"github.com/hilthontt/huddle/internal/infrastructure/events"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/infrastructure/messaging"
	"github.com/hilthontt/huddle/internal/infrastructure/metrics"
	"github.com/hilthontt/huddle/internal/infrastructure/repository"
	"github.com/hilthontt/huddle/internal/infrastructure/tracing"
	"github.com/hilthontt/huddle/internal/persistence/db"
	persistence "github.com/hilthontt/huddle/internal/persistence/repository"
	"github.com/hilthontt/huddle/internal/presentation/api"
	"github.com/hilthontt/huddle/internal/presentation/handler/health"
	"github.com/hilthontt/huddle/internal/presentation/handler/messages"
	"github.com/hilthontt/huddle/internal/presentation/handler/rooms"
)

const (
	serviceName = "huddle-api"
)

//	@title			Huddle API
//	@version		1.0
//	@description	Ephemeral group chat rooms with polling clients.
//	@BasePath		/api
func main() {
	configFlag := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := configs.Load(configs.DetermineConfigPath(*configFlag))
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		AppName:  serviceName,
		FilePath: cfg.Logger.FilePath,
		FileName: serviceName + ".log",
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
		Console:  cfg.Logger.Console,
	})
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		sh, err := tracing.InitTracer(ctx, tracing.Config{
			ServiceName: serviceName,
			Environment: cfg.Tracing.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			logger.Fatal(logging.General, logging.Startup, "failed to initialize the tracer", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = sh(shutdownCtx)
		}()
	}

	fanout := events.NewFanout()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		fanout.Add(m)
	}

	var rabbitmq *messaging.RabbitMQ
	if cfg.RabbitMQ.Enabled {
		rabbitmq, err = messaging.NewRabbitMQ(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal(logging.RabbitMQ, logging.Startup, "failed to connect to RabbitMQ", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer rabbitmq.Close()

		fanout.Add(events.NewRoomPublisher(rabbitmq))
		logger.Info(logging.RabbitMQ, logging.Startup, "publishing room events", map[logging.ExtraKey]any{
			"Exchange": cfg.RabbitMQ.Exchange,
		})
	}

	if cfg.MongoDB.Enabled {
		mongoCfg := db.NewMongoConfig(cfg.MongoDB)
		client, err := db.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			logger.Fatal(logging.MongoDB, logging.Startup, "failed to connect to MongoDB", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer db.DisconnectMongo(context.Background(), client)

		auditRepository := persistence.NewRoomAuditLogRepository(db.GetDatabase(client, mongoCfg))
		if err := auditRepository.EnsureIndexes(ctx); err != nil {
			logger.Warn(logging.MongoDB, logging.Startup, "failed to create audit log indexes", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}

		if rabbitmq != nil {
			roomConsumer := events.NewRoomConsumer(rabbitmq, auditRepository, logger)
			go func() {
				if err := roomConsumer.Listen(ctx); err != nil && ctx.Err() == nil {
					logger.Error(logging.RabbitMQ, logging.Consume, "room consumer stopped", map[logging.ExtraKey]any{
						logging.ErrorMessage: err.Error(),
					})
				}
			}()
		} else {
			logger.Warn(logging.MongoDB, logging.Startup, "audit log needs rabbitmq.enabled, skipping consumer", nil)
		}
	}

	roomStore := repository.NewRoomStore(repository.Options{
		Expiry:          cfg.RoomStore.Expiry,
		MessageCapacity: cfg.RoomStore.MessageCapacity,
		Publisher:       fanout,
		Logger:          logger,
	})
	defer roomStore.Close()

	roomHandler := rooms.NewHandler(roomStore, logger)
	healthHandler := health.NewHandler()
	messageHandler := messages.NewHandler(roomStore, logger)

	app := api.NewApplication(*cfg, roomHandler, healthHandler, messageHandler, logger, m)

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Error(logging.General, logging.Shutdown, "server stopped with error", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
}
