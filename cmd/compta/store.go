package main

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/mycompta/internal/pkg/circuitbreaker"
	"github.com/piresc/mycompta/internal/pkg/constants"
	"github.com/piresc/mycompta/internal/pkg/database"
	"github.com/piresc/mycompta/internal/pkg/health"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"github.com/piresc/mycompta/internal/pkg/models"
	nsqpkg "github.com/piresc/mycompta/internal/pkg/nsq"
	"github.com/piresc/mycompta/services/transactions"
	"github.com/piresc/mycompta/services/transactions/gateway"
	"github.com/piresc/mycompta/services/transactions/repository"
)

// openStore connects the repository selected by STORE_DRIVER
func openStore(configs *models.Config, healthService *health.Service, gs *appServer) (transactions.TransactionRepo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch configs.Store.Driver {
	case models.StoreDriverMongo, "":
		mongoClient, err := database.NewMongoClient(configs.Mongo)
		if err != nil {
			return nil, err
		}
		gs.OnShutdown(mongoClient.Close)
		healthService.AddChecker("mongo", health.NewMongoChecker(mongoClient))

		collection := configs.Mongo.Collection
		if collection == "" {
			collection = constants.CollectionTransactions
		}
		repo := repository.NewMongoRepo(mongoClient.Collection(collection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("Failed to create mongo indexes", logger.Err(err))
		}
		return repo, nil

	case models.StoreDriverRedis:
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			return nil, err
		}
		gs.OnShutdown(func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewRedisChecker(redisClient))
		return repository.NewRedisRepo(redisClient.GetClient()), nil

	case models.StoreDriverPostgres:
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			return nil, err
		}
		gs.OnShutdown(func(context.Context) error { return postgresClient.Close() })
		healthService.AddChecker("postgres", health.NewPostgresChecker(postgresClient))

		repo := repository.NewPostgresRepo(postgresClient.GetDB())
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case models.StoreDriverMemory:
		logger.Warn("Using in-memory transaction store, data is lost on restart")
		return repository.NewMemoryRepo(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", configs.Store.Driver)
	}
}

// openGateway connects to nsqd, or drops events when NSQ_ADDRESS is empty
func openGateway(configs *models.Config, healthService *health.Service, gs *appServer) (transactions.TransactionGW, error) {
	if configs.NSQ.Address == "" {
		logger.Info("NSQ address not configured, transaction events are disabled")
		return gateway.NewNoopGateway(), nil
	}

	producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		return nil, err
	}
	gs.OnShutdown(func(context.Context) error {
		producer.Stop()
		return nil
	})
	healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error {
		return producer.Ping()
	}))

	logger.Info("NSQ producer initialized", logger.String("address", configs.NSQ.Address))
	breaker := circuitbreaker.New(circuitbreaker.DefaultConfig("nsq-" + constants.TopicTransactionCreated))
	return gateway.NewNSQGateway(producer, breaker), nil
}

func nrShutdown(nrApp *newrelic.Application) func(context.Context) error {
	return func(context.Context) error {
		nrApp.Shutdown(10 * time.Second)
		return nil
	}
}
