package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	mongodao "github.com/velora/velora-commerce-go/internal/domain/dao/mongo"
)

// DatabaseModule provides MongoDB and Redis dependencies
var DatabaseModule = fx.Module("database",
	fx.Provide(
		provideMongoDatabase,
		provideRedisClient,
	),
	fx.Invoke(ensureIndexes),
)

func provideMongoDatabase(lc fx.Lifecycle, cfg *config.DatabaseConfig, logger *zap.Logger) (*mongo.Database, error) {
	logger.Info("connecting to MongoDB",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI()))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return client.Database(cfg.Name), nil
}

func provideRedisClient(lc fx.Lifecycle, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("connected to Redis", zap.String("addr", cfg.Addr()))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing Redis connection")
			return client.Close()
		},
	})

	return client, nil
}

func ensureIndexes(db *mongo.Database, logger *zap.Logger) error {
	if err := mongodao.EnsureIndexes(context.Background(), db); err != nil {
		logger.Error("failed to create MongoDB indexes", zap.Error(err))
		return err
	}
	logger.Info("MongoDB indexes ensured")
	return nil
}
