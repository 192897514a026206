package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
	mongodao "github.com/velora/velora-commerce-go/internal/domain/dao/mongo"
	"github.com/velora/velora-commerce-go/internal/domain/service/impl"
	"github.com/velora/velora-commerce-go/internal/events"
	"github.com/velora/velora-commerce-go/internal/scheduler"
	"github.com/velora/velora-commerce-go/internal/websocket"
	"github.com/velora/velora-commerce-go/pkg/logger"
)

func main() {
	cfg, log := mustLoadConfig()
	defer log.Sync()

	log.Info("starting velora worker",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()
	redisClient := mustConnectRedis(ctx, cfg, log)
	defer redisClient.Close()

	mongoClient, db := mustConnectMongo(ctx, cfg, log)
	defer mongoClient.Disconnect(context.Background())

	productDAO := mongodao.NewProductDAO(db)
	paymentDAO := mongodao.NewPaymentDAO(db)
	couponDAO := mongodao.NewCouponDAO(db)
	refreshTokenDAO := mongodao.NewRefreshTokenDAO(db)
	notificationDAO := mongodao.NewNotificationDAO(db)

	hub := websocket.NewHub(log)
	go hub.Run()

	notifications := impl.NewNotificationService(notificationDAO, hub, log)
	handler := impl.NewNotificationHandler(notifications)

	dispatcher := events.NewDispatcher(redisClient, handler, cfg.Worker.Concurrency, log)
	dispatcher.Start()

	sched := scheduler.NewScheduler(redisClient, productDAO, paymentDAO, couponDAO, refreshTokenDAO, notifications, log)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")
	sched.Stop()
	dispatcher.Stop()
	log.Info("worker shutdown complete")
}

func mustLoadConfig() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: cfg.App.Debug,
		Encoding:    "json",
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

func mustConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	return client
}

func mustConnectMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, *mongo.Database) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Database.MongoURI()))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.Database.Name))
	return client, client.Database(cfg.Database.Name)
}
