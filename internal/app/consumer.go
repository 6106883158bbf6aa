package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leavehub/internal/employee"
	"go-leavehub/internal/events"
	"go-leavehub/internal/leavebalance"
	"go-leavehub/internal/messaging/kafka/consumer"
	"go-leavehub/internal/schemeassignment"
	"go-leavehub/internal/shared/clock"
	"go-leavehub/internal/shared/connection"
)

// RunConsumer serves asynchronous balance population requests.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, sqlDB, err := connectDatabase()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	balanceService := leavebalance.NewService(
		leavebalance.NewRepository(sqlDB),
		schemeassignment.NewRepository(gormDB),
		employee.NewDirectory(gormDB),
		clock.System(),
		redisClient,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       events.BalancePopulateRequestedTopic,
		GroupID:     "go-leavehub-balance-populate",
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeBalancePopulateRequested(ctx, reader, balanceService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	return nil
}
