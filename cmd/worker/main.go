package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"resale/infra/rabbitmq"
	"resale/internal/consumers"
	"resale/pkg/config"
	"resale/pkg/mail"
	"resale/pkg/sms"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Resale worker starting...")

	appConfig := config.Read()
	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for the worker")
	}

	orderHandler := consumers.NewOrderEventHandler(mail.NewSender(), zap.L())
	authHandler := consumers.NewAuthEventHandler(sms.NewSender(), zap.L())

	orderConsumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, rabbitmq.ConsumerConfig{
		Exchange:      "resale.order",
		QueueName:     "worker.order.all.v1",
		RoutingKeys:   []string{"order.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	})
	if err != nil {
		zap.L().Fatal("Failed to create order consumer", zap.Error(err))
	}
	defer orderConsumer.Close()

	authConsumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, rabbitmq.ConsumerConfig{
		Exchange:      "resale.auth",
		QueueName:     "worker.auth.otp.v1",
		RoutingKeys:   []string{"auth.otp.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	})
	if err != nil {
		zap.L().Fatal("Failed to create auth consumer", zap.Error(err))
	}
	defer authConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := orderConsumer.Consume(ctx, orderHandler.HandleEvent); err != nil {
			if err != context.Canceled {
				zap.L().Error("Order consumer error", zap.Error(err))
			}
		}
	}()

	go func() {
		if err := authConsumer.Consume(ctx, authHandler.HandleEvent); err != nil {
			if err != context.Canceled {
				zap.L().Error("Auth consumer error", zap.Error(err))
			}
		}
	}()

	zap.L().Info("Worker started. Waiting for events...")

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker...")
	cancel()

	zap.L().Info("Worker stopped gracefully")
}
