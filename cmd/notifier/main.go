package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"skybook/internal/notifier"
	"skybook/pkg/config"
	"skybook/pkg/kafka"
)

const ServiceName = "skybook-notifier"

func main() {
	cfg := config.Load(ServiceName)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaEventsTopic, cfg.KafkaGroupID)
	defer func() {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	n := notifier.New(cfg.Log)
	cfg.Log.Info("Starting notifier", "topic", cfg.KafkaEventsTopic, "group_id", cfg.KafkaGroupID)

	if err := consumer.Run(ctx, n.Handle); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped gracefully")
}
