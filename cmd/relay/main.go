package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/anastacio2001/kzstore-sub000/internal/app/checkout/repo"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/clock"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/committer"
	"github.com/anastacio2001/kzstore-sub000/internal/pkg/config"
	"github.com/anastacio2001/kzstore-sub000/internal/relay"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run relay: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer spannerClient.Close()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	defer writer.Close()

	r := relay.NewRelay(
		repo.NewOutboxRepo(spannerClient),
		writer,
		committer.NewCommitter(spannerClient),
		clock.NewRealClock(),
		logger,
		cfg.RelayBatchSize,
		time.Duration(cfg.RelayPollInterval)*time.Millisecond,
	)

	logger.Info("outbox relay started",
		zap.String("topic", cfg.KafkaTopic),
		zap.Int64("batch_size", cfg.RelayBatchSize))

	if err := r.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
