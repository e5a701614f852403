package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/config"
	postgres_wrapper "github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/infra/postgres"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/kafkabus"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/logging"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/tradestore"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logger := logging.NewLogger(logging.INFO)
	defer logger.Sync()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	db := postgres_wrapper.InitPostgresWithBackoff(cfg.TradesDB)
	repo := tradestore.NewRepo(db)
	w := tradestore.NewWorker(repo)

	consumer := kafkabus.NewConsumer(kafkabus.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   cfg.Kafka.TradeTopic,
	})
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		cancel()
	}()

	go w.ReportArchiveRate(ctx, time.Minute)

	zap.S().Info("trade archive worker started")
	if err := consumer.Run(ctx, w.HandleBatch); err != nil && err != context.Canceled {
		zap.S().Errorf("consumer stopped: %v", err)
	}
}
