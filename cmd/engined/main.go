package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/config"
	redis_wrapper "github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/infra/redis"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/kafkabus"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/logging"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/marketdata"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/matching"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/quote"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/tradesink"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logger := logging.NewLogger(logging.INFO)
	defer logger.Sync()

	go func() {
		_ = http.ListenAndServe("localhost:6060", nil)
	}()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	tick := matching.MustTickSize(cfg.TickSize)

	engine := matching.NewEngine(cfg.Engine.ReserveOrders)
	actor := matching.StartBookActor(engine, cfg.Engine.CommandBuffer)
	defer actor.Close()

	// trade fan-out: CSV archive + kafka topic
	csvSink, err := tradesink.NewCSVSink(cfg.Sink.CSVPath, tick, cfg.Sink.BatchSize)
	if err != nil {
		panic(err)
	}
	producer := kafkabus.NewProducer(kafkabus.ProducerConfig{Brokers: cfg.Kafka.Brokers})
	sink := tradesink.NewMulti(
		csvSink,
		tradesink.NewKafkaSink(producer, cfg.Kafka.TradeTopic, tick),
	)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Redis != nil {
		rdb, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Errorf("init redis fail: %v", err)
			panic(err)
		}
		pub := quote.NewPublisher(rdb, "book:"+cfg.Feed.Symbol, tick, engine)
		go pub.Run(ctx, time.Second)
	}

	feed := marketdata.NewFeed(marketdata.FeedConfig{
		Symbol:   cfg.Feed.Symbol,
		MinPrice: decimalOrZero(cfg.Feed.MinPrice),
		MaxPrice: decimalOrZero(cfg.Feed.MaxPrice),
		Spread:   decimalOrZero(cfg.Feed.Spread),
		Seed:     cfg.Feed.Seed,
	})

	flowDone := make(chan struct{})
	go func() {
		defer close(flowDone)
		runOrderFlow(ctx, actor, feed, tick, sink)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	zap.S().Infof("%s started", cfg.ServiceName)

	<-sigs
	zap.S().Info("shutting down...")
	cancel()
	<-flowDone
}

// runOrderFlow turns each tick into one limit order near mid and forwards
// the resulting trades to the sink.
func runOrderFlow(
	ctx context.Context,
	actor *matching.BookActor,
	feed *marketdata.Feed,
	tick matching.TickSize,
	sink tradesink.Sink,
) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	maxSkew := decimal.RequireFromString("0.10")
	nextID := int64(1)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		md := feed.Next()
		skew := maxSkew.Mul(decimal.NewFromFloat(rng.Float64()))
		px := md.Mid()
		side := matching.Sell
		if rng.Intn(2) == 1 {
			side = matching.Buy
			px = px.Add(skew)
		} else {
			px = px.Sub(skew)
		}

		trades, err := actor.Submit(ctx, matching.Order{
			ID:       nextID,
			Price:    tick.ToTicks(px),
			Quantity: int64(rng.Intn(191) + 10),
			Side:     side,
		})
		nextID++
		if err != nil {
			if ctx.Err() != nil || err == matching.ErrActorClosed {
				return
			}
			zap.S().Warnw("submit failed", "err", err)
			continue
		}
		if len(trades) > 0 {
			if err := sink.Append(trades); err != nil {
				zap.S().Errorw("trade sink append failed", "err", err)
			}
		}
	}
}

func decimalOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(s)
}
