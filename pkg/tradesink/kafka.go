package tradesink

import (
	"context"
	"strconv"
	"time"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/kafkabus"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/matching"
)

// TradeMessage is the wire form of a trade on the kafka topic. Prices are
// decimal strings so consumers do not need the tick size.
type TradeMessage struct {
	BuyOrderID  int64     `json:"buy_order_id"`
	SellOrderID int64     `json:"sell_order_id"`
	Price       string    `json:"price"`
	Quantity    int64     `json:"quantity"`
	ExecutedAt  time.Time `json:"executed_at"`
}

// KafkaSink publishes each trade as one JSON message, keyed by the buy
// order id so executions of one order stay on one partition.
type KafkaSink struct {
	producer *kafkabus.Producer
	topic    string
	tick     matching.TickSize
}

func NewKafkaSink(producer *kafkabus.Producer, topic string, tick matching.TickSize) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic, tick: tick}
}

func (s *KafkaSink) Append(trades []matching.Trade) error {
	ctx := context.Background()
	for _, t := range trades {
		msg := TradeMessage{
			BuyOrderID:  t.BuyOrderID,
			SellOrderID: t.SellOrderID,
			Price:       s.tick.FromTicks(t.Price).String(),
			Quantity:    t.Quantity,
			ExecutedAt:  t.Timestamp,
		}
		key := strconv.FormatInt(t.BuyOrderID, 10)
		if err := s.producer.PublishJSON(ctx, s.topic, key, msg); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op: the producer batches asynchronously.
func (s *KafkaSink) Flush() error {
	return nil
}

func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
