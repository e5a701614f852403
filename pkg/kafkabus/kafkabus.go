// Package kafkabus wraps segmentio/kafka-go with the publish and
// batch-consume shapes this repo needs: an async producer for trade
// fan-out and a consumer group that hands batches to a handler.
package kafkabus

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
}

type ProducerConfig struct {
	Brokers      []string `yaml:"brokers"`
	BatchSize    int      `yaml:"batch_size"`
	BatchTimeout time.Duration
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(cfg ProducerConfig) *Producer {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			BatchSize:              cfg.BatchSize,
			BatchTimeout:           cfg.BatchTimeout,
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireNone,
			Async:                  true,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p == nil || p.w == nil {
		return errors.New("producer not initialized")
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Producer) PublishJSON(ctx context.Context, topic, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, []byte(key), b)
}

func (p *Producer) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}

type ConsumerConfig struct {
	Brokers      []string `yaml:"brokers"`
	GroupID      string   `yaml:"group_id"`
	Topic        string   `yaml:"topic"`
	BatchSize    int      `yaml:"batch_size"`
	BatchTimeout time.Duration
	MaxRetries   int
	BackoffMin   time.Duration
	BackoffMax   time.Duration
}

// Consumer reads a topic through a consumer group and delivers batches.
type Consumer struct {
	r   *kafka.Reader
	cfg ConsumerConfig
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 200 * time.Millisecond
	}
	if cfg.BackoffMin == 0 {
		cfg.BackoffMin = 100 * time.Millisecond
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = 10 * time.Second
	}
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     cfg.GroupID,
			Topic:       cfg.Topic,
			StartOffset: kafka.FirstOffset,
			MaxWait:     500 * time.Millisecond,
			MinBytes:    1,
			MaxBytes:    10 << 20,
		}),
		cfg: cfg,
	}
}

// Run fetches messages, groups them by size or age, and hands each batch to
// the handler. A batch is committed once the handler succeeds or retries are
// exhausted. Blocks until ctx is done.
func (c *Consumer) Run(ctx context.Context, handler func(context.Context, []Message) error) error {
	if c == nil || c.r == nil {
		return errors.New("consumer not initialized")
	}

	var batch []kafka.Message
	var oldest time.Time

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		wrapped := make([]Message, len(batch))
		for i, m := range batch {
			wrapped[i] = Message{
				Topic:     m.Topic,
				Partition: m.Partition,
				Offset:    m.Offset,
				Key:       m.Key,
				Value:     m.Value,
				Time:      m.Time,
			}
		}

		for attempt := 0; ; attempt++ {
			err := handler(ctx, wrapped)
			if err == nil {
				break
			}
			if attempt >= c.cfg.MaxRetries {
				zap.S().Errorw("batch handler gave up", "err", err, "size", len(batch))
				break
			}
			select {
			case <-time.After(backoffDuration(c.cfg.BackoffMin, c.cfg.BackoffMax, attempt+1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := c.r.CommitMessages(ctx, batch...)
		batch = batch[:0]
		return err
	}

	for {
		fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.BatchTimeout)
		m, err := c.r.FetchMessage(fetchCtx)
		cancel()

		switch {
		case err == nil:
			if len(batch) == 0 {
				oldest = time.Now()
			}
			batch = append(batch, m)
		case errors.Is(err, context.DeadlineExceeded):
			// batch aged out
		case errors.Is(err, context.Canceled):
			_ = flush()
			return ctx.Err()
		default:
			zap.S().Warnw("fetch error", "err", err)
			time.Sleep(200 * time.Millisecond)
			continue
		}

		if len(batch) >= c.cfg.BatchSize ||
			(len(batch) > 0 && time.Since(oldest) >= c.cfg.BatchTimeout) {
			if err := flush(); err != nil {
				zap.S().Warnw("commit error", "err", err)
			}
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.r == nil {
		return nil
	}
	return c.r.Close()
}

func backoffDuration(min, max time.Duration, attempt int) time.Duration {
	d := time.Duration(float64(min) * math.Pow(2, float64(attempt-1)))
	if d > max {
		d = max
	}
	return d
}
