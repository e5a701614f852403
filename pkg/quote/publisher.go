// Package quote publishes top-of-book snapshots to redis so dashboards and
// market-data readers never touch the engine directly.
package quote

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/matching"
)

type Publisher struct {
	rdb    *redis.Client
	key    string
	tick   matching.TickSize
	engine *matching.Engine
}

func NewPublisher(rdb *redis.Client, key string, tick matching.TickSize, engine *matching.Engine) *Publisher {
	if key == "" {
		key = "book:top"
	}
	return &Publisher{rdb: rdb, key: key, tick: tick, engine: engine}
}

// Publish writes the current best bid/ask and level count as a redis hash.
// An empty side is published as "-".
func (p *Publisher) Publish(ctx context.Context) error {
	fields := map[string]any{
		"best_bid":   "-",
		"best_ask":   "-",
		"levels":     p.engine.LevelCount(),
		"updated_at": time.Now().UnixNano(),
	}
	if px, ok := p.engine.BestBid(); ok {
		fields["best_bid"] = p.tick.FromTicks(px).String()
	}
	if px, ok := p.engine.BestAsk(); ok {
		fields["best_ask"] = p.tick.FromTicks(px).String()
	}
	return p.rdb.HSet(ctx, p.key, fields).Err()
}

// Run republishes on every tick of the interval until ctx is done.
func (p *Publisher) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Publish(ctx); err != nil {
				zap.S().Warnw("publish top-of-book failed", "err", err)
			}
		}
	}
}
