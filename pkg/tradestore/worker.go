package tradestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/kafkabus"
	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/tradesink"
)

// Worker drains the trade topic into the relational store, one bulk insert
// per consumed batch.
type Worker struct {
	trades ITrade
}

func NewWorker(repo IRepo) *Worker {
	return &Worker{trades: repo.Trades()}
}

// HandleBatch is the kafkabus consumer handler: malformed messages are
// logged and skipped so one bad record cannot wedge the partition.
func (w *Worker) HandleBatch(ctx context.Context, msgs []kafkabus.Message) error {
	records := make([]*TradeRecord, 0, len(msgs))
	for _, m := range msgs {
		var tm tradesink.TradeMessage
		if err := json.Unmarshal(m.Value, &tm); err != nil {
			zap.S().Warnw("skipping malformed trade message",
				"err", err, "offset", m.Offset, "partition", m.Partition)
			continue
		}
		px, err := decimal.NewFromString(tm.Price)
		if err != nil {
			zap.S().Warnw("skipping trade with bad price",
				"err", err, "price", tm.Price, "offset", m.Offset)
			continue
		}
		records = append(records, &TradeRecord{
			EventID:     newEventID(),
			BuyOrderID:  tm.BuyOrderID,
			SellOrderID: tm.SellOrderID,
			Price:       px,
			Quantity:    tm.Quantity,
			ExecutedAt:  tm.ExecutedAt,
			CreatedAt:   time.Now(),
		})
	}

	_, err := w.trades.BulkCreate(ctx, records)
	return err
}

// ReportArchiveRate logs how many trades landed in the store during each
// elapsed interval. Runs until ctx is canceled.
func (w *Worker) ReportArchiveRate(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := w.trades.CountSince(ctx, now.Add(-interval).UnixNano())
			if err != nil {
				zap.S().Warnw("trade count query failed", "err", err)
				continue
			}
			zap.S().Infow("trades archived", "interval", interval.String(), "count", n)
		}
	}
}
