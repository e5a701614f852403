package tradesink

import (
	"bufio"
	"fmt"
	"os"

	"github.com/Mario-Jimenez-Rama/go-hft-engine/pkg/matching"
)

const csvHeader = "buy_id,sell_id,price,quantity,timestamp_ns\n"

// CSVSink batches trades and appends them to a CSV file, one record per
// line, all fields numeric. Prices are rendered as decimals via the tick
// size used by the engine.
type CSVSink struct {
	f         *os.File
	w         *bufio.Writer
	tick      matching.TickSize
	buf       []matching.Trade
	batchSize int
}

func NewCSVSink(path string, tick matching.TickSize, batchSize int) (*CSVSink, error) {
	if batchSize <= 0 {
		batchSize = 4096
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	return &CSVSink{
		f:         f,
		w:         w,
		tick:      tick,
		buf:       make([]matching.Trade, 0, batchSize),
		batchSize: batchSize,
	}, nil
}

func (s *CSVSink) Append(trades []matching.Trade) error {
	for _, t := range trades {
		s.buf = append(s.buf, t)
		if len(s.buf) >= s.batchSize {
			if err := s.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *CSVSink) Flush() error {
	for _, t := range s.buf {
		_, err := fmt.Fprintf(s.w, "%d,%d,%s,%d,%d\n",
			t.BuyOrderID, t.SellOrderID,
			s.tick.FromTicks(t.Price), t.Quantity,
			t.Timestamp.UnixNano())
		if err != nil {
			return err
		}
	}
	s.buf = s.buf[:0]
	return s.w.Flush()
}

func (s *CSVSink) Close() error {
	if err := s.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
