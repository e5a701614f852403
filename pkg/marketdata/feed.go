package marketdata

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Tick is one synthetic top-of-book observation.
type Tick struct {
	Symbol    string
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	Timestamp time.Time
}

// Mid returns the midpoint between bid and ask.
func (t Tick) Mid() decimal.Decimal {
	return t.Bid.Add(t.Ask).Div(decimal.NewFromInt(2))
}

type FeedConfig struct {
	Symbol   string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Spread   decimal.Decimal
	Seed     int64
}

// Feed generates mock market data in a fixed price band. Prices are drawn
// in whole cents so ticks land on a 0.01 grid.
type Feed struct {
	cfg FeedConfig
	rng *rand.Rand
}

func NewFeed(cfg FeedConfig) *Feed {
	if cfg.Symbol == "" {
		cfg.Symbol = "SYM"
	}
	if cfg.MinPrice.IsZero() && cfg.MaxPrice.IsZero() {
		cfg.MinPrice = decimal.NewFromInt(100)
		cfg.MaxPrice = decimal.NewFromInt(200)
	}
	if cfg.Spread.IsZero() {
		cfg.Spread = decimal.RequireFromString("0.05")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Feed{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Next produces one tick.
func (f *Feed) Next() Tick {
	minCents := f.cfg.MinPrice.Mul(decimal.NewFromInt(100)).IntPart()
	maxCents := f.cfg.MaxPrice.Mul(decimal.NewFromInt(100)).IntPart()
	cents := minCents + f.rng.Int63n(maxCents-minCents+1)

	bid := decimal.New(cents, -2)
	return Tick{
		Symbol:    f.cfg.Symbol,
		Bid:       bid,
		Ask:       bid.Add(f.cfg.Spread),
		Timestamp: time.Now(),
	}
}

// Generate produces n ticks in one slice, preallocated.
func (f *Feed) Generate(n int) []Tick {
	ticks := make([]Tick, 0, n)
	for i := 0; i < n; i++ {
		ticks = append(ticks, f.Next())
	}
	return ticks
}
