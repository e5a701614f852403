package matching

import (
	"errors"

	"github.com/shopspring/decimal"
)

var errNonPositiveTick = errors.New("tick size must be positive")

// TickSize converts between decimal prices and the integer ticks the
// engine works in. Keeping the core on int64 avoids float price-equality
// drift between heap entries and level keys.
type TickSize struct {
	size decimal.Decimal
}

func NewTickSize(size decimal.Decimal) (TickSize, error) {
	if size.Sign() <= 0 {
		return TickSize{}, errNonPositiveTick
	}
	return TickSize{size: size}, nil
}

// MustTickSize is for tests and fixed wiring where the size is a literal.
func MustTickSize(s string) TickSize {
	ts, err := NewTickSize(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return ts
}

// ToTicks rounds px to the nearest tick.
func (t TickSize) ToTicks(px decimal.Decimal) int64 {
	return px.Div(t.size).Round(0).IntPart()
}

func (t TickSize) FromTicks(ticks int64) decimal.Decimal {
	return decimal.NewFromInt(ticks).Mul(t.size)
}
