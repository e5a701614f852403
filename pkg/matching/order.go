package matching

// Side is the direction of an order.
type Side int8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the side an order trades against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Order is an immutable-identity limit order. Prices are integer ticks,
// see TickSize for the decimal conversion at the edges.
type Order struct {
	ID       int64
	Price    int64
	Quantity int64
	Side     Side
}
