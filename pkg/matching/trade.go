package matching

import "time"

// Trade is one execution between an incoming order and a resting order.
// Price is the resting order's price in ticks.
type Trade struct {
	BuyOrderID  int64
	SellOrderID int64
	Price       int64
	Quantity    int64
	Timestamp   time.Time
}

func newTrade(taker Order, makerID, price, qty int64, ts time.Time) Trade {
	t := Trade{Price: price, Quantity: qty, Timestamp: ts}
	if taker.Side == Buy {
		t.BuyOrderID = taker.ID
		t.SellOrderID = makerID
	} else {
		t.BuyOrderID = makerID
		t.SellOrderID = taker.ID
	}
	return t
}
