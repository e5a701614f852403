package matching

import "github.com/gammazero/deque"

// priceLevel aggregates the resting interest at one price. The queue holds
// order ids oldest-first; totalQty mirrors the sum of their remaining
// quantities as tracked by the Tracker.
type priceLevel struct {
	price    int64
	totalQty int64
	resting  deque.Deque[int64]
}

// Book is the price-level index: one level map and one best-price heap per
// side. Heap entries are lazily evicted — a level deletion never touches the
// heap, dead prices are discarded when a best-price query observes them.
type Book struct {
	bids map[int64]*priceLevel
	asks map[int64]*priceLevel

	bidHeap *priceHeap
	askHeap *priceHeap
}

func NewBook() *Book {
	return &Book{
		bids:    make(map[int64]*priceLevel),
		asks:    make(map[int64]*priceLevel),
		bidHeap: newPriceHeap(true),
		askHeap: newPriceHeap(false),
	}
}

func (b *Book) sideOf(s Side) (map[int64]*priceLevel, *priceHeap) {
	if s == Buy {
		return b.bids, b.bidHeap
	}
	return b.asks, b.askHeap
}

// AddInterest rests an order: the level is created on first use and the
// order id is appended to the level's FIFO queue.
func (b *Book) AddInterest(side Side, price, id, qty int64) {
	levels, h := b.sideOf(side)
	lvl := levels[price]
	if lvl == nil {
		lvl = &priceLevel{price: price}
		levels[price] = lvl
		h.push(price)
	}
	lvl.resting.PushBack(id)
	lvl.totalQty += qty
}

// AdjustInterest changes a level's aggregate quantity without touching its
// queue. Used for partial fills of the front order and quantity amends.
func (b *Book) AdjustInterest(side Side, price, delta int64) bool {
	levels, _ := b.sideOf(side)
	lvl := levels[price]
	if lvl == nil {
		return false
	}
	lvl.totalQty += delta
	return true
}

// RemoveInterest takes an order out of its level: O(1) when the order sits
// at the queue head (the matching path), O(n) scan for an out-of-order
// cancel. The level is deleted when its last order leaves.
func (b *Book) RemoveInterest(side Side, price, id, qty int64) bool {
	levels, _ := b.sideOf(side)
	lvl := levels[price]
	if lvl == nil {
		return false
	}

	if lvl.resting.Len() > 0 && lvl.resting.Front() == id {
		lvl.resting.PopFront()
	} else {
		i := lvl.resting.Index(func(v int64) bool { return v == id })
		if i < 0 {
			return false
		}
		lvl.resting.Remove(i)
	}

	lvl.totalQty -= qty
	if lvl.resting.Len() == 0 {
		delete(levels, price)
	}
	return true
}

// PeekFront returns the next order to match at a price.
func (b *Book) PeekFront(side Side, price int64) (int64, bool) {
	levels, _ := b.sideOf(side)
	lvl := levels[price]
	if lvl == nil || lvl.resting.Len() == 0 {
		return 0, false
	}
	return lvl.resting.Front(), true
}

func (b *Book) BestBid() (int64, bool) {
	return b.best(Buy)
}

func (b *Book) BestAsk() (int64, bool) {
	return b.best(Sell)
}

func (b *Book) best(side Side) (int64, bool) {
	levels, h := b.sideOf(side)
	for {
		price, ok := h.peek()
		if !ok {
			return 0, false
		}
		if lvl := levels[price]; lvl != nil && lvl.resting.Len() > 0 {
			return price, true
		}
		h.pop() // lazy eviction
	}
}

// OrderCount reports the number of resting orders at a price, either side.
func (b *Book) OrderCount(price int64) int {
	if lvl := b.bids[price]; lvl != nil {
		return lvl.resting.Len()
	}
	if lvl := b.asks[price]; lvl != nil {
		return lvl.resting.Len()
	}
	return 0
}

// TotalVolume reports the aggregate resting quantity at a price, either side.
func (b *Book) TotalVolume(price int64) int64 {
	if lvl := b.bids[price]; lvl != nil {
		return lvl.totalQty
	}
	if lvl := b.asks[price]; lvl != nil {
		return lvl.totalQty
	}
	return 0
}

func (b *Book) LevelCount() int {
	return len(b.bids) + len(b.asks)
}
