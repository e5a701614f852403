package matching

import (
	"sync"
	"time"
)

// Engine orchestrates the Book and the Tracker: each submission walks the
// opposing side in price-time priority, emits trades at the resting price
// and rests any unfilled remainder. All mutating calls run under one lock,
// so the book and tracker are only ever updated together.
type Engine struct {
	mu      sync.Mutex
	book    *Book
	tracker *Tracker
	now     func() time.Time
}

// NewEngine pre-reserves the tracker for sizeHint orders to avoid map
// growth under sustained load.
func NewEngine(sizeHint int) *Engine {
	return &Engine{
		book:    NewBook(),
		tracker: NewTracker(sizeHint),
		now:     time.Now,
	}
}

// Submit registers the order, matches it against resting liquidity and
// rests the remainder. Returns the trades in execution order; the slice is
// empty when nothing crossed. A zero-quantity order is accepted and
// immediately Filled with no trades.
func (e *Engine) Submit(incoming Order) ([]Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tracker.Create(incoming); err != nil {
		return nil, err
	}
	return e.matchLocked(incoming), nil
}

// matchLocked runs the crossing loop for a taker whose remaining quantity
// lives in the tracker, then rests whatever is left at the taker's limit.
func (e *Engine) matchLocked(taker Order) []Trade {
	var trades []Trade
	opp := taker.Side.Opposite()

	for e.tracker.RemainingQty(taker.ID) > 0 {
		bestPrice, ok := e.book.best(opp)
		if !ok {
			break // no liquidity to cross
		}
		if !crosses(taker.Side, taker.Price, bestPrice) {
			break
		}

		restingID, ok := e.book.PeekFront(opp, bestPrice)
		if !ok {
			break
		}
		restingRemaining := e.tracker.RemainingQty(restingID)

		execQty := min(e.tracker.RemainingQty(taker.ID), restingRemaining)
		// both sides are live with execQty > 0 here; a fill error means the
		// book and tracker have diverged
		if err := e.tracker.Fill(taker.ID, execQty); err != nil {
			panic("matching: fill on taker " + err.Error())
		}
		if err := e.tracker.Fill(restingID, execQty); err != nil {
			panic("matching: fill on resting order " + err.Error())
		}
		if execQty == restingRemaining {
			e.book.RemoveInterest(opp, bestPrice, restingID, execQty)
		} else {
			// partially filled maker keeps its spot at the queue head
			e.book.AdjustInterest(opp, bestPrice, -execQty)
		}

		trades = append(trades, newTrade(taker, restingID, bestPrice, execQty, e.now()))
	}

	if rem := e.tracker.RemainingQty(taker.ID); rem > 0 {
		e.book.AddInterest(taker.Side, taker.Price, taker.ID, rem)
	}
	return trades
}

func crosses(takerSide Side, limit, bestOpposing int64) bool {
	if takerSide == Buy {
		return bestOpposing <= limit
	}
	return bestOpposing >= limit
}

// Cancel removes an open order from the book and marks it Canceled.
func (e *Engine) Cancel(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ord, ok := e.tracker.Order(id)
	if !ok {
		return ErrUnknownOrder
	}
	remaining := e.tracker.RemainingQty(id)
	if err := e.tracker.Cancel(id); err != nil {
		return err
	}
	if remaining > 0 {
		e.book.RemoveInterest(ord.Side, ord.Price, id, remaining)
	}
	return nil
}

// AmendQuantity corrects the remaining quantity of an open order in both
// stores. Amending to zero fills the order and removes it from its level.
func (e *Engine) AmendQuantity(id, newQty int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ord, ok := e.tracker.Order(id)
	if !ok {
		return ErrUnknownOrder
	}
	old := e.tracker.RemainingQty(id)
	if err := e.tracker.AmendQuantity(id, newQty); err != nil {
		return err
	}
	if newQty == 0 {
		e.book.RemoveInterest(ord.Side, ord.Price, id, old)
	} else {
		e.book.AdjustInterest(ord.Side, ord.Price, newQty-old)
	}
	return nil
}

// Replace re-prices an open order. The remainder loses its queue position,
// is matched at the new price and rests whatever is left, like a
// cancel-and-new without a new id.
func (e *Engine) Replace(id, newPrice int64) ([]Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ord, ok := e.tracker.Order(id)
	if !ok {
		return nil, ErrUnknownOrder
	}
	remaining := e.tracker.RemainingQty(id)
	if err := e.tracker.ReplacePrice(id, newPrice); err != nil {
		return nil, err
	}
	e.book.RemoveInterest(ord.Side, ord.Price, id, remaining)

	ord.Price = newPrice
	return e.matchLocked(ord), nil
}

// BestBid returns the highest bid with live interest; ok is false on an
// empty side. The call may evict stale heap entries, hence the lock.
func (e *Engine) BestBid() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.BestBid()
}

func (e *Engine) BestAsk() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.BestAsk()
}

func (e *Engine) OrderCount(price int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.OrderCount(price)
}

func (e *Engine) TotalVolume(price int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.TotalVolume(price)
}

func (e *Engine) LevelCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.LevelCount()
}

func (e *Engine) State(id int64) OrderState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.State(id)
}

func (e *Engine) RemainingQty(id int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.RemainingQty(id)
}
