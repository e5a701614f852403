package matching

// OrderState is the lifecycle state of a known order.
type OrderState int8

const (
	StateUnknown OrderState = iota // sentinel for ids never created
	StateNew
	StatePartiallyFilled
	StateFilled
	StateCanceled
)

func (s OrderState) String() string {
	switch s {
	case StateNew:
		return "New"
	case StatePartiallyFilled:
		return "PartiallyFilled"
	case StateFilled:
		return "Filled"
	case StateCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further mutation is accepted.
func (s OrderState) Terminal() bool {
	return s == StateFilled || s == StateCanceled
}

type orderRecord struct {
	order     Order
	state     OrderState
	remaining int64
}

// Tracker owns the authoritative state and remaining quantity of every
// order ever submitted. The book's per-level aggregates are a derived view;
// all quantity changes go through the Tracker first.
type Tracker struct {
	records map[int64]*orderRecord
}

// NewTracker pre-sizes the id map; sizeHint 0 is fine for tests.
func NewTracker(sizeHint int) *Tracker {
	return &Tracker{
		records: make(map[int64]*orderRecord, sizeHint),
	}
}

// Create registers a new order. A non-positive quantity has nothing left
// to trade: the order is accepted and registered directly as Filled, so a
// malformed submission can never corrupt level aggregates.
func (t *Tracker) Create(o Order) error {
	if _, ok := t.records[o.ID]; ok {
		return ErrDuplicateOrder
	}
	st := StateNew
	rem := o.Quantity
	if rem <= 0 {
		rem = 0
		st = StateFilled
	}
	t.records[o.ID] = &orderRecord{order: o, state: st, remaining: rem}
	return nil
}

// Fill applies an execution. The engine never requests more than the
// remaining quantity; a larger execQty still only drains to zero.
func (t *Tracker) Fill(id, execQty int64) error {
	if execQty <= 0 {
		return ErrInvalidArgument
	}
	rec := t.records[id]
	if rec == nil {
		return ErrUnknownOrder
	}
	if rec.state.Terminal() {
		return ErrTerminalState
	}

	if execQty >= rec.remaining {
		rec.remaining = 0
		rec.state = StateFilled
	} else {
		rec.remaining -= execQty
		rec.state = StatePartiallyFilled
	}
	return nil
}

// Cancel freezes the remaining quantity at its last value for audit.
func (t *Tracker) Cancel(id int64) error {
	rec := t.records[id]
	if rec == nil {
		return ErrUnknownOrder
	}
	if rec.state.Terminal() {
		return ErrTerminalState
	}
	rec.state = StateCanceled
	return nil
}

// AmendQuantity sets the remaining quantity directly (administrative
// correction, not a fill) and recomputes the state.
func (t *Tracker) AmendQuantity(id, newQty int64) error {
	if newQty < 0 {
		return ErrInvalidArgument
	}
	rec := t.records[id]
	if rec == nil {
		return ErrUnknownOrder
	}
	if rec.state.Terminal() {
		return ErrTerminalState
	}

	rec.remaining = newQty
	switch {
	case newQty == 0:
		rec.state = StateFilled
	case rec.state == StateNew:
		// stays New
	default:
		rec.state = StatePartiallyFilled
	}
	return nil
}

// ReplacePrice re-prices an open order. The book move is the engine's job.
func (t *Tracker) ReplacePrice(id, newPrice int64) error {
	rec := t.records[id]
	if rec == nil {
		return ErrUnknownOrder
	}
	if rec.state.Terminal() {
		return ErrTerminalState
	}
	rec.order.Price = newPrice
	return nil
}

func (t *Tracker) Exists(id int64) bool {
	_, ok := t.records[id]
	return ok
}

// State returns StateUnknown for ids never created, so callers can query
// without a prior Exists check.
func (t *Tracker) State(id int64) OrderState {
	rec := t.records[id]
	if rec == nil {
		return StateUnknown
	}
	return rec.state
}

func (t *Tracker) RemainingQty(id int64) int64 {
	rec := t.records[id]
	if rec == nil {
		return 0
	}
	return rec.remaining
}

// Order returns a copy of the order as currently known.
func (t *Tracker) Order(id int64) (Order, bool) {
	rec := t.records[id]
	if rec == nil {
		return Order{}, false
	}
	return rec.order, true
}
