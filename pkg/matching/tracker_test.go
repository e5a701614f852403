package matching

import (
	"errors"
	"testing"
)

func TestTrackerCreateDuplicate(t *testing.T) {
	tr := NewTracker(0)

	if err := tr.Create(Order{ID: 1, Price: 100, Quantity: 10, Side: Buy}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := tr.Create(Order{ID: 1, Price: 101, Quantity: 5, Side: Sell})
	if !errors.Is(err, ErrDuplicateOrder) {
		t.Fatalf("expected ErrDuplicateOrder, got %v", err)
	}
}

func TestTrackerFillTransitions(t *testing.T) {
	tr := NewTracker(0)
	_ = tr.Create(Order{ID: 1, Price: 100, Quantity: 10, Side: Buy})

	if err := tr.Fill(1, 4); err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	if st := tr.State(1); st != StatePartiallyFilled {
		t.Errorf("expected PartiallyFilled, got %v", st)
	}
	if rem := tr.RemainingQty(1); rem != 6 {
		t.Errorf("expected remaining 6, got %d", rem)
	}

	if err := tr.Fill(1, 6); err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	if st := tr.State(1); st != StateFilled {
		t.Errorf("expected Filled, got %v", st)
	}
	if rem := tr.RemainingQty(1); rem != 0 {
		t.Errorf("expected remaining 0, got %d", rem)
	}

	// terminal: no more fills
	if err := tr.Fill(1, 1); !errors.Is(err, ErrTerminalState) {
		t.Errorf("expected ErrTerminalState after Filled, got %v", err)
	}
}

func TestTrackerFillInvalidQty(t *testing.T) {
	tr := NewTracker(0)
	_ = tr.Create(Order{ID: 1, Price: 100, Quantity: 10, Side: Buy})

	if err := tr.Fill(1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero fill, got %v", err)
	}
	if err := tr.Fill(1, -3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative fill, got %v", err)
	}
	if err := tr.Fill(99, 1); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("expected ErrUnknownOrder, got %v", err)
	}
}

func TestTrackerCancelTwice(t *testing.T) {
	tr := NewTracker(0)
	_ = tr.Create(Order{ID: 1, Price: 100, Quantity: 10, Side: Sell})

	if err := tr.Cancel(1); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := tr.Cancel(1); !errors.Is(err, ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState on second cancel, got %v", err)
	}
	// remaining frozen for audit, not reset
	if rem := tr.RemainingQty(1); rem != 10 {
		t.Errorf("expected frozen remaining 10, got %d", rem)
	}
}

func TestTrackerAmendQuantity(t *testing.T) {
	tr := NewTracker(0)
	_ = tr.Create(Order{ID: 1, Price: 100, Quantity: 10, Side: Buy})

	if err := tr.AmendQuantity(1, 7); err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if st := tr.State(1); st != StateNew {
		t.Errorf("amend of a New order keeps it New, got %v", st)
	}

	_ = tr.Fill(1, 2)
	if err := tr.AmendQuantity(1, 3); err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if st := tr.State(1); st != StatePartiallyFilled {
		t.Errorf("expected PartiallyFilled, got %v", st)
	}

	// amend to zero fills the order
	if err := tr.AmendQuantity(1, 0); err != nil {
		t.Fatalf("amend to zero failed: %v", err)
	}
	if st := tr.State(1); st != StateFilled {
		t.Errorf("expected Filled after amend to 0, got %v", st)
	}
	if err := tr.AmendQuantity(1, 5); !errors.Is(err, ErrTerminalState) {
		t.Errorf("expected ErrTerminalState, got %v", err)
	}

	if err := tr.AmendQuantity(99, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative qty, got %v", err)
	}
}

func TestTrackerDegenerateQuantityCreate(t *testing.T) {
	tr := NewTracker(0)
	if err := tr.Create(Order{ID: 1, Price: 100, Quantity: 0, Side: Buy}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if st := tr.State(1); st != StateFilled {
		t.Errorf("zero-quantity order should register as Filled, got %v", st)
	}

	// a negative quantity that slipped through the caller is clamped
	if err := tr.Create(Order{ID: 2, Price: 100, Quantity: -5, Side: Sell}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if st := tr.State(2); st != StateFilled {
		t.Errorf("negative-quantity order should register as Filled, got %v", st)
	}
	if rem := tr.RemainingQty(2); rem != 0 {
		t.Errorf("expected clamped remaining 0, got %d", rem)
	}
}

func TestTrackerUnknownQueries(t *testing.T) {
	tr := NewTracker(0)

	if st := tr.State(42); st != StateUnknown {
		t.Errorf("expected StateUnknown, got %v", st)
	}
	if rem := tr.RemainingQty(42); rem != 0 {
		t.Errorf("expected remaining 0 for unknown id, got %d", rem)
	}
	if tr.Exists(42) {
		t.Error("unknown id should not exist")
	}
	if _, ok := tr.Order(42); ok {
		t.Error("unknown id should return ok=false")
	}
}

func TestTrackerReplacePrice(t *testing.T) {
	tr := NewTracker(0)
	_ = tr.Create(Order{ID: 1, Price: 100, Quantity: 10, Side: Sell})

	if err := tr.ReplacePrice(1, 105); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	ord, ok := tr.Order(1)
	if !ok || ord.Price != 105 {
		t.Errorf("expected price 105, got %+v", ord)
	}

	_ = tr.Cancel(1)
	if err := tr.ReplacePrice(1, 110); !errors.Is(err, ErrTerminalState) {
		t.Errorf("expected ErrTerminalState, got %v", err)
	}
}
