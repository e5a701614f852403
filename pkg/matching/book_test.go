package matching

import "testing"

func TestBookLevelLifecycle(t *testing.T) {
	b := NewBook()

	b.AddInterest(Sell, 100, 1, 10)
	if b.LevelCount() != 1 {
		t.Fatalf("expected 1 level, got %d", b.LevelCount())
	}
	if v := b.TotalVolume(100); v != 10 {
		t.Errorf("expected volume 10, got %d", v)
	}
	if n := b.OrderCount(100); n != 1 {
		t.Errorf("expected 1 order, got %d", n)
	}

	b.AddInterest(Sell, 100, 2, 5)
	if v := b.TotalVolume(100); v != 15 {
		t.Errorf("expected volume 15, got %d", v)
	}

	if !b.RemoveInterest(Sell, 100, 1, 10) {
		t.Fatal("expected remove to succeed")
	}
	if !b.RemoveInterest(Sell, 100, 2, 5) {
		t.Fatal("expected remove to succeed")
	}
	if b.LevelCount() != 0 {
		t.Errorf("level should be deleted when last order leaves, got %d", b.LevelCount())
	}
	if v := b.TotalVolume(100); v != 0 {
		t.Errorf("expected volume 0 for absent level, got %d", v)
	}
}

func TestBookBestPriceOrdering(t *testing.T) {
	b := NewBook()

	b.AddInterest(Buy, 99, 1, 10)
	b.AddInterest(Buy, 101, 2, 10)
	b.AddInterest(Buy, 100, 3, 10)
	b.AddInterest(Sell, 105, 4, 10)
	b.AddInterest(Sell, 103, 5, 10)

	if px, ok := b.BestBid(); !ok || px != 101 {
		t.Errorf("expected best bid 101, got %d ok=%v", px, ok)
	}
	if px, ok := b.BestAsk(); !ok || px != 103 {
		t.Errorf("expected best ask 103, got %d ok=%v", px, ok)
	}
}

func TestBookLazyEviction(t *testing.T) {
	b := NewBook()

	b.AddInterest(Sell, 100, 1, 10)
	b.AddInterest(Sell, 101, 2, 10)

	// empty the best level without touching the heap
	b.RemoveInterest(Sell, 100, 1, 10)

	// the stale 100 entry must be discarded at query time
	if px, ok := b.BestAsk(); !ok || px != 101 {
		t.Fatalf("expected best ask 101 after eviction, got %d ok=%v", px, ok)
	}

	// a level can come back at an evicted price
	b.AddInterest(Sell, 100, 3, 5)
	if px, ok := b.BestAsk(); !ok || px != 100 {
		t.Fatalf("expected best ask 100 after re-add, got %d ok=%v", px, ok)
	}
}

func TestBookEmptySentinels(t *testing.T) {
	b := NewBook()

	if _, ok := b.BestBid(); ok {
		t.Error("empty book should have no best bid")
	}
	if _, ok := b.BestAsk(); ok {
		t.Error("empty book should have no best ask")
	}
	if _, ok := b.PeekFront(Buy, 100); ok {
		t.Error("absent level should have no front order")
	}
}

func TestBookFIFOWithinLevel(t *testing.T) {
	b := NewBook()

	b.AddInterest(Sell, 100, 1, 10)
	b.AddInterest(Sell, 100, 2, 10)
	b.AddInterest(Sell, 100, 3, 10)

	if id, _ := b.PeekFront(Sell, 100); id != 1 {
		t.Fatalf("expected front id 1, got %d", id)
	}
	b.RemoveInterest(Sell, 100, 1, 10)
	if id, _ := b.PeekFront(Sell, 100); id != 2 {
		t.Fatalf("expected front id 2, got %d", id)
	}

	// out-of-order removal (cancel path) keeps queue order for the rest
	b.RemoveInterest(Sell, 100, 3, 10)
	if id, _ := b.PeekFront(Sell, 100); id != 2 {
		t.Fatalf("expected front id 2 after mid-queue removal, got %d", id)
	}
}

func TestBookRemoveUnknown(t *testing.T) {
	b := NewBook()
	b.AddInterest(Buy, 100, 1, 10)

	if b.RemoveInterest(Buy, 100, 99, 10) {
		t.Error("removing an id not at the level should fail")
	}
	if b.RemoveInterest(Buy, 200, 1, 10) {
		t.Error("removing from an absent level should fail")
	}
}
