package matching

import "container/heap"

// priceHeap caches candidate best prices for one side of the book. Each
// distinct price appears at most once; a price whose level has since been
// emptied stays cached until a best-price query discards it.
type priceHeap struct {
	ticks  tickHeap
	cached map[int64]struct{}
}

// newPriceHeap builds a max-heap when max is true (bids), otherwise a
// min-heap (asks).
func newPriceHeap(max bool) *priceHeap {
	return &priceHeap{
		ticks:  tickHeap{max: max},
		cached: make(map[int64]struct{}),
	}
}

func (p *priceHeap) push(price int64) {
	if _, ok := p.cached[price]; ok {
		return
	}
	p.cached[price] = struct{}{}
	heap.Push(&p.ticks, price)
}

// pop removes the best cached price. Callers check peek first.
func (p *priceHeap) pop() {
	price := heap.Pop(&p.ticks).(int64)
	delete(p.cached, price)
}

func (p *priceHeap) peek() (int64, bool) {
	if len(p.ticks.v) == 0 {
		return 0, false
	}
	return p.ticks.v[0], true
}

// tickHeap is the heap.Interface plumbing under priceHeap.
type tickHeap struct {
	v   []int64
	max bool
}

func (t tickHeap) Len() int { return len(t.v) }

func (t tickHeap) Less(i, j int) bool {
	if t.max {
		return t.v[i] > t.v[j]
	}
	return t.v[i] < t.v[j]
}

func (t tickHeap) Swap(i, j int) { t.v[i], t.v[j] = t.v[j], t.v[i] }

func (t *tickHeap) Push(x any) { t.v = append(t.v, x.(int64)) }

func (t *tickHeap) Pop() any {
	n := len(t.v)
	price := t.v[n-1]
	t.v = t.v[:n-1]
	return price
}
