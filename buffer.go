package inorder

import "container/heap"

// orderingBuffer holds out-of-order arrivals keyed by input index.
// The smallest index is always at the top. It also remembers which
// indices are currently held so duplicates can be rejected in O(1).
//
// Not safe for concurrent use; the owning Reorderer guards it.
type orderingBuffer[T any] struct {
	items   entryHeap[T]
	pending map[int]struct{}
	// high-water mark of len(items)
	peak int
}

func newOrderingBuffer[T any]() *orderingBuffer[T] {
	return &orderingBuffer[T]{pending: make(map[int]struct{})}
}

func (b *orderingBuffer[T]) push(e entry[T]) {
	heap.Push(&b.items, e)
	b.pending[e.index] = struct{}{}
	if n := len(b.items); n > b.peak {
		b.peak = n
	}
}

// peek returns the entry with the smallest index without removing it.
func (b *orderingBuffer[T]) peek() (entry[T], bool) {
	if len(b.items) == 0 {
		return entry[T]{}, false
	}
	return b.items[0], true
}

func (b *orderingBuffer[T]) pop() entry[T] {
	e := heap.Pop(&b.items).(entry[T])
	delete(b.pending, e.index)
	return e
}

func (b *orderingBuffer[T]) contains(index int) bool {
	_, ok := b.pending[index]
	return ok
}

func (b *orderingBuffer[T]) len() int { return len(b.items) }

// reset drops everything held. Used when the stage is aborted so buffered
// values become collectable.
func (b *orderingBuffer[T]) reset() {
	b.items = nil
	b.pending = make(map[int]struct{})
}

// entryHeap implements heap.Interface ordered by ascending index.
type entryHeap[T any] []entry[T]

func (h entryHeap[T]) Len() int           { return len(h) }
func (h entryHeap[T]) Less(i, j int) bool { return h[i].index < h[j].index }
func (h entryHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[T]) Push(x any) { *h = append(*h, x.(entry[T])) }

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry[T]{} // release the value for GC
	*h = old[:n-1]
	return e
}
