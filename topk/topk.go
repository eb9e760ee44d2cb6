package topk

// KeyCount pairs a key with its access count.
type KeyCount struct {
	Key   string
	Count uint64
}

// Tracker counts key accesses and answers which keys were accessed the
// most. A key enters the tracker on its first Record call. Counts only
// ever go up, there is no delete.
//
// Ranking order is descending by count, ties broken by ascending key.
type Tracker struct {
	counts map[string]uint64

	// max-heap over all tracked keys with a position map,
	// Record repositions the touched entry instead of re-heapifying
	heap []KeyCount
	pos  map[string]int
}

// New ...
func New() *Tracker {
	return &Tracker{
		counts: map[string]uint64{},
		pos:    map[string]int{},
	}
}

// Len returns the number of tracked keys.
func (t *Tracker) Len() int {
	return len(t.heap)
}

func (t *Tracker) higher(i, j int) bool {
	if t.heap[i].Count != t.heap[j].Count {
		return t.heap[i].Count > t.heap[j].Count
	}
	return t.heap[i].Key < t.heap[j].Key
}

func (t *Tracker) swap(i, j int) {
	t.heap[i], t.heap[j] = t.heap[j], t.heap[i]
	t.pos[t.heap[i].Key] = i
	t.pos[t.heap[j].Key] = j
}

func (t *Tracker) siftUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if !t.higher(index, parent) {
			break
		}
		t.swap(index, parent)
		index = parent
	}
}

func (t *Tracker) siftDown(index int) {
	n := len(t.heap)
	for {
		left := index*2 + 1
		right := left + 1

		highest := index
		if left < n && t.higher(left, highest) {
			highest = left
		}
		if right < n && t.higher(right, highest) {
			highest = right
		}

		if highest == index {
			return
		}
		t.swap(index, highest)
		index = highest
	}
}

// Record increments the access count of key by one,
// inserting it at count 1 when seen for the first time.
func (t *Tracker) Record(key string) {
	t.counts[key]++
	count := t.counts[key]

	index, ok := t.pos[key]
	if !ok {
		index = len(t.heap)
		t.heap = append(t.heap, KeyCount{Key: key, Count: count})
		t.pos[key] = index
		t.siftUp(index)
		return
	}

	t.heap[index].Count = count
	t.siftUp(index)
	t.siftDown(t.pos[key])
}

// Count returns the current access count of key, zero when untracked.
func (t *Tracker) Count(key string) uint64 {
	return t.counts[key]
}

// Top returns the min(k, tracked) highest-count keys in ranking order.
// It does not modify the tracker, repeated calls give the same result.
func (t *Tracker) Top(k int) []KeyCount {
	if k <= 0 {
		return nil
	}
	if k > len(t.heap) {
		k = len(t.heap)
	}

	scratch := scratchHeap{
		data: append([]KeyCount(nil), t.heap...),
		higher: func(a, b KeyCount) bool {
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Key < b.Key
		},
	}

	result := make([]KeyCount, 0, k)
	for i := 0; i < k; i++ {
		result = append(result, scratch.pop())
	}
	return result
}

// Counts returns a copy of all tracked counts, for persistence export.
func (t *Tracker) Counts() map[string]uint64 {
	result := make(map[string]uint64, len(t.counts))
	for key, count := range t.counts {
		result[key] = count
	}
	return result
}

// Restore replaces the tracker state with the given counts,
// used when loading a snapshot. Zero counts are skipped.
func (t *Tracker) Restore(counts map[string]uint64) {
	t.counts = make(map[string]uint64, len(counts))
	t.heap = make([]KeyCount, 0, len(counts))
	t.pos = make(map[string]int, len(counts))

	for key, count := range counts {
		if count == 0 {
			continue
		}
		t.counts[key] = count
		t.pos[key] = len(t.heap)
		t.heap = append(t.heap, KeyCount{Key: key, Count: count})
	}

	for i := len(t.heap)/2 - 1; i >= 0; i-- {
		t.siftDown(i)
	}
}

// scratchHeap is a throwaway copy of the tracker heap that Top pops
// from, keeping Top non-destructive without re-sorting everything.
type scratchHeap struct {
	data   []KeyCount
	higher func(a, b KeyCount) bool
}

func (h *scratchHeap) pop() KeyCount {
	result := h.data[0]
	last := len(h.data) - 1
	h.data[0] = h.data[last]
	h.data[last] = KeyCount{} // clear last
	h.data = h.data[:last]

	index := 0
	for {
		left := index*2 + 1
		right := left + 1

		highest := index
		if left < len(h.data) && h.higher(h.data[left], h.data[highest]) {
			highest = left
		}
		if right < len(h.data) && h.higher(h.data[right], h.data[highest]) {
			highest = right
		}

		if highest == index {
			break
		}
		h.data[index], h.data[highest] = h.data[highest], h.data[index]
		index = highest
	}

	return result
}
