package dispcar

// floorHeap orders the floors of one sweep. The up queue is a min-heap
// (nearest floor above first), the down queue a max-heap.
type floorHeap struct {
	floors []int
	max    bool
}

func (h *floorHeap) Len() int { return len(h.floors) }

func (h *floorHeap) Less(i, j int) bool {
	if h.max {
		return h.floors[i] > h.floors[j]
	}
	return h.floors[i] < h.floors[j]
}

func (h *floorHeap) Swap(i, j int) {
	h.floors[i], h.floors[j] = h.floors[j], h.floors[i]
}

func (h *floorHeap) Push(x any) {
	h.floors = append(h.floors, x.(int))
}

func (h *floorHeap) Pop() any {
	last := len(h.floors) - 1
	floor := h.floors[last]
	h.floors = h.floors[:last]
	return floor
}
