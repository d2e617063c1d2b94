package sre

// handleSet is a growable slot array with a free list, so deleted ids are
// reused before the backing array grows — mirrors the teacher's ECS entity
// allocator in spirit, generalized here to plain integer handles since the
// scene's objects/lights are a flat array of structs rather than components.
type handleSet struct {
	free []uint32
	next uint32
}

// alloc returns an id to use for a newly created slot: a recycled one from
// the free list if available, otherwise the next never-used index.
func (h *handleSet) alloc() uint32 {
	if n := len(h.free); n > 0 {
		id := h.free[n-1]
		h.free = h.free[:n-1]
		return id
	}
	id := h.next
	h.next++
	return id
}

// release returns id to the free list so it is reused before the array
// grows further.
func (h *handleSet) release(id uint32) {
	h.free = append(h.free, id)
}

// len reports the number of slots ever allocated, i.e. the required backing
// array length (including currently-free slots).
func (h *handleSet) len() int { return int(h.next) }
