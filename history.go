package backprop

// errorHistory keeps the most recent total errors of a training run, up to a fixed depth. Once
// full, each new value replaces the oldest.
type errorHistory struct {
	values []float64
	// index in values where the next value will be written
	next int
	full bool
}

const defaultHistoryDepth int = 10

func newErrorHistory(depth int) *errorHistory {
	if depth < 2 {
		depth = 2
	}
	return &errorHistory{values: make([]float64, depth)}
}

func (h *errorHistory) push(v float64) {
	h.values[h.next] = v
	h.next++
	if h.next == len(h.values) {
		h.next = 0
		h.full = true
	}
}

func (h *errorHistory) len() int {
	if h.full {
		return len(h.values)
	}
	return h.next
}

// recent returns the value pushed 'back' pushes ago; recent(0) is the latest. recent assumes
// back < h.len()
func (h *errorHistory) recent(back int) float64 {
	i := h.next - 1 - back
	if i < 0 {
		i += len(h.values)
	}
	return h.values[i]
}

// increasing returns whether the latest value is greater than the one before it
func (h *errorHistory) increasing() bool {
	return h.len() >= 2 && h.recent(0) > h.recent(1)
}

// list returns a copy of the stored values, oldest first
func (h *errorHistory) list() []float64 {
	l := make([]float64, h.len())
	for i := range l {
		l[i] = h.recent(len(l) - 1 - i)
	}
	return l
}
