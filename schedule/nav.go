package schedule

// RoundNav tracks the jornada a viewer is looking at. The selection is always
// clamped to [1, total]; stepping past either end is a no-op.
type RoundNav struct {
	current int
	total   int
}

func NewRoundNav(total int) *RoundNav {
	if total < 1 {
		total = 1
	}
	return &RoundNav{current: 1, total: total}
}

func (n *RoundNav) Current() int { return n.current }
func (n *RoundNav) Total() int   { return n.total }

func (n *RoundNav) Select(round int) {
	switch {
	case round < 1:
		n.current = 1
	case round > n.total:
		n.current = n.total
	default:
		n.current = round
	}
}

func (n *RoundNav) Prev() {
	if n.current > 1 {
		n.current--
	}
}

func (n *RoundNav) Next() {
	if n.current < n.total {
		n.current++
	}
}
