// Package layout computes pane dimensions for the shell and the adaptive
// two-pane split used by master-detail views. All values are terminal cells.
package layout

// SplitState is a resolved horizontal split. Offset is the width of the
// left pane; the right pane gets TotalWidth - Offset.
type SplitState struct {
	TotalWidth int
	Offset     int
	LeftMin    int
	RightMin   int
}

// LeftWidth returns the width of the left pane.
func (s SplitState) LeftWidth() int { return s.Offset }

// RightWidth returns the width of the right pane.
func (s SplitState) RightWidth() int { return s.TotalWidth - s.Offset }

// ComputeSafeLayout resolves a split for totalWidth. It reports false when
// the width is not known yet (<= 0); callers keep the request pending and
// retry on the next size notification instead of computing against zero.
//
// When both minimums do not fit, the right minimum shrinks first. The offset
// always satisfies LeftMin <= Offset <= TotalWidth - RightMin against the
// effective minimums.
func ComputeSafeLayout(totalWidth, desiredOffset, leftMin, rightMin int) (SplitState, bool) {
	if totalWidth <= 0 {
		return SplitState{}, false
	}
	leftMin = max(0, leftMin)
	rightMin = max(0, rightMin)

	effRight := min(rightMin, max(0, totalWidth-leftMin))
	effLeft := min(leftMin, max(0, totalWidth-effRight))

	upper := max(effLeft, totalWidth-effRight)
	offset := clamp(desiredOffset, effLeft, upper)

	return SplitState{
		TotalWidth: totalWidth,
		Offset:     offset,
		LeftMin:    effLeft,
		RightMin:   effRight,
	}, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Splitter owns the split defaults and the last applied state. A layout is
// requested when the owning pane is mounted and applied on the first size
// notification with a positive width.
type Splitter struct {
	Preferred int
	LeftMin   int
	RightMin  int

	state   SplitState
	pending bool
	ready   bool
}

// NewSplitter returns a Splitter with a pending layout request.
func NewSplitter(preferred, leftMin, rightMin int) *Splitter {
	return &Splitter{
		Preferred: preferred,
		LeftMin:   leftMin,
		RightMin:  rightMin,
		pending:   true,
	}
}

// Request marks the layout as pending. Used on mount and reparent, where the
// next size notification may carry a different width.
func (s *Splitter) Request() {
	s.pending = true
}

// Pending reports whether a layout request is waiting for a usable width.
func (s *Splitter) Pending() bool { return s.pending }

// Ready reports whether a layout has been applied at least once.
func (s *Splitter) Ready() bool { return s.ready }

// State returns the last applied split.
func (s *Splitter) State() SplitState { return s.state }

// Resize consumes a size notification. It recomputes when width is positive
// and either a request is pending or the width changed, and reports whether
// a new state was applied.
func (s *Splitter) Resize(width int) bool {
	if width <= 0 {
		return false
	}
	if !s.pending && s.ready && width == s.state.TotalWidth {
		return false
	}
	next, ok := ComputeSafeLayout(width, s.Preferred, s.LeftMin, s.RightMin)
	if !ok {
		return false
	}
	s.apply(next)
	s.pending = false
	s.ready = true
	return true
}

// apply sets the offset before the minimums so the stored minimums never
// describe a state the current offset violates.
func (s *Splitter) apply(next SplitState) {
	s.state.TotalWidth = next.TotalWidth
	s.state.Offset = next.Offset
	s.state.LeftMin = next.LeftMin
	s.state.RightMin = next.RightMin
}
