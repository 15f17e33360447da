// Package scroll derives discrete page indicators from horizontal
// viewport geometry. Everything here is pure and safe to call redundantly.
package scroll

import "math"

const (
	// WrapEpsilon is how close (in cells) an offset must be to an edge
	// for directional navigation to wrap around.
	WrapEpsilon = 2

	// MaxDots caps the rendered page indicator.
	MaxDots = 12
)

// Policy selects how a page count is derived from geometry
type Policy int

const (
	// MaxScrollPolicy counts pages over the scrollable distance, so the
	// last page is reached exactly at maximum scroll.
	MaxScrollPolicy Policy = iota
	// CeilPolicy counts how many viewports fit in the content.
	CeilPolicy
)

// Metrics is a snapshot of row layout
type Metrics struct {
	ContentWidth  int
	ViewportWidth int
	Offset        int
}

// MaxScroll returns the furthest valid offset, never negative.
// A row that has not been laid out yet cannot scroll.
func (m Metrics) MaxScroll() int {
	if m.ViewportWidth <= 0 || m.ContentWidth <= m.ViewportWidth {
		return 0
	}
	return m.ContentWidth - m.ViewportWidth
}

// ContentWidth returns the laid-out width of n cells separated by gap
func ContentWidth(n, cell, gap int) int {
	if n <= 0 {
		return 0
	}
	return n*cell + (n-1)*gap
}

// PageCount returns the number of pages under the given policy, at least 1
func PageCount(p Policy, m Metrics) int {
	if m.ViewportWidth <= 0 || m.ContentWidth <= 0 {
		return 1
	}
	switch p {
	case CeilPolicy:
		return max(1, ceilDiv(m.ContentWidth, m.ViewportWidth))
	default:
		maxScroll := m.MaxScroll()
		if maxScroll <= 0 {
			return 1
		}
		return ceilDiv(maxScroll, m.ViewportWidth) + 1
	}
}

// ActiveIndex maps the current offset to a page index in [0, pages-1]
func ActiveIndex(m Metrics, pages int) int {
	maxScroll := m.MaxScroll()
	if maxScroll <= 0 || pages <= 1 {
		return 0
	}
	ratio := float64(m.Offset) / float64(maxScroll)
	idx := int(math.Round(ratio * float64(pages-1)))
	return clampInt(idx, 0, pages-1)
}

// Clamp limits an offset to [0, MaxScroll]
func Clamp(m Metrics, offset int) int {
	return clampInt(offset, 0, m.MaxScroll())
}

// NextOffset returns the target for a "next" action. At (or within
// WrapEpsilon of) the end it wraps to 0.
func NextOffset(m Metrics) int {
	maxScroll := m.MaxScroll()
	if maxScroll-m.Offset <= WrapEpsilon {
		return 0
	}
	return Clamp(m, m.Offset+m.ViewportWidth)
}

// PrevOffset returns the target for a "previous" action. At (or within
// WrapEpsilon of) the start it wraps to MaxScroll.
func PrevOffset(m Metrics) int {
	if m.Offset <= WrapEpsilon {
		return m.MaxScroll()
	}
	return Clamp(m, m.Offset-m.ViewportWidth)
}

// DotCount returns how many indicator dots to draw for pages
func DotCount(pages int) int {
	return clampInt(pages, 0, MaxDots)
}

// State is the page indicator of one row
type State struct {
	PageIndex  int
	TotalPages int
}

// NewState returns the single-page state
func NewState() State {
	return State{TotalPages: 1}
}

// Recompute refreshes the page count from geometry and clamps the index.
// Calling it repeatedly with unchanged metrics is a no-op.
func (s *State) Recompute(p Policy, m Metrics) {
	s.TotalPages = PageCount(p, m)
	s.PageIndex = clampInt(s.PageIndex, 0, s.TotalPages-1)
}

// Sync updates the active index from the current offset
func (s *State) Sync(m Metrics) {
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
	s.PageIndex = ActiveIndex(m, s.TotalPages)
}

// Dots returns the visible dot count and which dot is active.
// active is -1 when no drawn dot matches the page, which happens once
// the page index passes the cap.
func (s State) Dots() (n, active int) {
	n = DotCount(s.TotalPages)
	if n == 0 || s.PageIndex < 0 || s.PageIndex >= n {
		return n, -1
	}
	return n, s.PageIndex
}

// Ease moves current a fraction of the way to target, always by at
// least one cell so animations terminate.
func Ease(current, target int, fraction float64) int {
	if current == target {
		return current
	}
	step := int(math.Round(float64(target-current) * fraction))
	if step == 0 {
		if target > current {
			step = 1
		} else {
			step = -1
		}
	}
	next := current + step
	if (step > 0 && next > target) || (step < 0 && next < target) {
		return target
	}
	return next
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
