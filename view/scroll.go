package view

import "math"

const (
	// animFactor is the fraction of the remaining scroll distance covered
	// each animation step.
	animFactor = 0.3
	// wheelGain converts wheel delta in line heights to scrolled lines.
	wheelGain = 2.5
	// momentumCarry is how much of the effective wheel delta survives to
	// the next event.
	momentumCarry = 0.8
	// momentumBias is how much carried momentum contributes to the next
	// effective delta.
	momentumBias = 0.1
	// animateThreshold is the jump size, in lines, above which wheel
	// scrolls animate instead of moving directly.
	animateThreshold = 5
	// followMargin keeps the cursor this many lines inside the window
	// edges.
	followMargin = 5
)

// ScrollAnimator eases the viewport toward a target line and accumulates
// wheel momentum. It drives a Viewport but holds no line content itself.
type ScrollAnimator struct {
	view     *Viewport
	target   int
	animated bool
	momentum float64
}

// NewScrollAnimator creates an animator driving view.
func NewScrollAnimator(view *Viewport) *ScrollAnimator {
	return &ScrollAnimator{view: view}
}

// Animating reports whether a target is pending.
func (s *ScrollAnimator) Animating() bool {
	return s.animated
}

// Target returns the pending target line, if any.
func (s *ScrollAnimator) Target() (int, bool) {
	return s.target, s.animated
}

// ScrollTo starts an animated scroll toward line.
func (s *ScrollAnimator) ScrollTo(line int) {
	s.target = max(0, min(line, s.view.MaxFirstLine()))
	s.animated = true
}

// Cancel drops any pending target without moving the viewport.
func (s *ScrollAnimator) Cancel() {
	s.animated = false
}

// Step advances one animation frame: the viewport moves a fixed fraction
// of the remaining distance, snapping onto the target once the step
// rounds below one line. Returns false when no animation is pending.
func (s *ScrollAnimator) Step() bool {
	if !s.animated {
		return false
	}
	diff := float64(s.target - s.view.FirstLine())
	step := math.Round(diff * animFactor)
	if math.Abs(step) < 1 {
		s.view.SetFirstLine(s.target)
		s.animated = false
		return false
	}
	s.view.SetFirstLine(s.view.FirstLine() + int(step))
	return true
}

// Wheel handles a wheel event with delta in display units. Carried
// momentum from earlier events feeds into the effective delta, so rapid
// flicks accelerate. Small scrolls move the viewport directly; jumps
// beyond the threshold animate.
func (s *ScrollAnimator) Wheel(delta float64) {
	effective := delta + s.momentum*momentumBias
	lines := int(effective / s.view.lineHeight * wheelGain)
	if lines == 0 {
		return
	}
	s.momentum = effective * momentumCarry
	if lines > animateThreshold || lines < -animateThreshold {
		s.ScrollTo(s.view.FirstLine() + lines)
		return
	}
	s.Cancel()
	s.view.SetFirstLine(s.view.FirstLine() + lines)
}

// ResetMomentum clears accumulated wheel momentum.
func (s *ScrollAnimator) ResetMomentum() {
	s.momentum = 0
}

// PageUp animates one window height up.
func (s *ScrollAnimator) PageUp() {
	s.ScrollTo(s.view.FirstLine() - s.view.Rows())
}

// PageDown animates one window height down.
func (s *ScrollAnimator) PageDown() {
	s.ScrollTo(s.view.FirstLine() + s.view.Rows())
}

// FollowCursor animates the viewport so line stays inside the follow
// margins. Moving above the window scrolls the cursor near the top;
// moving into the bottom margin scrolls it near the bottom.
func (s *ScrollAnimator) FollowCursor(line int) {
	rows := s.view.Rows()
	first := s.view.FirstLine()
	switch {
	case line < first:
		s.ScrollTo(line - followMargin)
	case line >= first+rows-followMargin:
		s.ScrollTo(line - (rows - 2*followMargin))
	}
}
