package scrollnav

import "time"

// Animator interpolates one value over time. It has no goroutines; the
// owner calls Tick from its frame callback. Starting a new animation
// discards the one in flight.
type Animator struct {
	from, to float64
	start    time.Time
	duration time.Duration
	easing   Easing
	running  bool
}

// Start begins moving from from to to, replacing any running animation.
func (a *Animator) Start(from, to float64, duration time.Duration, easing Easing, now time.Time) {
	if easing == nil {
		easing = Linear
	}
	a.from, a.to = from, to
	a.start = now
	a.duration = duration
	a.easing = easing
	a.running = true
}

// Tick returns the value for time now and whether the animation is still
// running afterwards. Once the duration has elapsed the value is exactly
// the target.
func (a *Animator) Tick(now time.Time) (float64, bool) {
	if !a.running {
		return a.to, false
	}
	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		a.running = false
		return a.to, false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	p := float64(elapsed) / float64(a.duration)
	return a.from + (a.to-a.from)*a.easing(p), true
}

// Stop discards the running animation, leaving the value where the last
// Tick put it.
func (a *Animator) Stop() {
	a.running = false
}

func (a *Animator) Running() bool {
	return a.running
}

// Target is the value the current or most recent animation ends at.
func (a *Animator) Target() float64 {
	return a.to
}
