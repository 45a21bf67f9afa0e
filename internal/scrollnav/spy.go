package scrollnav

import "sort"

// Target is a navigation entry and the top of the section it points at.
type Target struct {
	ID  string
	Top float64
}

// Spy decides which navigation entry is active for a scroll position. At
// most one entry is active at a time.
type Spy struct {
	offset  float64
	targets []Target
	active  string
}

func NewSpy(offset int) *Spy {
	return &Spy{offset: float64(offset)}
}

// SetTargets replaces the tracked sections. The active entry is kept only
// if it is still tracked.
func (s *Spy) SetTargets(targets []Target) {
	s.targets = append([]Target(nil), targets...)
	sort.SliceStable(s.targets, func(i, j int) bool {
		return s.targets[i].Top < s.targets[j].Top
	})
	for _, t := range s.targets {
		if t.ID == s.active {
			return
		}
	}
	s.active = ""
}

// Active returns the active entry ID, or "" when none is active.
func (s *Spy) Active() string {
	return s.active
}

// Process updates the active entry for the given scroll geometry and
// reports whether it changed.
func (s *Spy) Process(scrollTop, scrollHeight, viewportHeight float64) (string, bool) {
	if len(s.targets) == 0 {
		return s.activate("")
	}

	pos := scrollTop + s.offset
	maxScroll := s.offset + scrollHeight - viewportHeight

	// Bottom of the page: the last section may be too short to ever reach
	// the header line.
	if pos >= maxScroll {
		return s.activate(s.targets[len(s.targets)-1].ID)
	}

	first := s.targets[0]
	if pos < first.Top && first.Top > 0 {
		return s.activate("")
	}

	for i := len(s.targets) - 1; i >= 0; i-- {
		t := s.targets[i]
		if pos < t.Top {
			continue
		}
		if i+1 < len(s.targets) && pos >= s.targets[i+1].Top {
			continue
		}
		return s.activate(t.ID)
	}
	return s.active, false
}

func (s *Spy) activate(id string) (string, bool) {
	if s.active == id {
		return id, false
	}
	s.active = id
	return id, true
}
