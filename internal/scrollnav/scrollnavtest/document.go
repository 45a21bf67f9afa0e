// Package scrollnavtest provides an in-memory scrollnav.Document that
// simulates scrolling, frame-driven animation and scroll-spy highlighting.
package scrollnavtest

import (
	"math"
	"strings"
	"time"

	"github.com/hwu1001/v1zix.github.io/internal/scrollnav"
)

// FrameInterval is the simulated time between animation frames.
const FrameInterval = 16 * time.Millisecond

// Section is a page element addressable by ID.
type Section struct {
	ID  string
	Top float64
}

// Link is an anchor inside a container. Active may be set before the
// handler starts to model an entry the page was served with highlighted.
type Link struct {
	Container string
	Href      string
	Active    bool
}

// Animation records one AnimateScrollTo call.
type Animation struct {
	From     float64
	To       float64
	Duration time.Duration
	At       time.Time
}

// Click is a delivered click event.
type Click struct {
	link      *Link
	prevented bool
}

func (c *Click) PreventDefault() { c.prevented = true }

func (c *Click) Hash() string {
	if strings.HasPrefix(c.link.Href, "#") {
		return c.link.Href
	}
	return ""
}

// Prevented reports whether the handler suppressed default navigation.
func (c *Click) Prevented() bool { return c.prevented }

// Document is a fake page. The zero value is not usable; call New.
type Document struct {
	Now            time.Time
	ScrollTop      float64
	ScrollHeight   float64
	ViewportHeight float64

	sections   map[string]*Section
	links      []*Link
	handlers   map[string][]func(scrollnav.ClickEvent)
	spy        *scrollnav.Spy
	spyFor     string
	anim       scrollnav.Animator
	Animations []Animation
}

var _ scrollnav.Document = (*Document)(nil)

// New returns an empty page scrollHeight tall seen through a viewport.
func New(scrollHeight, viewportHeight float64) *Document {
	return &Document{
		Now:            time.Unix(0, 0),
		ScrollHeight:   scrollHeight,
		ViewportHeight: viewportHeight,
		sections:       map[string]*Section{},
		handlers:       map[string][]func(scrollnav.ClickEvent){},
	}
}

func (d *Document) AddSection(id string, top float64) *Section {
	s := &Section{ID: id, Top: top}
	d.sections[id] = s
	return s
}

func (d *Document) AddLink(container, href string) *Link {
	l := &Link{Container: container, Href: href}
	d.links = append(d.links, l)
	return l
}

// Click dispatches a click on l to the handlers of its container.
func (d *Document) Click(l *Link) *Click {
	c := &Click{link: l}
	for _, h := range d.handlers[l.Container] {
		h(c)
	}
	return c
}

// ScrollTo moves the viewport as a user would. Like a browser, it stops at
// the top and bottom of the page.
func (d *Document) ScrollTo(top float64) {
	d.ScrollTop = math.Max(0, math.Min(top, d.ScrollHeight-d.ViewportHeight))
	d.process()
}

// Advance moves the clock forward frame by frame, running any animation.
func (d *Document) Advance(dur time.Duration) {
	end := d.Now.Add(dur)
	for d.Now.Before(end) {
		step := FrameInterval
		if rest := end.Sub(d.Now); rest < step {
			step = rest
		}
		d.Now = d.Now.Add(step)
		if d.anim.Running() {
			v, _ := d.anim.Tick(d.Now)
			d.ScrollTo(v)
		}
	}
}

// Animating reports whether a scroll animation is in flight.
func (d *Document) Animating() bool {
	return d.anim.Running()
}

// ActiveLinks lists the links of container currently marked active.
func (d *Document) ActiveLinks(container string) []*Link {
	var out []*Link
	for _, l := range d.links {
		if l.Container == container && l.Active {
			out = append(out, l)
		}
	}
	return out
}

func (d *Document) process() {
	if d.spy == nil {
		return
	}
	active, changed := d.spy.Process(d.ScrollTop, d.ScrollHeight, d.ViewportHeight)
	if !changed {
		return
	}
	for _, l := range d.links {
		if l.Container == d.spyFor {
			l.Active = l.Href == active
		}
	}
}

func (d *Document) ObserveScroll(container string, offset int) {
	d.spy = scrollnav.NewSpy(offset)
	d.spyFor = container
	var targets []scrollnav.Target
	seen := map[string]bool{}
	for _, l := range d.links {
		if l.Container != container {
			continue
		}
		l.Active = false
		if !strings.HasPrefix(l.Href, "#") || seen[l.Href] {
			continue
		}
		s, ok := d.sections[strings.TrimPrefix(l.Href, "#")]
		if !ok {
			continue
		}
		seen[l.Href] = true
		targets = append(targets, scrollnav.Target{ID: l.Href, Top: s.Top})
	}
	d.spy.SetTargets(targets)
	d.process()
}

func (d *Document) OnClick(container string, handler func(scrollnav.ClickEvent)) {
	d.handlers[container] = append(d.handlers[container], handler)
}

func (d *Document) FindByID(id string) (scrollnav.Element, bool) {
	s, ok := d.sections[id]
	if !ok {
		return nil, false
	}
	return s, true
}

func (d *Document) OffsetTop(el scrollnav.Element) float64 {
	s, ok := el.(*Section)
	if !ok {
		return 0
	}
	return s.Top
}

func (d *Document) AnimateScrollTo(value float64, duration time.Duration, easing scrollnav.Easing) {
	d.Animations = append(d.Animations, Animation{
		From:     d.ScrollTop,
		To:       value,
		Duration: duration,
		At:       d.Now,
	})
	d.anim.Start(d.ScrollTop, value, duration, easing, d.Now)
}
