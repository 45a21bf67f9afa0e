// Package scrollnav implements the page navigation behavior of the blog
// theme: the navbar entry for the section in view is highlighted, and
// clicking an in-page anchor in the navbar scrolls to it smoothly instead of
// jumping.
//
// The behavior is written against Document, a small capability interface
// over the page. The browser binding lives in dom_js.go; tests use
// scrollnavtest.Document.
package scrollnav

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// NavContainer identifies the navigation element.
	NavContainer = "#navbar"
	// SpyOffset is the fixed header height the scroll-spy compensates for.
	SpyOffset = 60
	// ScrollOffset is subtracted from a target's top when scrolling to it.
	ScrollOffset = 55
	// ScrollDuration is how long an anchor scroll animation runs.
	ScrollDuration = 550 * time.Millisecond
)

// Element is an opaque handle to a node owned by a Document.
type Element any

// ClickEvent is a click delivered to a link inside a container.
type ClickEvent interface {
	// PreventDefault suppresses the browser's own navigation.
	PreventDefault()
	// Hash is the fragment of the link's href including the leading '#',
	// or "" when the link has none.
	Hash() string
}

// Document is what the handler needs from the page.
type Document interface {
	// ObserveScroll starts scroll-spy on the links of container, treating
	// the top offset pixels of the viewport as covered by a fixed header.
	ObserveScroll(container string, offset int)
	// OnClick delivers clicks on links inside container to handler.
	OnClick(container string, handler func(ClickEvent))
	FindByID(id string) (Element, bool)
	// OffsetTop is the element's distance from the top of the document.
	OffsetTop(el Element) float64
	// AnimateScrollTo animates the document scroll position to value. A
	// call cancels any animation still running from an earlier call.
	AnimateScrollTo(value float64, duration time.Duration, easing Easing)
}

// Handler wires scroll-spy and smooth anchor scrolling onto a Document.
type Handler struct {
	Container      string
	SpyOffset      int
	ScrollOffset   float64
	ScrollDuration time.Duration
	Easing         Easing

	once sync.Once
}

// NewHandler returns a Handler with the theme's settings.
func NewHandler() *Handler {
	return &Handler{
		Container:      NavContainer,
		SpyOffset:      SpyOffset,
		ScrollOffset:   ScrollOffset,
		ScrollDuration: ScrollDuration,
		Easing:         Swing,
	}
}

// Init attaches both behaviors to doc. Call it once the document has been
// fully constructed; later calls do nothing.
func (h *Handler) Init(doc Document) {
	h.once.Do(func() {
		doc.ObserveScroll(h.Container, h.SpyOffset)
		doc.OnClick(h.Container, func(ev ClickEvent) {
			h.click(doc, ev)
		})
	})
}

func (h *Handler) click(doc Document, ev ClickEvent) {
	hash := ev.Hash()
	if hash == "" {
		return
	}
	// Default navigation stays suppressed even when the fragment resolves
	// to nothing.
	ev.PreventDefault()

	id := fragmentID(hash)
	if id == "" {
		return
	}
	el, ok := doc.FindByID(id)
	if !ok {
		return
	}
	doc.AnimateScrollTo(doc.OffsetTop(el)-h.ScrollOffset, h.ScrollDuration, h.Easing)
}

func fragmentID(hash string) string {
	id := strings.TrimPrefix(hash, "#")
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}
