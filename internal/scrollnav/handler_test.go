package scrollnav_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwu1001/v1zix.github.io/internal/scrollnav"
	"github.com/hwu1001/v1zix.github.io/internal/scrollnav/scrollnavtest"
)

func newPage(t *testing.T) (*scrollnavtest.Document, map[string]*scrollnavtest.Link) {
	t.Helper()
	doc := scrollnavtest.New(4000, 800)
	doc.AddSection("top", 0)
	doc.AddSection("about", 1000)
	doc.AddSection("projects", 2000)
	links := map[string]*scrollnavtest.Link{
		"top":      doc.AddLink(scrollnav.NavContainer, "#top"),
		"about":    doc.AddLink(scrollnav.NavContainer, "#about"),
		"projects": doc.AddLink(scrollnav.NavContainer, "#projects"),
		"missing":  doc.AddLink(scrollnav.NavContainer, "#doesnotexist"),
		"page":     doc.AddLink(scrollnav.NavContainer, "/pages/about"),
		"footer":   doc.AddLink("#footer", "#about"),
	}
	scrollnav.NewHandler().Init(doc)
	return doc, links
}

func TestAnchorClickAnimatesToSection(t *testing.T) {
	doc, links := newPage(t)

	click := doc.Click(links["about"])

	assert.True(t, click.Prevented())
	require.Len(t, doc.Animations, 1)
	assert.Equal(t, 945.0, doc.Animations[0].To)
	assert.Equal(t, 0.0, doc.Animations[0].From)
	assert.Equal(t, 550*time.Millisecond, doc.Animations[0].Duration)

	doc.Advance(100 * time.Millisecond)
	assert.True(t, doc.Animating())
	assert.Greater(t, doc.ScrollTop, 0.0)
	assert.Less(t, doc.ScrollTop, 945.0)

	doc.Advance(500 * time.Millisecond)
	assert.False(t, doc.Animating())
	assert.Equal(t, 945.0, doc.ScrollTop)
}

func TestSecondClickCancelsFirst(t *testing.T) {
	doc, links := newPage(t)

	doc.Click(links["about"])
	doc.Advance(200 * time.Millisecond)
	mid := doc.ScrollTop
	require.Greater(t, mid, 0.0)
	require.Less(t, mid, 945.0)

	doc.Click(links["projects"])
	require.Len(t, doc.Animations, 2)
	assert.Equal(t, mid, doc.Animations[1].From)
	assert.Equal(t, 1945.0, doc.Animations[1].To)

	// Past the point where the first animation would have finished.
	doc.Advance(400 * time.Millisecond)
	assert.NotEqual(t, 945.0, doc.ScrollTop)

	doc.Advance(time.Second)
	assert.False(t, doc.Animating())
	assert.Equal(t, 1945.0, doc.ScrollTop)
}

func TestMissingTargetIsSilentNoop(t *testing.T) {
	doc, links := newPage(t)

	var click *scrollnavtest.Click
	require.NotPanics(t, func() {
		click = doc.Click(links["missing"])
	})

	assert.True(t, click.Prevented())
	assert.Empty(t, doc.Animations)
	doc.Advance(time.Second)
	assert.Equal(t, 0.0, doc.ScrollTop)
}

func TestLinkWithoutFragmentNavigatesNormally(t *testing.T) {
	doc, links := newPage(t)

	click := doc.Click(links["page"])

	assert.False(t, click.Prevented())
	assert.Empty(t, doc.Animations)
}

func TestClicksOutsideContainerAreIgnored(t *testing.T) {
	doc, links := newPage(t)

	click := doc.Click(links["footer"])

	assert.False(t, click.Prevented())
	assert.Empty(t, doc.Animations)
}

func TestInitTwiceAttachesOnce(t *testing.T) {
	doc := scrollnavtest.New(4000, 800)
	doc.AddSection("about", 1000)
	link := doc.AddLink(scrollnav.NavContainer, "#about")

	h := scrollnav.NewHandler()
	h.Init(doc)
	h.Init(doc)

	doc.Click(link)
	assert.Len(t, doc.Animations, 1)
}

func TestScrollSpyKeepsOneEntryActive(t *testing.T) {
	doc, links := newPage(t)

	for top := 0.0; top <= doc.ScrollHeight-doc.ViewportHeight; top += 25 {
		doc.ScrollTo(top)
		assert.Len(t, doc.ActiveLinks(scrollnav.NavContainer), 1, "scrollTop %v", top)
	}

	doc.ScrollTo(0)
	assert.True(t, links["top"].Active)
	doc.ScrollTo(950)
	assert.True(t, links["about"].Active)
	assert.False(t, links["top"].Active)
	doc.ScrollTo(1939)
	assert.True(t, links["about"].Active)
	doc.ScrollTo(1940)
	assert.True(t, links["projects"].Active)
	assert.False(t, links["footer"].Active)
}

func TestScrollSpyClearsAboveFirstSection(t *testing.T) {
	doc := scrollnavtest.New(3000, 800)
	doc.AddSection("about", 500)
	about := doc.AddLink(scrollnav.NavContainer, "#about")
	scrollnav.NewHandler().Init(doc)

	assert.Empty(t, doc.ActiveLinks(scrollnav.NavContainer))
	doc.ScrollTo(600)
	assert.True(t, about.Active)
	doc.ScrollTo(0)
	assert.Empty(t, doc.ActiveLinks(scrollnav.NavContainer))
}

func TestAnimatedScrollUpdatesActiveEntry(t *testing.T) {
	doc, links := newPage(t)

	doc.Click(links["projects"])
	doc.Advance(time.Second)

	assert.True(t, links["projects"].Active)
	assert.Len(t, doc.ActiveLinks(scrollnav.NavContainer), 1)
}

func TestScrollSpyTakesOverServerHighlight(t *testing.T) {
	doc := scrollnavtest.New(3000, 800)
	doc.AddSection("intro", 0)
	doc.AddSection("details", 1000)
	current := doc.AddLink(scrollnav.NavContainer, "/pages/about")
	current.Active = true
	intro := doc.AddLink(scrollnav.NavContainer, "#intro")
	details := doc.AddLink(scrollnav.NavContainer, "#details")
	scrollnav.NewHandler().Init(doc)

	assert.False(t, current.Active)
	assert.Equal(t, []*scrollnavtest.Link{intro}, doc.ActiveLinks(scrollnav.NavContainer))

	doc.ScrollTo(1000)
	assert.Equal(t, []*scrollnavtest.Link{details}, doc.ActiveLinks(scrollnav.NavContainer))
}

func TestScrollStaysWithinPage(t *testing.T) {
	doc, links := newPage(t)

	doc.Click(links["projects"])
	doc.Advance(time.Second)
	doc.Click(links["top"])
	require.Len(t, doc.Animations, 2)
	assert.Equal(t, -55.0, doc.Animations[1].To)

	for i := 0; i < 40; i++ {
		doc.Advance(scrollnavtest.FrameInterval)
		assert.GreaterOrEqual(t, doc.ScrollTop, 0.0)
	}
	assert.False(t, doc.Animating())
	assert.Equal(t, 0.0, doc.ScrollTop)
	assert.True(t, links["top"].Active)

	doc.ScrollTo(10000)
	assert.Equal(t, 3200.0, doc.ScrollTop)
	assert.True(t, links["projects"].Active)
}
