package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwu1001/v1zix.github.io/internal/config"
)

func posts(n int) []*ContentItem {
	out := make([]*ContentItem, n)
	for i := range out {
		out[i] = &ContentItem{Title: string(rune('a' + i)), Type: TypePost}
	}
	return out
}

func TestPaginate(t *testing.T) {
	pages := Paginate(posts(9), 4)
	require.Len(t, pages, 3)

	assert.Equal(t, "/", pages[0].Path)
	assert.Len(t, pages[0].Posts, 4)
	assert.False(t, pages[0].Pagination.HasPrev())
	assert.Equal(t, "/page/2/", pages[0].Pagination.NextPath)

	assert.Equal(t, "/page/2/", pages[1].Path)
	assert.Equal(t, "/", pages[1].Pagination.PrevPath)
	assert.Equal(t, "/page/3/", pages[1].Pagination.NextPath)

	assert.Equal(t, "/page/3/", pages[2].Path)
	assert.Len(t, pages[2].Posts, 1)
	assert.Equal(t, "i", pages[2].Posts[0].Title)
	assert.False(t, pages[2].Pagination.HasNext())
	assert.Equal(t, 3, pages[2].Pagination.TotalPages)
}

func TestPaginateEmpty(t *testing.T) {
	pages := Paginate(nil, 4)
	require.Len(t, pages, 1)
	assert.Equal(t, "/", pages[0].Path)
	assert.Empty(t, pages[0].Posts)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "design-inspiration", Slugify("Design Inspiration"))
	assert.Equal(t, "c-tips", Slugify("C++ tips"))
	assert.Equal(t, "go", Slugify("  Go  "))
	assert.Equal(t, "/tag/web-dev/", TagPath("Web dev"))
}

func TestSortedTags(t *testing.T) {
	tags := map[string]*Tag{
		"zig": {Name: "Zig", Posts: posts(1)},
		"go":  {Name: "go", Posts: posts(3)},
	}
	assert.Equal(t, []TagCount{
		{Name: "go", Slug: "go", Path: "/tag/go/", Count: 3},
		{Name: "Zig", Slug: "zig", Path: "/tag/zig/", Count: 1},
	}, SortedTags(tags))
}

func TestAddTagMergesBySlug(t *testing.T) {
	site := NewSiteData(config.DefaultSite(), "")
	a, b, c := posts(3)[0], posts(3)[1], posts(3)[2]

	existing, ok := site.AddTag("Go", a)
	assert.True(t, ok)
	assert.Empty(t, existing)

	existing, ok = site.AddTag("go", b)
	assert.True(t, ok)
	assert.Equal(t, "Go", existing)

	_, ok = site.AddTag("++", c)
	assert.False(t, ok)

	require.Len(t, site.Tags, 1)
	assert.Equal(t, "Go", site.Tags["go"].Name)
	assert.Equal(t, []*ContentItem{a, b}, site.Tags["go"].Posts)
}

func TestTagLinksSkipEmptySlugs(t *testing.T) {
	item := &ContentItem{Tags: []string{"C++", "++", "Web dev"}}
	assert.Equal(t, []TagCount{
		{Name: "C++", Slug: "c", Path: "/tag/c/"},
		{Name: "Web dev", Slug: "web-dev", Path: "/tag/web-dev/"},
	}, item.TagLinks())
}

func TestContactLinks(t *testing.T) {
	site := NewSiteData(config.DefaultSite(), "")
	assert.Equal(t, "https://lumen.netlify.com", site.BaseURL)
	assert.Equal(t, []ContactLink{
		{Channel: "email", Label: "hywu925@gmail.com", Href: "mailto:hywu925@gmail.com"},
		{Channel: "github", Label: "v1zix", Href: "https://github.com/v1zix"},
	}, site.Contacts())

	assert.Equal(t, "https://t.me/henry", ContactHref("telegram", "henry"))
	assert.Equal(t, "https://example.com/rss.xml", ContactHref("rss", "https://example.com/rss.xml"))
	assert.Equal(t, "/rss.xml", ContactHref("rss", "/rss.xml"))
}

func TestMenuIsACopy(t *testing.T) {
	site := NewSiteData(config.DefaultSite(), "https://example.com")
	assert.Equal(t, "https://example.com", site.BaseURL)

	menu := site.Menu()
	menu[0].Label = "changed"
	assert.Equal(t, "Articles", site.Config.Menu[0].Label)
}

func TestIsCurrent(t *testing.T) {
	p := PageData{Path: "/pages/about/"}
	assert.True(t, p.IsCurrent("/pages/about"))
	assert.False(t, p.IsCurrent("/"))
}
