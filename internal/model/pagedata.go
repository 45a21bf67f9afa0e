package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// PageData is what every layout is executed with.
type PageData struct {
	Site       *SiteData
	Title      string
	Path       string
	Item       *ContentItem
	Posts      []*ContentItem
	Pagination *Pagination
	Tag        string
	Tags       []TagCount
}

// IsCurrent reports whether path is the page being rendered, for menu
// highlighting.
func (p PageData) IsCurrent(path string) bool {
	return strings.TrimSuffix(p.Path, "/") == strings.TrimSuffix(path, "/")
}

// Pagination locates one index page among all of them.
type Pagination struct {
	Page       int
	TotalPages int
	PrevPath   string
	NextPath   string
}

func (p *Pagination) HasPrev() bool { return p.PrevPath != "" }
func (p *Pagination) HasNext() bool { return p.NextPath != "" }

// IndexPage is one page of the post listing.
type IndexPage struct {
	Path       string
	Posts      []*ContentItem
	Pagination Pagination
}

// IndexPath is the path of the n-th (1-based) index page.
func IndexPath(n int) string {
	if n <= 1 {
		return "/"
	}
	return fmt.Sprintf("/page/%d/", n)
}

// Paginate splits posts into index pages of perPage posts. There is always
// at least one page, even with no posts.
func Paginate(posts []*ContentItem, perPage int) []IndexPage {
	if perPage < 1 {
		perPage = 1
	}
	total := (len(posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	pages := make([]IndexPage, 0, total)
	for n := 1; n <= total; n++ {
		lo := (n - 1) * perPage
		hi := lo + perPage
		if hi > len(posts) {
			hi = len(posts)
		}
		p := IndexPage{
			Path:       IndexPath(n),
			Posts:      posts[lo:hi],
			Pagination: Pagination{Page: n, TotalPages: total},
		}
		if n > 1 {
			p.Pagination.PrevPath = IndexPath(n - 1)
		}
		if n < total {
			p.Pagination.NextPath = IndexPath(n + 1)
		}
		pages = append(pages, p)
	}
	return pages
}

// TagCount is a tag with its listing path and post count.
type TagCount struct {
	Name  string
	Slug  string
	Path  string
	Count int
}

// TagPath is the listing path for tag.
func TagPath(tag string) string {
	return "/tag/" + Slugify(tag) + "/"
}

// SortedTags lists tags by slug.
func SortedTags(tags map[string]*Tag) []TagCount {
	slugs := make([]string, 0, len(tags))
	for slug := range tags {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	out := make([]TagCount, 0, len(tags))
	for _, slug := range slugs {
		tag := tags[slug]
		out = append(out, TagCount{Name: tag.Name, Slug: slug, Path: TagPath(slug), Count: len(tag.Posts)})
	}
	return out
}

// Slugify lowercases s and joins its letter and digit runs with '-'.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
