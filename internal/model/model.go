package model

import (
	"html/template"
	"time"

	"github.com/hwu1001/v1zix.github.io/internal/config"
)

// Content types.
const (
	TypePost = "post"
	TypePage = "page"
)

// ContentItem represents a single piece of content (a post or a page).
type ContentItem struct {
	Title       string
	Date        time.Time
	Type        string
	SourcePath  string
	Permalink   string
	ContentHTML template.HTML
	Frontmatter map[string]interface{}
	Description string
	Layout      string
	Tags        []string
	Draft       bool
	// TOC lists the item's section headings in document order.
	TOC []Heading
}

// Heading is a section of an item that in-page navigation can link to.
type Heading struct {
	Level int
	ID    string
	Title string
}

// TagLinks pairs each tag with its listing path. Tags without a usable slug
// have no listing and are left out.
func (c *ContentItem) TagLinks() []TagCount {
	out := make([]TagCount, 0, len(c.Tags))
	for _, t := range c.Tags {
		slug := Slugify(t)
		if slug == "" {
			continue
		}
		out = append(out, TagCount{Name: t, Slug: slug, Path: TagPath(slug)})
	}
	return out
}

// Tag groups the posts listed under one tag slug. Name is the spelling seen
// first.
type Tag struct {
	Name  string
	Posts []*ContentItem
}

// SiteData holds all site-wide data, including configuration and content.
type SiteData struct {
	Config        config.Site
	BaseURL       string
	ScrollNav     bool
	ContentItems  []*ContentItem
	Posts         []*ContentItem
	Pages         []*ContentItem
	ContentByType map[string][]*ContentItem
	// Tags is keyed by slug.
	Tags map[string]*Tag
}

// NewSiteData starts an empty site for cfg. baseURL overrides cfg.URL when
// set.
func NewSiteData(cfg config.Site, baseURL string) *SiteData {
	if baseURL == "" {
		baseURL = cfg.URL
	}
	return &SiteData{
		Config:        cfg,
		BaseURL:       baseURL,
		ContentByType: map[string][]*ContentItem{},
		Tags:          map[string]*Tag{},
	}
}

// AddTag files item under name's slug. It reports the tag already holding
// that slug under a different spelling, if any, and returns false when name
// has no slug at all.
func (s *SiteData) AddTag(name string, item *ContentItem) (existing string, ok bool) {
	slug := Slugify(name)
	if slug == "" {
		return "", false
	}
	tag, found := s.Tags[slug]
	if !found {
		tag = &Tag{Name: name}
		s.Tags[slug] = tag
	}
	tag.Posts = append(tag.Posts, item)
	if tag.Name != name {
		return tag.Name, true
	}
	return "", true
}

// Menu returns the navigation entries in display order.
func (s *SiteData) Menu() []config.MenuItem {
	return append([]config.MenuItem(nil), s.Config.Menu...)
}

// Contacts returns a link for every contact channel the author filled in.
func (s *SiteData) Contacts() []ContactLink {
	var out []ContactLink
	for _, c := range s.Config.Author.Contacts.Provided() {
		out = append(out, ContactLink{
			Channel: c.Channel,
			Label:   c.Value,
			Href:    ContactHref(c.Channel, c.Value),
		})
	}
	return out
}
