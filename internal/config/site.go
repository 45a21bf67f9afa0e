package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// NotProvided marks a contact channel the author has not filled in.
const NotProvided = "#"

// Site is the blog's metadata. It is loaded once per build and never
// written to afterwards; pass it by value.
type Site struct {
	URL               string     `yaml:"url"`
	Title             string     `yaml:"title"`
	Subtitle          string     `yaml:"subtitle"`
	Copyright         string     `yaml:"copyright"`
	DisqusShortname   string     `yaml:"disqusShortname"`
	PostsPerPage      int        `yaml:"postsPerPage"`
	GoogleAnalyticsID string     `yaml:"googleAnalyticsId"`
	Menu              []MenuItem `yaml:"menu"`
	Author            Author     `yaml:"author"`
}

// MenuItem is one navigation entry. Menu order is display order.
type MenuItem struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

type Author struct {
	Name     string   `yaml:"name"`
	Photo    string   `yaml:"photo"`
	Bio      string   `yaml:"bio"`
	Contacts Contacts `yaml:"contacts"`
}

// Contacts maps each supported channel to a handle or URL.
type Contacts struct {
	Email     string `yaml:"email"`
	Telegram  string `yaml:"telegram"`
	Twitter   string `yaml:"twitter"`
	GitHub    string `yaml:"github"`
	RSS       string `yaml:"rss"`
	VKontakte string `yaml:"vkontakte"`
}

// Contact is a single provided channel.
type Contact struct {
	Channel string
	Value   string
}

// Provided lists the channels that hold a real value, in schema order.
func (c Contacts) Provided() []Contact {
	all := []Contact{
		{"email", c.Email},
		{"telegram", c.Telegram},
		{"twitter", c.Twitter},
		{"github", c.GitHub},
		{"rss", c.RSS},
		{"vkontakte", c.VKontakte},
	}
	out := make([]Contact, 0, len(all))
	for _, ct := range all {
		if ct.Value == "" || ct.Value == NotProvided {
			continue
		}
		out = append(out, ct)
	}
	return out
}

// DefaultSite returns the blog's built-in configuration. Each call returns
// a fresh copy.
func DefaultSite() Site {
	return Site{
		URL:               "https://lumen.netlify.com",
		Title:             "Blog by Henry Wu",
		Subtitle:          "Coding and stuff.",
		Copyright:         "© All rights reserved.",
		DisqusShortname:   "",
		PostsPerPage:      4,
		GoogleAnalyticsID: "",
		Menu: []MenuItem{
			{Label: "Articles", Path: "/"},
			{Label: "About me", Path: "/pages/about"},
		},
		Author: Author{
			Name:  "Henry Wu",
			Photo: "/placeholder-image.png",
			Bio:   "I never know what to put here",
			Contacts: Contacts{
				Email:     "hywu925@gmail.com",
				Telegram:  NotProvided,
				Twitter:   NotProvided,
				GitHub:    "v1zix",
				RSS:       NotProvided,
				VKontakte: NotProvided,
			},
		},
	}
}

// Clone returns a deep copy.
func (s Site) Clone() Site {
	out := s
	if s.Menu != nil {
		out.Menu = append([]MenuItem(nil), s.Menu...)
	}
	return out
}

// ParseSite decodes and validates a site configuration document. Unknown
// keys are rejected.
func ParseSite(data []byte) (Site, error) {
	var s Site
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return Site{}, fmt.Errorf("error unmarshalling site config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Site{}, err
	}
	return s, nil
}

// LoadSite reads the site configuration at path. A missing file yields
// DefaultSite.
func LoadSite(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("site config not found, using built-in defaults")
		return DefaultSite(), nil
	}
	if err != nil {
		return Site{}, fmt.Errorf("error reading site config %s: %w", path, err)
	}
	s, err := ParseSite(data)
	if err != nil {
		return Site{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// YAML encodes the site configuration in its file format.
func (s Site) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
