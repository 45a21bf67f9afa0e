package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSiteValues(t *testing.T) {
	s := DefaultSite()

	assert.Equal(t, "https://lumen.netlify.com", s.URL)
	assert.Equal(t, "Blog by Henry Wu", s.Title)
	assert.Equal(t, "Coding and stuff.", s.Subtitle)
	assert.Equal(t, "© All rights reserved.", s.Copyright)
	assert.Equal(t, "", s.DisqusShortname)
	assert.Equal(t, 4, s.PostsPerPage)
	assert.Equal(t, "", s.GoogleAnalyticsID)
	require.Len(t, s.Menu, 2)
	assert.Equal(t, MenuItem{Label: "Articles", Path: "/"}, s.Menu[0])
	assert.Equal(t, MenuItem{Label: "About me", Path: "/pages/about"}, s.Menu[1])
	assert.Equal(t, "Henry Wu", s.Author.Name)
	assert.Equal(t, "/placeholder-image.png", s.Author.Photo)
	assert.Equal(t, "I never know what to put here", s.Author.Bio)
	assert.Equal(t, Contacts{
		Email:     "hywu925@gmail.com",
		Telegram:  "#",
		Twitter:   "#",
		GitHub:    "v1zix",
		RSS:       "#",
		VKontakte: "#",
	}, s.Author.Contacts)
	assert.NoError(t, s.Validate())
}

func TestRepositorySiteFileMatchesDefault(t *testing.T) {
	s, err := LoadSite(filepath.Join("..", "..", "site.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSite(), s)
}

func TestLoadSiteTwiceIsEqual(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	data, err := DefaultSite().YAML()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	a, err := LoadSite(path)
	require.NoError(t, err)
	b, err := LoadSite(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, DefaultSite(), a)
}

func TestLoadSiteMissingFileFallsBack(t *testing.T) {
	s, err := LoadSite(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSite(), s)
}

func TestDefaultSiteReturnsFreshCopies(t *testing.T) {
	a := DefaultSite()
	a.Menu[0].Label = "changed"
	assert.Equal(t, "Articles", DefaultSite().Menu[0].Label)
}

func TestCloneDoesNotShareMenu(t *testing.T) {
	a := DefaultSite()
	b := a.Clone()
	b.Menu[1].Path = "/elsewhere"
	assert.Equal(t, "/pages/about", a.Menu[1].Path)
}

func TestParseSiteRejectsUnknownKeys(t *testing.T) {
	_, err := ParseSite([]byte("url: https://example.com\ntitle: x\npostsPerPage: 1\nauthor: {name: a}\nlayout: wide\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout")
}

func TestParseSiteCollectsValidationErrors(t *testing.T) {
	doc := `
url: not a url
title: ""
postsPerPage: 0
menu:
  - label: ""
    path: about
author:
  name: ""
`
	_, err := ParseSite([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSite))

	var verr *ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 6)
	assert.Contains(t, err.Error(), "postsPerPage must be at least 1")
	assert.Contains(t, err.Error(), "menu[0].path must start with /")
}

func TestContactsProvided(t *testing.T) {
	got := DefaultSite().Author.Contacts.Provided()
	assert.Equal(t, []Contact{
		{Channel: "email", Value: "hywu925@gmail.com"},
		{Channel: "github", Value: "v1zix"},
	}, got)

	assert.Empty(t, Contacts{Email: "#", RSS: ""}.Provided())
}
