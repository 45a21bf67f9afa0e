package build

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hwu1001/v1zix.github.io/internal/model"
)

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// collect reads every Markdown file under the content directory.
func (b *Builder) collect() ([]*model.ContentItem, error) {
	dir := b.cfg.ContentDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory '%s': %w", dir, ErrMissingContent)
	}

	var items []*model.ContentItem
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		raw, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}

		item, err := b.parseItem(p, filepath.ToSlash(rel), raw)
		if err != nil {
			return err
		}
		if item.Draft && !b.cfg.Drafts {
			log.Info().Str("path", p).Msg("skipping draft")
			return nil
		}
		log.Debug().Str("path", p).Str("type", item.Type).Str("permalink", item.Permalink).Msg("collected")
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during content collection walk: %w", err)
	}

	sortByDate(items)
	return items, nil
}

// parseItem turns one Markdown source into a content item. rel is the
// slash-separated path below the content directory.
func (b *Builder) parseItem(sourcePath, rel string, raw []byte) (*model.ContentItem, error) {
	fm := map[string]interface{}{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		log.Warn().Str("path", sourcePath).Err(err).Msg("could not parse frontmatter, treating as pure markdown")
		body = raw
		fm = map[string]interface{}{}
	}

	doc := b.md.Parser().Parse(text.NewReader(body))
	var html bytes.Buffer
	if err := b.md.Renderer().Render(&html, body, doc); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", sourcePath, err)
	}

	item := &model.ContentItem{
		Title:       stringField(fm, "title"),
		Type:        itemType(rel, fm),
		SourcePath:  sourcePath,
		Permalink:   permalink(rel, stringField(fm, "slug")),
		ContentHTML: template.HTML(html.String()),
		Frontmatter: fm,
		Description: stringField(fm, "description"),
		Layout:      stringField(fm, "layout"),
		Tags:        stringsField(fm, "tags"),
		Draft:       boolField(fm, "draft"),
		TOC:         headings(doc, body),
	}
	if item.Title == "" {
		base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		item.Title = cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
	}
	item.Date = dateField(sourcePath, fm["date"])
	return item, nil
}

// headings lists the h2 and h3 headings of doc with the IDs the parser gave
// them.
func headings(doc ast.Node, source []byte) []model.Heading {
	var out []model.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		if h.Level < 2 || h.Level > 3 {
			return ast.WalkSkipChildren, nil
		}
		id, found := h.AttributeString("id")
		if !found {
			return ast.WalkSkipChildren, nil
		}
		idBytes, _ := id.([]byte)
		if len(idBytes) == 0 {
			return ast.WalkSkipChildren, nil
		}
		out = append(out, model.Heading{Level: h.Level, ID: string(idBytes), Title: plainText(h, source)})
		return ast.WalkSkipChildren, nil
	})
	return out
}

func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// itemType prefers the frontmatter template or type, then the top-level
// directory.
func itemType(rel string, fm map[string]interface{}) string {
	for _, key := range []string{"template", "type"} {
		if t := stringField(fm, key); t != "" {
			return t
		}
	}
	dir, _, found := strings.Cut(rel, "/")
	if !found {
		return model.TypePage
	}
	switch dir {
	case "posts":
		return model.TypePost
	case "pages":
		return model.TypePage
	default:
		return dir
	}
}

func permalink(rel, slug string) string {
	p := slug
	if p == "" {
		p = strings.TrimSuffix(rel, path.Ext(rel))
	}
	p = path.Clean("/" + p)
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func sortByDate(items []*model.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.IsZero() {
			return false
		}
		if items[j].Date.IsZero() {
			return true
		}
		return items[i].Date.After(items[j].Date)
	})
}

func stringField(fm map[string]interface{}, key string) string {
	if s, ok := fm[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func boolField(fm map[string]interface{}, key string) bool {
	b, _ := fm[key].(bool)
	return b
}

func stringsField(fm map[string]interface{}, key string) []string {
	switch v := fm[key].(type) {
	case string:
		if v = strings.TrimSpace(v); v != "" {
			return []string{v}
		}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func dateField(sourcePath string, v interface{}) time.Time {
	switch d := v.(type) {
	case time.Time:
		return d
	case string:
		for _, format := range dateFormats {
			if t, err := time.Parse(format, d); err == nil {
				return t
			}
		}
		log.Warn().Str("path", sourcePath).Str("date", d).Msg("could not parse date, use YYYY-MM-DD or RFC3339")
	}
	return time.Time{}
}
