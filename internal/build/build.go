// Package build turns Markdown content, layouts and static assets into the
// blog's static HTML.
package build

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/hwu1001/v1zix.github.io/internal/config"
	"github.com/hwu1001/v1zix.github.io/internal/model"
)

var (
	// ErrMissingContent is returned when the content directory does not exist.
	ErrMissingContent = errors.New("content directory not found")
	// ErrMissingLayout is returned when a layout needed for rendering is absent.
	ErrMissingLayout = errors.New("layout not found")
	// ErrPathConflict is returned when two pages would be written to the
	// same path.
	ErrPathConflict = errors.New("output path already taken")
)

// Builder renders one site. A Builder may be reused for rebuilds.
type Builder struct {
	cfg  config.Config
	site config.Site
	md   goldmark.Markdown
}

func New(cfg config.Config, site config.Site) *Builder {
	return &Builder{
		cfg:  cfg,
		site: site,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
	}
}

// Run builds the site once with a fresh Builder.
func Run(cfg config.Config, site config.Site) (*model.SiteData, error) {
	return New(cfg, site).Build()
}

// Build cleans the output directory and renders everything into it.
func (b *Builder) Build() (*model.SiteData, error) {
	out := b.cfg.OutputDir
	log.Info().Str("output", out).Str("content", b.cfg.ContentDir).Msg("starting build")

	site := model.NewSiteData(b.site.Clone(), b.cfg.BaseURL)
	site.ScrollNav = b.cfg.ScrollNav.Enabled()

	items, err := b.collect()
	if err != nil {
		return nil, err
	}
	lay, err := loadLayouts(b.cfg.LayoutsDir)
	if err != nil {
		return nil, err
	}
	index(site, items)
	if err := checkPaths(site); err != nil {
		return nil, err
	}
	log.Info().Int("posts", len(site.Posts)).Int("pages", len(site.Pages)).Int("tags", len(site.Tags)).Msg("content collected")

	if err := prepareOutput(out, b.cfg.ContentDir); err != nil {
		return nil, err
	}
	if err := b.writeAssets(out); err != nil {
		return nil, err
	}
	if err := renderItems(out, site, lay); err != nil {
		return nil, err
	}
	if err := renderIndex(out, site, lay); err != nil {
		return nil, err
	}
	if err := renderTags(out, site, lay); err != nil {
		return nil, err
	}

	log.Info().Str("output", out).Msg("build completed")
	return site, nil
}

func index(site *model.SiteData, items []*model.ContentItem) {
	site.ContentItems = items
	for _, item := range items {
		site.ContentByType[item.Type] = append(site.ContentByType[item.Type], item)
		switch item.Type {
		case model.TypePost:
			site.Posts = append(site.Posts, item)
			for _, tag := range item.Tags {
				existing, ok := site.AddTag(tag, item)
				if !ok {
					log.Warn().Str("tag", tag).Str("item", item.Title).Msg("tag has no usable characters, not listed")
					continue
				}
				if existing != "" {
					log.Warn().Str("tag", tag).Str("listed_as", existing).Str("item", item.Title).Msg("tag shares a page with another spelling")
				}
			}
		case model.TypePage:
			site.Pages = append(site.Pages, item)
		}
	}
}

// checkPaths fails when a content item would overwrite a generated page or
// another item.
func checkPaths(site *model.SiteData) error {
	owners := map[string]string{}
	for _, page := range model.Paginate(site.Posts, site.Config.PostsPerPage) {
		owners[page.Path] = "post index"
	}
	if len(site.Tags) > 0 {
		owners["/tags/"] = "tag index"
		for _, tag := range model.SortedTags(site.Tags) {
			owners[tag.Path] = fmt.Sprintf("tag %q", tag.Name)
		}
	}
	for _, item := range site.ContentItems {
		if owner, taken := owners[item.Permalink]; taken {
			return fmt.Errorf("'%s' wants %s, used by %s: %w", item.SourcePath, item.Permalink, owner, ErrPathConflict)
		}
		owners[item.Permalink] = fmt.Sprintf("'%s'", item.SourcePath)
	}
	return nil
}

func prepareOutput(out, contentDir string) error {
	clean := filepath.Clean(out)
	if clean == "." || clean == string(filepath.Separator) || clean == filepath.Clean(contentDir) {
		return fmt.Errorf("refusing to clean output directory '%s'", out)
	}
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", out, err)
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", out, err)
	}
	return nil
}

// writeAssets writes the theme stylesheet and scroll navigation assets,
// then copies the static directory over them.
func (b *Builder) writeAssets(out string) error {
	css, err := themeFS.ReadFile(themeStylePath)
	if err != nil {
		return fmt.Errorf("failed to read theme stylesheet: %w", err)
	}
	if err := writeFile(filepath.Join(out, "css", "lumen.css"), func(w io.Writer) error {
		_, err := w.Write(css)
		return err
	}); err != nil {
		return err
	}

	if sn := b.cfg.ScrollNav; sn.Enabled() {
		if err := copyFile(sn.WASM, filepath.Join(out, "js", "scrollnav.wasm")); err != nil {
			return fmt.Errorf("failed to copy scroll navigation module: %w", err)
		}
		if err := copyFile(sn.WASMExec, filepath.Join(out, "js", "wasm_exec.js")); err != nil {
			return fmt.Errorf("failed to copy wasm loader: %w", err)
		}
	}

	static := b.cfg.StaticDir
	if _, err := os.Stat(static); os.IsNotExist(err) {
		log.Debug().Str("static", static).Msg("static directory not found, skipping copy")
		return nil
	}
	if err := copyDirContents(static, out); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	return nil
}

func renderPage(out, pagePath, layout string, layouts *layoutSet, data model.PageData) error {
	data.Path = pagePath
	target := filepath.Join(out, filepath.FromSlash(pagePath), "index.html")
	err := writeFile(target, func(w io.Writer) error {
		return layouts.execute(w, layout, data)
	})
	if err != nil {
		return fmt.Errorf("failed to render '%s' with layout '%s': %w", pagePath, layout, err)
	}
	log.Debug().Str("path", target).Str("layout", layout).Msg("generated")
	return nil
}

// layoutFor picks the frontmatter layout, then <type>.html, then page.html.
func layoutFor(item *model.ContentItem, layouts *layoutSet) string {
	if item.Layout != "" {
		if layouts.has(item.Layout) {
			return item.Layout
		}
		log.Warn().Str("layout", item.Layout).Str("item", item.Title).Msg("frontmatter layout not found")
	}
	if name := item.Type + ".html"; layouts.has(name) {
		return name
	}
	return "page.html"
}

func renderItems(out string, site *model.SiteData, layouts *layoutSet) error {
	for _, item := range site.ContentItems {
		data := model.PageData{Site: site, Title: item.Title, Item: item}
		if err := renderPage(out, item.Permalink, layoutFor(item, layouts), layouts, data); err != nil {
			return err
		}
	}
	return nil
}

func renderIndex(out string, site *model.SiteData, layouts *layoutSet) error {
	for _, page := range model.Paginate(site.Posts, site.Config.PostsPerPage) {
		pagination := page.Pagination
		data := model.PageData{Site: site, Posts: page.Posts, Pagination: &pagination}
		if pagination.Page > 1 {
			data.Title = fmt.Sprintf("Page %d", pagination.Page)
		}
		if err := renderPage(out, page.Path, "index.html", layouts, data); err != nil {
			return err
		}
	}
	return nil
}

func renderTags(out string, site *model.SiteData, layouts *layoutSet) error {
	if len(site.Tags) == 0 {
		return nil
	}
	tags := model.SortedTags(site.Tags)
	if err := renderPage(out, "/tags/", "tags.html", layouts, model.PageData{Site: site, Title: "Tags", Tags: tags}); err != nil {
		return err
	}
	for _, tag := range tags {
		data := model.PageData{
			Site:  site,
			Title: fmt.Sprintf("All posts tagged %q", tag.Name),
			Tag:   tag.Name,
			Posts: site.Tags[tag.Slug].Posts,
		}
		if err := renderPage(out, tag.Path, "tag.html", layouts, data); err != nil {
			return err
		}
	}
	return nil
}
