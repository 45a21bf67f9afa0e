package build

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hwu1001/v1zix.github.io/internal/model"
)

//go:embed theme
var themeFS embed.FS

const (
	baseLayout     = "base.html"
	partialsDir    = "partials"
	themeStylePath = "theme/lumen.css"
)

var funcs = template.FuncMap{
	"absURL": absURL,
}

func absURL(base, p string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(p, "/")
}

// layoutSet holds one template set per page layout, each built on the shared
// base layout and partials.
type layoutSet struct {
	byName map[string]*template.Template
}

// loadLayouts reads the built-in theme, then lets files in dir replace or
// extend it. Files under dir/partials are shared by every layout.
func loadLayouts(dir string) (*layoutSet, error) {
	sources := map[string]string{}
	var partials []string

	entries, err := fs.ReadDir(themeFS, "theme")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in theme: %w", err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		data, err := themeFS.ReadFile(path.Join("theme", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in layout %s: %w", e.Name(), err)
		}
		sources[e.Name()] = string(data)
	}

	if _, statErr := os.Stat(dir); statErr == nil {
		walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
				return nil
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("failed to read layout %s: %w", p, err)
			}
			rel, _ := filepath.Rel(dir, p)
			if strings.HasPrefix(filepath.ToSlash(rel), partialsDir+"/") {
				partials = append(partials, string(data))
				log.Debug().Str("path", p).Msg("loaded partial")
				return nil
			}
			if _, builtin := sources[d.Name()]; builtin {
				log.Debug().Str("path", p).Msg("overriding built-in layout")
			}
			sources[d.Name()] = string(data)
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to load layouts from '%s': %w", dir, walkErr)
		}
	}

	base := template.New(baseLayout).Funcs(funcs)
	if _, err := base.Parse(sources[baseLayout]); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", baseLayout, err)
	}
	if base.Lookup("base") == nil {
		return nil, fmt.Errorf("%s does not define \"base\": %w", baseLayout, ErrMissingLayout)
	}
	for i, p := range partials {
		if _, err := base.New(fmt.Sprintf("partial-%d", i)).Parse(p); err != nil {
			return nil, fmt.Errorf("failed to parse partial: %w", err)
		}
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		if name != baseLayout {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	l := &layoutSet{byName: map[string]*template.Template{}}
	for _, name := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", name, err)
		}
		if _, err := t.New(name).Parse(sources[name]); err != nil {
			return nil, fmt.Errorf("failed to parse layout %s: %w", name, err)
		}
		l.byName[name] = t
	}
	log.Debug().Strs("layouts", names).Msg("layouts ready")
	return l, nil
}

func (l *layoutSet) has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

func (l *layoutSet) execute(w io.Writer, name string, data model.PageData) error {
	t, ok := l.byName[name]
	if !ok {
		return fmt.Errorf("layout %q: %w", name, ErrMissingLayout)
	}
	return t.ExecuteTemplate(w, "base", data)
}
