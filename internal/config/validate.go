package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrInvalidSite wraps every site validation failure.
var ErrInvalidSite = errors.New("invalid site configuration")

// ValidationErrors collects every failed check so they can be reported at once.
type ValidationErrors struct {
	errors []error
}

func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.errors = append(v.errors, err)
	}
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the collected failures in check order.
func (v *ValidationErrors) Errors() []error {
	return append([]error(nil), v.errors...)
}

func (v *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("site configuration validation failed:\n")
	for _, err := range v.errors {
		sb.WriteString(" - ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (v *ValidationErrors) Unwrap() error {
	return ErrInvalidSite
}

func (v *ValidationErrors) check(field string, value any, err error) {
	if err != nil {
		log.Error().Str("field", field).Interface("value", value).Err(err).Msg("site config")
		v.Add(err)
		return
	}
	log.Debug().Str("field", field).Interface("value", value).Msg("site config")
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Validate checks the configuration. The returned error, if any, is a
// *ValidationErrors that matches ErrInvalidSite.
func (s Site) Validate() error {
	v := &ValidationErrors{}

	v.check("url", s.URL, func() error {
		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("url must be an absolute URL (got %q)", s.URL)
		}
		return nil
	}())
	v.check("title", s.Title, required("title", s.Title))

	var perPage error
	if s.PostsPerPage < 1 {
		perPage = fmt.Errorf("postsPerPage must be at least 1 (got %d)", s.PostsPerPage)
	}
	v.check("postsPerPage", s.PostsPerPage, perPage)

	for i, item := range s.Menu {
		field := fmt.Sprintf("menu[%d]", i)
		v.check(field+".label", item.Label, required(field+".label", item.Label))
		var pathErr error
		if !strings.HasPrefix(item.Path, "/") {
			pathErr = fmt.Errorf("%s.path must start with / (got %q)", field, item.Path)
		}
		v.check(field+".path", item.Path, pathErr)
	}

	v.check("author.name", s.Author.Name, required("author.name", s.Author.Name))

	if v.HasErrors() {
		return v
	}
	return nil
}
