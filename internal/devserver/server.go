// Package devserver serves a built site locally and rebuilds it when its
// sources change.
package devserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Handler serves the files under root. Directory listings are never shown
// and responses are not cached.
func Handler(root string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(noCache)

	files := http.FileServer(http.Dir(root))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		// Answer misses here: FileServer's own error responses drop the
		// no-cache headers.
		name := filepath.Join(root, filepath.FromSlash(path.Clean("/"+req.URL.Path)))
		if strings.HasSuffix(req.URL.Path, "/") {
			name = filepath.Join(name, "index.html")
		}
		if _, err := os.Stat(name); err != nil {
			http.NotFound(w, req)
			return
		}
		files.ServeHTTP(w, req)
	})
	return r
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
