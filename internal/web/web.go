// Package web serves the browser front end: two HTML pages and their static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Handler renders the pages.
type Handler struct {
	templates *template.Template
	logger    *zap.Logger
}

type page struct {
	APIBase string
}

// NewHandler parses the embedded templates.
func NewHandler(logger *zap.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// Register connects the handlers to the router.
func (h *Handler) Register(r chi.Router) {
	static, _ := fs.Sub(staticFS, "static") // Safe to ignore, the directory is embedded.

	r.Get("/", h.page("index.html"))
	r.Get("/login", h.page("login.html"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "max-age=0, no-cache, no-store, must-revalidate, private")
		w.Header().Set("Expires", "0")

		if err := h.templates.ExecuteTemplate(w, name, page{APIBase: apiBase(r)}); err != nil {
			h.logger.Error("rendering page", zap.String("page", name), zap.Error(err))
		}
	}
}

// apiBase returns the absolute URL of the site root, with a trailing slash.
func apiBase(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + "/"
}
