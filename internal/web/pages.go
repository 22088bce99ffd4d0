package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pandalearn/pandalearn/pkg/buildinfo"
	"github.com/pandalearn/pandalearn/pkg/content"
	perrors "github.com/pandalearn/pandalearn/pkg/errors"
	"github.com/pandalearn/pandalearn/pkg/routes"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page templates, each rendered inside layout.html.
const (
	pageHome       = "home.html"
	pageIndex      = "index.html"
	pageTopic      = "topic.html"
	pageReference  = "reference.html"
	pagePractice   = "practice.html"
	pageAttributes = "attributes.html"
	pageNotFound   = "notfound.html"
)

type pageSet struct {
	templates map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"safe":  content.Sanitize,
	"plain": content.PlainText,
	"path": func(name string) string {
		path, err := routes.Lookup(routes.Name(name))
		if err != nil {
			return routes.MustLookup(routes.Root)
		}
		return path
	},
}

func parsePages() (*pageSet, error) {
	ps := &pageSet{templates: map[string]*template.Template{}}
	for _, page := range []string{pageHome, pageIndex, pageTopic, pageReference, pagePractice, pageAttributes, pageNotFound} {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		ps.templates[page] = t
	}
	return ps, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// pageData is the model shared by every template.
type pageData struct {
	Title   string
	Route   routes.Route
	Crumbs  []routes.Route
	Nav     []routes.Route
	Theme   string
	Dark    bool
	Version string

	Topics     []content.Topic
	Topic      content.Topic
	Children   []routes.Route
	Examples   []content.Example
	Active     string
	Attributes []content.Attribute
}

// mountPages registers one handler per registry route. Routes registered
// with a trailing slash also answer without it and vice versa.
func (s *Server) mountPages(r chi.Router) {
	handlers := map[routes.Name]http.HandlerFunc{
		routes.Root:                 s.handleHome,
		routes.PandaLearnMore:       s.handleIndex,
		routes.HTML:                 s.handleTopic("html"),
		routes.CSS:                  s.handleTopic("css"),
		routes.JS:                   s.handleTopic("js"),
		routes.TS:                   s.handleTopic("ts"),
		routes.NodeJS:               s.handleTopic("nodejs"),
		routes.Svelte:               s.handleTopic("svelte"),
		routes.HTMLReferenceBook:    s.handleReference,
		routes.HTMLPractice:         s.handlePractice("html"),
		routes.HTMLCommonAttributes: s.handleAttributes,
		routes.CSSPractice:          s.handlePractice("css"),
	}

	for _, route := range routes.All() {
		h, ok := handlers[route.Name]
		if !ok {
			continue
		}
		r.Get(route.Path, h)
		if route.Path == "/" {
			continue
		}
		alt := route.Path + "/"
		if strings.HasSuffix(route.Path, "/") {
			alt = strings.TrimSuffix(route.Path, "/")
		}
		r.Get(alt, h)
	}
}

// render resolves the visitor's theme and executes a page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	v := visitorFrom(r.Context())
	m := s.renderManager(r, v)
	p := m.Initialize(r.Context())

	data.Theme = p.String()
	data.Dark = p.Resolved() && v.dark
	data.Version = buildinfo.Version
	if data.Route.Name != "" {
		data.Crumbs = routes.Breadcrumbs(data.Route.Name)
	}
	data.Nav = routes.Children(routes.PandaLearnMore)

	var buf bytes.Buffer
	if err := s.pages.templates[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.logger.Error("render page", "page", page, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	if visitorFrom(r.Context()) == nil {
		// Outside the visitor group there is no theme to resolve.
		http.NotFound(w, r)
		return
	}
	s.render(w, r, http.StatusNotFound, pageNotFound, pageData{Title: "Сторінку не знайдено"})
}

// contentError renders a lookup failure as 404 and anything else as 500.
func (s *Server) contentError(w http.ResponseWriter, r *http.Request, err error) {
	if perrors.IsNotFound(err) {
		s.renderNotFound(w, r)
		return
	}
	s.logger.Error("load content", "path", r.URL.Path, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func routeOf(name routes.Name) routes.Route {
	r, _ := routes.Get(name)
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageHome, pageData{
		Title: "Panda Learn",
		Route: routeOf(routes.Root),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	topics, err := s.content.Topics(r.Context())
	if err != nil {
		s.contentError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, pageIndex, pageData{
		Title:  routeOf(routes.PandaLearnMore).Title,
		Route:  routeOf(routes.PandaLearnMore),
		Topics: topics,
	})
}

func (s *Server) handleTopic(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic, err := s.content.Topic(r.Context(), key)
		if err != nil {
			s.contentError(w, r, err)
			return
		}
		route := routeOf(routes.Name(topic.Route))
		s.render(w, r, http.StatusOK, pageTopic, pageData{
			Title:    topic.Title,
			Route:    route,
			Topic:    topic,
			Children: routes.Children(route.Name),
		})
	}
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	examples, err := s.content.Examples(r.Context(), "html")
	if err != nil {
		s.contentError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, pageReference, pageData{
		Title:    routeOf(routes.HTMLReferenceBook).Title,
		Route:    routeOf(routes.HTMLReferenceBook),
		Examples: examples,
	})
}

// handlePractice shows the practice examples of a topic. ?example=<key>
// selects the active one; by default it is the first.
func (s *Server) handlePractice(topic string) http.HandlerFunc {
	name := routes.HTMLPractice
	if topic == "css" {
		name = routes.CSSPractice
	}
	return func(w http.ResponseWriter, r *http.Request) {
		examples, err := s.content.Examples(r.Context(), topic)
		if err != nil {
			s.contentError(w, r, err)
			return
		}

		active := r.URL.Query().Get("example")
		if active != "" {
			if err := perrors.ValidateKey(active); err != nil {
				s.renderNotFound(w, r)
				return
			}
			if _, err := s.content.Example(r.Context(), topic, active); err != nil {
				s.contentError(w, r, err)
				return
			}
		} else if len(examples) > 0 {
			active = examples[0].Key
		}

		s.render(w, r, http.StatusOK, pagePractice, pageData{
			Title:    routeOf(name).Title,
			Route:    routeOf(name),
			Examples: examples,
			Active:   active,
		})
	}
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := s.content.Attributes(r.Context())
	if err != nil {
		s.contentError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, pageAttributes, pageData{
		Title:      routeOf(routes.HTMLCommonAttributes).Title,
		Route:      routeOf(routes.HTMLCommonAttributes),
		Attributes: attrs,
	})
}
