package web

import (
	"net/http"
	"net/url"

	"github.com/pandalearn/pandalearn/pkg/routes"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

const maxThemeBodyBytes = 1024

type themeResponse struct {
	Theme theme.Preference `json:"theme"`
	Dark  bool             `json:"dark"`
}

func (s *Server) respondTheme(w http.ResponseWriter, m *theme.Manager) {
	p := m.Current()
	writeJSON(w, http.StatusOK, themeResponse{Theme: p, Dark: p.IsDark()})
}

// GET /api/theme
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	m := s.manager(r, visitorFrom(r.Context()))
	m.Initialize(r.Context())
	s.respondTheme(w, m)
}

// PUT /api/theme {"theme":"dark"}
func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decodeJSONBody(w, r, maxThemeBodyBytes, &req); err != nil {
		return
	}
	p, err := theme.Parse(req.Theme)
	if err != nil {
		writeError(w, err)
		return
	}

	v := visitorFrom(r.Context())
	m := s.manager(r, v)
	if err := m.Set(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	s.rememberChoice(r.Context(), v)
	s.respondTheme(w, m)
}

// DELETE /api/theme
func (s *Server) handleResetTheme(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	m := s.manager(r, v)
	s.forgetChoice(r.Context(), v)
	m.Reset(r.Context())
	s.respondTheme(w, m)
}

// POST /api/theme/toggle
func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	m := s.manager(r, v)
	m.Initialize(r.Context())
	m.Toggle(r.Context())
	s.rememberChoice(r.Context(), v)
	s.respondTheme(w, m)
}

// POST /api/theme/system {"dark":true}
func (s *Server) handleSystemTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dark *bool `json:"dark"`
	}
	if err := decodeJSONBody(w, r, maxThemeBodyBytes, &req); err != nil {
		return
	}
	if req.Dark == nil {
		writeErr(w, http.StatusBadRequest, "INVALID_INPUT", "dark is required")
		return
	}

	m := s.manager(r, visitorFrom(r.Context()))
	m.Initialize(r.Context())
	m.OnSystemPreferenceChanged(r.Context(), *req.Dark)
	s.respondTheme(w, m)
}

// POST /theme/toggle is the form fallback for browsers without scripts. It
// redirects back to the page the form was on.
func (s *Server) handleToggleForm(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	m := s.manager(r, v)
	m.Initialize(r.Context())
	m.Toggle(r.Context())
	s.rememberChoice(r.Context(), v)

	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the local page named by the Referer, or the home page.
func backTo(r *http.Request) string {
	home := routes.MustLookup(routes.Root)
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return home
	}
	if _, ok := routes.NameOf(ref.Path); !ok {
		return home
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
