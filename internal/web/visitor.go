package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pandalearn/pandalearn/pkg/session"
	"github.com/pandalearn/pandalearn/pkg/store"
	"github.com/pandalearn/pandalearn/pkg/theme"
)

const (
	// sessionCookie carries the visitor session ID.
	sessionCookie = "pl_session"

	// pinnedKey marks an explicit choice when PinUserChoice is enabled.
	pinnedKey = "theme-pinned"
)

// visitor is the per-request view of one browser.
type visitor struct {
	session *session.Session
	prefs   *store.ScopedStore

	// fresh is set when the session cookie was issued by this request.
	fresh bool

	// dark is the presentation flag written by the theme manager.
	dark bool
}

type visitorKey struct{}

func visitorFrom(ctx context.Context) *visitor {
	v, _ := ctx.Value(visitorKey{}).(*visitor)
	return v
}

// withVisitor restores or issues the session cookie and attaches the
// visitor to the request context.
func (s *Server) withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := &visitor{}
		if c, err := r.Cookie(sessionCookie); err == nil {
			if sess, err := session.Parse(c.Value, s.sessionTTL); err == nil {
				v.session = sess
			} else {
				s.logger.Debug("replacing invalid session cookie", "err", err)
			}
		}
		if v.session == nil {
			v.session = session.New(s.sessionTTL)
			v.fresh = true
		}
		v.prefs = store.Scoped(s.store, v.session.KeyPrefix())

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    v.session.ID,
			Path:     "/",
			Expires:  v.session.ExpiresAt,
			MaxAge:   int(s.sessionTTL / time.Second),
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, v)))
	})
}

// manager builds the visitor's theme manager for this request.
func (s *Server) manager(r *http.Request, v *visitor) *theme.Manager {
	ctx := r.Context()
	opts := theme.Options{
		Storage:       v.prefs,
		Signal:        clientHint(r),
		Presenter:     theme.PresenterFunc(func(dark bool) { v.dark = dark }),
		TTL:           s.sessionTTL,
		PinUserChoice: s.pin,
		Logger:        s.logger,
	}
	m := theme.NewManager(opts)
	if s.pin {
		if _, pinned, _ := v.prefs.Get(ctx, pinnedKey); pinned {
			m.Pin()
		}
	}
	return m
}

// renderManager builds the manager used to render a page. A first visit
// without the client hint is a render pass with nothing to resolve from;
// the page script resolves it from matchMedia once it runs.
func (s *Server) renderManager(r *http.Request, v *visitor) *theme.Manager {
	if v.fresh && r.Header.Get(hintPrefersColorScheme) == "" {
		return theme.NewManager(theme.Options{
			Presenter: theme.PresenterFunc(func(dark bool) { v.dark = dark }),
			Logger:    s.logger,
		})
	}
	return s.manager(r, v)
}

// rememberChoice records an explicit choice for PinUserChoice.
func (s *Server) rememberChoice(ctx context.Context, v *visitor) {
	if !s.pin {
		return
	}
	if err := v.prefs.Set(ctx, pinnedKey, []byte("1"), s.sessionTTL); err != nil {
		s.logger.Debug("could not persist pinned theme", "err", err)
	}
}

// forgetChoice drops the pinned mark so OS changes apply again.
func (s *Server) forgetChoice(ctx context.Context, v *visitor) {
	if err := v.prefs.Delete(ctx, pinnedKey); err != nil {
		s.logger.Debug("could not clear pinned theme", "err", err)
	}
}

// clientHint turns the Sec-CH-Prefers-Color-Scheme header into an OS
// signal. Browsers that do not send it leave the signal unavailable.
func clientHint(r *http.Request) theme.Signal {
	hint := strings.Trim(strings.ToLower(strings.TrimSpace(r.Header.Get(hintPrefersColorScheme))), `"`)
	switch hint {
	case "dark":
		return theme.Fixed(true)
	case "light":
		return theme.Fixed(false)
	}
	return theme.Unavailable()
}
