// Package web serves the landing, auth and dashboard pages and the live
// pane updates behind them.
package web

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/learnhub/internal/app"
	"github.com/ziadkadry99/learnhub/internal/forms"
	"github.com/ziadkadry99/learnhub/internal/storage"
	"github.com/ziadkadry99/learnhub/internal/theme"
	"github.com/ziadkadry99/learnhub/internal/views"
)

// Client is the remote side of the portal: auth plus the pane data.
type Client interface {
	forms.Authenticator
	views.Source
}

// Options configures the pages.
type Options struct {
	// Secret signs visitor cookies.
	Secret          []byte
	Views           views.Options
	SignupAutoLogin bool
	// RequestTimeout bounds every page request. Live sockets are exempt.
	RequestTimeout time.Duration
}

// Handler owns the page routes.
type Handler struct {
	opts     Options
	visitors *storage.SQLStore
	client   Client
	pages    *template.Template
	landing  template.HTML
}

// New parses the templates and renders the landing content.
func New(visitors *storage.SQLStore, client Client, opts Options) (*Handler, error) {
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("visitor secret is required")
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	landing, err := renderMarkdown(landingMarkdown)
	if err != nil {
		return nil, fmt.Errorf("rendering landing page: %w", err)
	}
	return &Handler{
		opts:     opts,
		visitors: visitors,
		client:   client,
		pages:    pages,
		landing:  landing,
	}, nil
}

// RegisterRoutes mounts the pages, static assets and the live socket.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		r.Use(clientHints)
		r.Use(h.withVisitor)

		r.Get("/ws/dashboard", h.handleLive)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(h.opts.RequestTimeout))

			r.Get("/", h.handleLanding)
			r.Get("/auth", h.handleAuth)
			r.Get("/auth/tab/{tab}", h.handleAuthTab)
			r.Post("/auth/login", h.handleLogin)
			r.Post("/auth/signup", h.handleSignup)
			r.Post("/auth/forgot", h.handleForgot)
			r.Get("/dashboard", h.handleDashboard)
			r.Get("/dashboard/panes/{pane}", h.handlePane)
			r.Post("/dashboard/sidebar", h.handleSidebar)
			r.Post("/logout", h.handleLogout)
			r.Post("/theme/toggle", h.handleThemeToggle)
		})
	})
}

// clientHints asks the browser for its color-scheme preference.
func clientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", prefersSchemeHeader)
		w.Header().Add("Vary", prefersSchemeHeader)
		next.ServeHTTP(w, r)
	})
}

const prefersSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

func prefersDark(r *http.Request) bool {
	return r.Header.Get(prefersSchemeHeader) == "dark"
}

// state loads everything the pages render from the visitor's store.
func (h *Handler) state(r *http.Request, v *visitor) app.State {
	ctx := r.Context()
	st := app.State{Theme: v.themes.Initialize(ctx, prefersDark(r))}

	sess, err := v.sessions.Load(ctx)
	if err != nil {
		log.Printf("web: %v", err)
	}
	st.Token, st.Email = sess.Token, sess.Email

	raw, ok, err := v.store.Get(ctx, storage.KeySidebar)
	if err != nil {
		log.Printf("web: reading sidebar: %v", err)
	}
	if ok {
		st.SidebarCollapsed, _ = strconv.ParseBool(raw)
	}
	return st
}

// apply carries out the storage effects and returns the last navigation
// target, if any. Load effects are returned for the caller to start.
func (h *Handler) apply(ctx context.Context, v *visitor, effects []app.Effect) (target string, loads []string, err error) {
	for _, e := range effects {
		switch e := e.(type) {
		case app.Persist:
			if e.Key == storage.KeyTheme {
				if t, ok := theme.Parse(e.Value); ok {
					v.themes.Set(ctx, t)
				}
				continue
			}
			if err := v.store.Set(ctx, e.Key, e.Value); err != nil {
				return "", nil, fmt.Errorf("saving %s: %w", e.Key, err)
			}
		case app.Remove:
			if err := v.store.Delete(ctx, e.Keys...); err != nil {
				return "", nil, fmt.Errorf("removing %v: %w", e.Keys, err)
			}
		case app.Navigate:
			target = e.Target
		case app.Load:
			loads = append(loads, e.Pane)
		}
	}
	return target, loads, nil
}

// signIn persists a successful sign-in through the LoggedIn transition.
type signIn struct {
	h  *Handler
	v  *visitor
	st *app.State
}

func (s signIn) Save(ctx context.Context, token, email string) error {
	next, effects := app.Reduce(*s.st, app.LoggedIn{Token: token, Email: email})
	if _, _, err := s.h.apply(ctx, s.v, effects); err != nil {
		if cerr := s.v.sessions.Clear(ctx); cerr != nil {
			log.Printf("web: clearing partial session: %v", cerr)
		}
		return err
	}
	*s.st = next
	return nil
}

func (h *Handler) formHandler(v *visitor, st *app.State) *forms.Handler {
	return forms.NewHandler(h.client, signIn{h: h, v: v, st: st},
		forms.WithSignupAutoLogin(h.opts.SignupAutoLogin))
}

// localPath reduces p to a path on this site, keeping its query and
// fragment. Anything unparsable becomes "/".
func localPath(p string) string {
	u, err := url.Parse(p)
	if err != nil || p == "" {
		return "/"
	}
	out := u.EscapedPath()
	if !strings.HasPrefix(out, "/") || strings.HasPrefix(out, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}
