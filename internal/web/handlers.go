package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/learnhub/internal/app"
	"github.com/ziadkadry99/learnhub/internal/forms"
	"github.com/ziadkadry99/learnhub/internal/tabs"
	"github.com/ziadkadry99/learnhub/internal/views"
)

var tabLabels = map[string]string{
	tabs.PaneLogin:       "Sign In",
	tabs.PaneSignup:      "Sign Up",
	tabs.PaneForgot:      "Forgot Password",
	tabs.PaneOverview:    "Overview",
	tabs.PaneCourses:     "Courses",
	tabs.PaneAssignments: "Assignments",
	tabs.PaneProfile:     "Profile",
}

func (h *Handler) handleLanding(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	st, _ := app.Reduce(h.state(r, v), app.PageLoaded{Page: app.PageLanding})
	h.render(w, http.StatusOK, pageData{
		Page:    st.Page,
		Title:   "Welcome",
		Theme:   st.Theme,
		Back:    r.URL.RequestURI(),
		Landing: h.landing,
	})
}

func (h *Handler) handleAuth(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	st, _ := app.Reduce(h.state(r, v), app.PageLoaded{Page: app.PageAuth, Tab: r.URL.Query().Get("tab")})
	h.renderAuth(w, http.StatusOK, st, nil, "")
}

// handleAuthTab records the selected auth tab in the URL fragment.
func (h *Handler) handleAuthTab(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	_, effects := app.Reduce(h.state(r, v), app.TabSelected{Group: tabs.AuthGroup.Name, Key: chi.URLParam(r, "tab")})
	h.follow(w, r, v, effects)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(fh *forms.Handler) forms.Outcome {
		return fh.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	})
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(fh *forms.Handler) forms.Outcome {
		return fh.Signup(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	})
}

func (h *Handler) handleForgot(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(fh *forms.Handler) forms.Outcome {
		return fh.Forgot(r.Context(), r.PostFormValue("email"))
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, run func(*forms.Handler) forms.Outcome) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := visitorFrom(r.Context())
	st := h.state(r, v)
	out := run(h.formHandler(v, &st))
	if out.Redirect != "" {
		http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
		return
	}
	st, _ = app.Reduce(st, app.PageLoaded{Page: app.PageAuth, Tab: out.Tab})
	h.renderAuth(w, http.StatusOK, st, &out.Form, r.PostFormValue("email"))
}

func (h *Handler) renderAuth(w http.ResponseWriter, status int, st app.State, submitted *forms.Form, email string) {
	data := &authData{
		Active: st.AuthTab,
		Email:  email,
		Login:  *forms.NewLogin(),
		Signup: *forms.NewSignup(),
		Forgot: *forms.NewForgot(),
	}
	if submitted != nil {
		switch submitted.Name {
		case forms.NameLogin:
			data.Login = *submitted
		case forms.NameSignup:
			data.Signup = *submitted
		case forms.NameForgot:
			data.Forgot = *submitted
		}
	}
	sel := tabs.AuthGroup.Select(st.AuthTab)
	for _, k := range tabs.AuthGroup.Keys {
		data.Tabs = append(data.Tabs, tabLink{Key: k, Label: tabLabels[k], Href: "/auth/tab/" + k, Active: sel.IsActive(k)})
	}
	h.render(w, status, pageData{
		Page:  app.PageAuth,
		Title: tabLabels[st.AuthTab],
		Theme: st.Theme,
		Back:  app.AuthTarget(st.AuthTab),
		Auth:  data,
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	st, effects := app.Reduce(h.state(r, v), app.PageLoaded{Page: app.PageDashboard, Tab: r.URL.Query().Get("tab")})
	target, loads, err := h.apply(r.Context(), v, effects)
	if err != nil {
		log.Printf("web: %v", err)
	}
	if target != "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	sel := tabs.DashboardGroup.Select(st.DashTab)
	data := &dashData{
		Email:            st.Email,
		Active:           sel.Active,
		SidebarCollapsed: st.SidebarCollapsed,
	}
	for _, k := range tabs.DashboardGroup.Keys {
		data.Tabs = append(data.Tabs, tabLink{Key: k, Label: tabLabels[k], Href: "/dashboard?tab=" + k, Active: sel.IsActive(k)})
	}
	pane := func(key string) paneData {
		p := paneData{Key: key, Visible: sel.Visible(key)}
		for _, l := range loads {
			if l != key {
				continue
			}
			if res, ok := views.Placeholder(key, h.opts.Views); ok {
				p.HTML = template.HTML(res.HTML)
				p.Status = res.Status
				p.Autoload = true
			}
		}
		return p
	}
	data.Overview = pane(tabs.PaneOverview)
	data.Courses = pane(tabs.PaneCourses)
	data.Assignments = pane(tabs.PaneAssignments)
	data.Profile = pane(tabs.PaneProfile)

	h.render(w, http.StatusOK, pageData{
		Page:  st.Page,
		Title: "Dashboard",
		Theme: st.Theme,
		Back:  r.URL.RequestURI(),
		Dash:  data,
	})
}

// handlePane loads one pane synchronously and returns its snapshot.
func (h *Handler) handlePane(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	pane := chi.URLParam(r, "pane")
	_, effects := app.Reduce(h.state(r, v), app.ReloadRequested{Pane: pane})
	_, loads, _ := h.apply(r.Context(), v, effects)
	if len(loads) == 0 {
		if !h.signedIn(r, v) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not signed in"})
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown pane: " + pane})
		return
	}

	board := views.NewBoard(h.client, h.opts.Views)
	snap, err := board.Load(r.Context(), loads[0])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	snap.Counters = board.Counters()
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) signedIn(r *http.Request, v *visitor) bool {
	sess, err := v.sessions.Load(r.Context())
	return err == nil && sess.Active()
}

func (h *Handler) handleSidebar(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	st := h.state(r, v)
	if !st.SignedIn() {
		http.Redirect(w, r, app.LoginEntry, http.StatusSeeOther)
		return
	}
	_, effects := app.Reduce(st, app.SidebarToggled{})
	if _, _, err := h.apply(r.Context(), v, effects); err != nil {
		log.Printf("web: %v", err)
	}
	back := "/dashboard"
	if tab := r.PostFormValue("tab"); tabs.DashboardGroup.Has(tab) {
		back += "?tab=" + tab
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	_, effects := app.Reduce(h.state(r, v), app.LoggedOut{})
	h.follow(w, r, v, effects)
}

func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	_, effects := app.Reduce(h.state(r, v), app.ThemeToggled{})
	if _, _, err := h.apply(r.Context(), v, effects); err != nil {
		log.Printf("web: %v", err)
	}
	back := r.PostFormValue("back")
	if back == "" {
		back = r.Referer()
	}
	http.Redirect(w, r, localPath(back), http.StatusSeeOther)
}

// follow applies effects and redirects to their navigation target.
func (h *Handler) follow(w http.ResponseWriter, r *http.Request, v *visitor, effects []app.Effect) {
	target, _, err := h.apply(r.Context(), v, effects)
	if err != nil {
		log.Printf("web: %v", err)
		http.Error(w, "could not update session", http.StatusInternalServerError)
		return
	}
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("web: rendering %s: %v", data.Page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
