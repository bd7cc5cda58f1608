// Package app holds the page state machine. Reduce is pure: it never
// touches storage or the network, it only describes the side effects the
// web layer must carry out.
package app

import (
	"strconv"

	"github.com/ziadkadry99/learnhub/internal/storage"
	"github.com/ziadkadry99/learnhub/internal/tabs"
	"github.com/ziadkadry99/learnhub/internal/theme"
)

// Page identifies which initializer runs.
type Page string

const (
	PageLanding   Page = "landing"
	PageAuth      Page = "auth"
	PageDashboard Page = "dashboard"
)

// Fixed navigation targets.
const (
	LoginEntry    = "/auth?tab=login#login"
	DashboardPath = "/dashboard"
)

// AuthTarget returns the auth page URL with key in both query and fragment.
func AuthTarget(key string) string {
	key = tabs.AuthGroup.Resolve(key)
	return "/auth?tab=" + key + "#" + key
}

// State is everything the pages render from.
type State struct {
	Page             Page
	Theme            theme.Theme
	Token            string
	Email            string
	AuthTab          string
	DashTab          string
	SidebarCollapsed bool
}

// SignedIn reports whether a session token is present.
func (s State) SignedIn() bool { return s.Token != "" }

// Event is an input to Reduce.
type Event interface{ event() }

type (
	// PageLoaded is raised once per page view. Tab is the requested tab, if any.
	PageLoaded struct {
		Page Page
		Tab  string
	}
	ThemeToggled   struct{}
	SidebarToggled struct{}
	TabSelected    struct {
		Group string
		Key   string
	}
	LoggedIn struct {
		Token string
		Email string
	}
	LoggedOut       struct{}
	ReloadRequested struct{ Pane string }
)

func (PageLoaded) event()      {}
func (ThemeToggled) event()    {}
func (SidebarToggled) event()  {}
func (TabSelected) event()     {}
func (LoggedIn) event()        {}
func (LoggedOut) event()       {}
func (ReloadRequested) event() {}

// Effect is a side effect requested by Reduce.
type Effect interface{ effect() }

type (
	// Persist writes one key to the visitor's store.
	Persist struct{ Key, Value string }
	// Remove deletes keys from the visitor's store.
	Remove struct{ Keys []string }
	// Navigate sends the visitor elsewhere.
	Navigate struct{ Target string }
	// Load starts the loader of a dashboard pane.
	Load struct{ Pane string }
)

func (Persist) effect()  {}
func (Remove) effect()   {}
func (Navigate) effect() {}
func (Load) effect()     {}

// Loadable reports whether pane has a remote loader.
func Loadable(pane string) bool {
	switch pane {
	case tabs.PaneCourses, tabs.PaneAssignments, tabs.PaneProfile:
		return true
	}
	return false
}

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case PageLoaded:
		return pageLoaded(s, ev)

	case ThemeToggled:
		s.Theme = s.Theme.Toggled()
		return s, []Effect{Persist{Key: storage.KeyTheme, Value: string(s.Theme)}}

	case SidebarToggled:
		s.SidebarCollapsed = !s.SidebarCollapsed
		return s, []Effect{Persist{Key: storage.KeySidebar, Value: strconv.FormatBool(s.SidebarCollapsed)}}

	case TabSelected:
		switch ev.Group {
		case tabs.AuthGroup.Name:
			s.AuthTab = tabs.AuthGroup.Resolve(ev.Key)
			return s, []Effect{Navigate{Target: AuthTarget(s.AuthTab)}}
		case tabs.DashboardGroup.Name:
			if !s.SignedIn() {
				return s, []Effect{Navigate{Target: LoginEntry}}
			}
			s.DashTab = tabs.DashboardGroup.Resolve(ev.Key)
			if Loadable(s.DashTab) {
				return s, []Effect{Load{Pane: s.DashTab}}
			}
		}
		return s, nil

	case LoggedIn:
		s.Token, s.Email = ev.Token, ev.Email
		// The token goes last: a visitor only counts as signed in once
		// both keys are stored.
		return s, []Effect{
			Persist{Key: storage.KeyEmail, Value: ev.Email},
			Persist{Key: storage.KeyToken, Value: ev.Token},
			Navigate{Target: DashboardPath},
		}

	case LoggedOut:
		s.Token, s.Email = "", ""
		s.AuthTab = tabs.PaneLogin
		return s, []Effect{
			Remove{Keys: []string{storage.KeyToken, storage.KeyEmail}},
			Navigate{Target: LoginEntry},
		}

	case ReloadRequested:
		if !s.SignedIn() || !Loadable(ev.Pane) {
			return s, nil
		}
		return s, []Effect{Load{Pane: ev.Pane}}
	}
	return s, nil
}

func pageLoaded(s State, ev PageLoaded) (State, []Effect) {
	s.Page = ev.Page
	switch ev.Page {
	case PageAuth:
		s.AuthTab = tabs.AuthGroup.Resolve(ev.Tab)
	case PageDashboard:
		if !s.SignedIn() {
			s.Page = PageAuth
			s.AuthTab = tabs.PaneLogin
			return s, []Effect{Navigate{Target: LoginEntry}}
		}
		s.DashTab = tabs.DashboardGroup.Resolve(ev.Tab)
		if Loadable(s.DashTab) {
			return s, []Effect{Load{Pane: s.DashTab}}
		}
	}
	return s, nil
}
