// Package tabs implements show/hide selection over a group of panes.
package tabs

// Group is a set of panes keyed by name, each with one trigger.
type Group struct {
	Name string
	Keys []string
	// Default is opened when a requested key is absent or unknown.
	// Empty means the first key.
	Default string
	// Fragment records the selection in the URL fragment.
	Fragment bool
}

// State is the selection of a group. Exactly one pane is visible.
type State struct {
	Group  string
	Active string
}

// Auth pane keys.
const (
	PaneLogin  = "login"
	PaneSignup = "signup"
	PaneForgot = "forgot"
)

// Dashboard pane keys.
const (
	PaneOverview    = "overview"
	PaneCourses     = "courses"
	PaneAssignments = "assignments"
	PaneProfile     = "profile"
)

// AuthGroup holds the login, signup and forgot-password forms.
var AuthGroup = Group{
	Name:     "auth",
	Keys:     []string{PaneLogin, PaneSignup, PaneForgot},
	Default:  PaneLogin,
	Fragment: true,
}

// DashboardGroup holds the dashboard sections. The first trigger opens by default.
var DashboardGroup = Group{
	Name: "dashboard",
	Keys: []string{PaneOverview, PaneCourses, PaneAssignments, PaneProfile},
}

// Has reports whether key names a pane of g.
func (g Group) Has(key string) bool {
	for _, k := range g.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Resolve returns key when it is a member, otherwise the default.
func (g Group) Resolve(key string) string {
	if g.Has(key) {
		return key
	}
	if g.Default != "" {
		return g.Default
	}
	if len(g.Keys) > 0 {
		return g.Keys[0]
	}
	return ""
}

// Select activates the pane named by key, falling back like Resolve.
func (g Group) Select(key string) State {
	return State{Group: g.Name, Active: g.Resolve(key)}
}

// Visible reports whether the pane for key is shown.
func (s State) Visible(key string) bool { return key == s.Active }

// IsActive reports whether the trigger for key is marked active.
func (s State) IsActive(key string) bool { return key == s.Active }
