package web

import (
	"fmt"
	"html/template"

	"github.com/ziadkadry99/learnhub/internal/app"
	"github.com/ziadkadry99/learnhub/internal/forms"
	"github.com/ziadkadry99/learnhub/internal/theme"
)

// pageData is the root value of every page template.
type pageData struct {
	Page    app.Page
	Title   string
	Theme   theme.Theme
	Back    string
	Landing template.HTML
	Auth    *authData
	Dash    *dashData
}

type tabLink struct {
	Key    string
	Label  string
	Href   string
	Active bool
}

type authData struct {
	Active string
	Tabs   []tabLink
	Email  string
	Login  forms.Form
	Signup forms.Form
	Forgot forms.Form
}

type paneData struct {
	Key      string
	Visible  bool
	HTML     template.HTML
	Status   string
	Autoload bool
}

type dashData struct {
	Email            string
	Active           string
	SidebarCollapsed bool
	Tabs             []tabLink
	Overview         paneData
	Courses          paneData
	Assignments      paneData
	Profile          paneData
	Counters         map[string]string
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("layout").Funcs(template.FuncMap{
		"counter": func(c map[string]string, key string) string {
			if v, ok := c[key]; ok {
				return v
			}
			return "0"
		},
	}).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	for name, src := range map[string]string{
		"landing":   landingTemplate,
		"auth":      authTemplate,
		"dashboard": dashboardTemplate,
	} {
		if _, err := t.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
	}
	return t, nil
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}"{{if .Theme.IsDark}} class="dark"{{end}}>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · LearnHub</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body data-page="{{.Page}}">
  <header class="top-bar">
    <a class="brand" href="/">LearnHub</a>
    <form method="post" action="/theme/toggle" class="inline">
      <input type="hidden" name="back" value="{{.Back}}">
      <button type="submit" id="themeToggle" class="icon-btn" aria-label="Toggle theme">{{if .Theme.IsDark}}Light mode{{else}}Dark mode{{end}}</button>
    </form>
  </header>
  {{if eq .Page "landing"}}{{template "landing" .}}{{end}}
  {{if eq .Page "auth"}}{{template "auth" .Auth}}{{end}}
  {{if eq .Page "dashboard"}}{{template "dashboard" .Dash}}{{end}}
  <script src="/static/app.js"></script>
</body>
</html>`

const landingTemplate = `<main class="landing">
  <article class="prose">{{.Landing}}</article>
</main>`

const authTemplate = `<main class="auth">
  <nav class="tabs" data-tab-group="auth">
    {{range .Tabs}}<a href="{{.Href}}" data-tab="{{.Key}}" class="tab{{if .Active}} active{{end}}">{{.Label}}</a>{{end}}
  </nav>
  <section data-pane="login" id="login" class="card auth-pane{{if ne .Active "login"}} hidden{{end}}">
    <form method="post" action="/auth/login" data-form="login">
      <label>Email <input type="email" name="email" value="{{.Email}}" required></label>
      <label>Password <input type="password" name="password" required></label>
      <button type="submit" id="loginBtn" class="btn-primary" data-busy="{{.Login.BusyLabel}}"{{if .Login.Disabled}} disabled{{end}}>{{.Login.Label}}</button>
      <p class="form-msg" id="loginMsg">{{.Login.Message}}</p>
    </form>
  </section>
  <section data-pane="signup" id="signup" class="card auth-pane{{if ne .Active "signup"}} hidden{{end}}">
    <form method="post" action="/auth/signup" data-form="signup">
      <label>Email <input type="email" name="email" value="{{.Email}}" required></label>
      <label>Password <input type="password" name="password" required></label>
      <button type="submit" id="signupBtn" class="btn-primary" data-busy="{{.Signup.BusyLabel}}"{{if .Signup.Disabled}} disabled{{end}}>{{.Signup.Label}}</button>
      <p class="form-msg" id="signupMsg">{{.Signup.Message}}</p>
    </form>
  </section>
  <section data-pane="forgot" id="forgot" class="card auth-pane{{if ne .Active "forgot"}} hidden{{end}}">
    <form method="post" action="/auth/forgot" data-form="forgot">
      <label>Email <input type="email" name="email" value="{{.Email}}" required></label>
      <button type="submit" id="forgotBtn" class="btn-primary" data-busy="{{.Forgot.BusyLabel}}"{{if .Forgot.Disabled}} disabled{{end}}>{{.Forgot.Label}}</button>
      <p class="form-msg" id="forgotMsg">{{.Forgot.Message}}</p>
    </form>
  </section>
</main>`

const dashboardTemplate = `<div class="dashboard">
  <aside id="sidebar" class="sidebar{{if .SidebarCollapsed}} hidden{{end}}">
    <nav data-tab-group="dashboard">
      {{range .Tabs}}<a href="{{.Href}}" data-dash-tab="{{.Key}}" class="side-btn{{if .Active}} active{{end}}">{{.Label}}</a>{{end}}
    </nav>
  </aside>
  <main class="dash-main">
    <div class="dash-bar">
      <form method="post" action="/dashboard/sidebar" class="inline">
        <input type="hidden" name="tab" value="{{.Active}}">
        <button type="submit" id="sidebarToggle" class="icon-btn" aria-label="Toggle sidebar">Menu</button>
      </form>
      <span id="userEmailLabel" class="muted">{{.Email}}</span>
      <form method="post" action="/logout" class="inline">
        <button type="submit" id="logoutBtn" class="btn-secondary">Log out</button>
      </form>
    </div>

    <section data-pane="overview" class="dash-pane{{if not .Overview.Visible}} hidden{{end}}">
      <h2>Overview</h2>
      <div class="kpis">
        <div class="card kpi"><span class="muted">Enrolled courses</span><strong id="kpiCourses" data-counter="kpiCourses">{{counter .Counters "kpiCourses"}}</strong></div>
        <div class="card kpi"><span class="muted">Pending</span><strong id="kpiPending" data-counter="kpiPending">{{counter .Counters "kpiPending"}}</strong></div>
        <div class="card kpi"><span class="muted">Completed</span><strong id="kpiDone" data-counter="kpiDone">{{counter .Counters "kpiDone"}}</strong></div>
      </div>
    </section>

    <section data-pane="courses" class="dash-pane{{if not .Courses.Visible}} hidden{{end}}"{{if .Courses.Autoload}} data-autoload{{end}}>
      <div class="pane-head">
        <h2>Courses</h2>
        <a href="/dashboard?tab=courses" id="reloadCourses" class="btn-secondary" data-reload="courses">Reload</a>
      </div>
      <p id="coursesMsg" class="muted" data-status="courses">{{.Courses.Status}}</p>
      <div id="coursesGrid" class="grid" data-region="courses">{{.Courses.HTML}}</div>
    </section>

    <section data-pane="assignments" class="dash-pane{{if not .Assignments.Visible}} hidden{{end}}"{{if .Assignments.Autoload}} data-autoload{{end}}>
      <div class="pane-head">
        <h2>Assignments</h2>
        <a href="/dashboard?tab=assignments" id="reloadTodos" class="btn-secondary" data-reload="assignments">Reload</a>
      </div>
      <p id="todosMsg" class="muted" data-status="assignments">{{.Assignments.Status}}</p>
      <ul id="todoList" class="list" data-region="assignments">{{.Assignments.HTML}}</ul>
    </section>

    <section data-pane="profile" class="dash-pane{{if not .Profile.Visible}} hidden{{end}}"{{if .Profile.Autoload}} data-autoload{{end}}>
      <h2>Profile</h2>
      <p id="profileMsg" class="muted" data-status="profile">{{.Profile.Status}}</p>
      <div id="profileCard" class="card profile" data-region="profile">{{.Profile.HTML}}</div>
    </section>
  </main>
</div>`
