package forms

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ziadkadry99/learnhub/internal/remote"
	"github.com/ziadkadry99/learnhub/internal/tabs"
)

// Messages shown under the forms.
const (
	MsgLoginFailed    = "Login failed"
	MsgSignupFailed   = "Registration failed"
	MsgResetSent      = "If that email exists, a reset link has been sent."
	MsgResetFailed    = "Something went wrong. Try again."
	MsgAccountCreated = "Account created. Please sign in."
)

// DashboardPath is where a successful sign-in lands.
const DashboardPath = "/dashboard"

// Authenticator is the remote auth service.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
	RequestReset(ctx context.Context, email string) error
}

// SessionSaver stores a successful sign-in. *session.Manager is one.
type SessionSaver interface {
	Save(ctx context.Context, token, email string) error
}

// Outcome is the result of one submission. Redirect is set when the
// visitor should leave the auth page; Tab names the auth tab to show
// otherwise.
type Outcome struct {
	Form     Form
	Redirect string
	Tab      string
}

// Handler runs the form submissions against the auth service and the
// visitor's session.
type Handler struct {
	auth      Authenticator
	sessions  SessionSaver
	autoLogin bool
	observe   Observer
}

// Option configures a Handler.
type Option func(*Handler)

// WithObserver records every form transition.
func WithObserver(o Observer) Option {
	return func(h *Handler) { h.observe = o }
}

// WithSignupAutoLogin controls whether a successful signup signs the visitor in.
func WithSignupAutoLogin(on bool) Option {
	return func(h *Handler) { h.autoLogin = on }
}

// NewHandler creates a Handler. Signup signs in by default.
func NewHandler(auth Authenticator, sessions SessionSaver, opts ...Option) *Handler {
	h := &Handler{auth: auth, sessions: sessions, autoLogin: true}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) start(f *Form) {
	f.observe = h.observe
	f.Begin()
}

// Login submits the login form.
func (h *Handler) Login(ctx context.Context, email, password string) Outcome {
	f := NewLogin()
	h.start(f)
	return h.signIn(ctx, f, h.auth.Login, email, password, MsgLoginFailed, true)
}

// Signup submits the registration form.
func (h *Handler) Signup(ctx context.Context, email, password string) Outcome {
	f := NewSignup()
	h.start(f)
	return h.signIn(ctx, f, h.auth.Register, email, password, MsgSignupFailed, h.autoLogin)
}

type authFunc func(ctx context.Context, email, password string) (string, error)

func (h *Handler) signIn(ctx context.Context, f *Form, call authFunc, email, password, fallback string, store bool) Outcome {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	token, err := call(ctx, email, password)
	if err != nil {
		log.Printf("forms: %s for %q failed: %v", f.Name, email, err)
		f.Finish(failureMessage(err, fallback))
		return Outcome{Form: *f, Tab: f.Name}
	}
	if !store {
		f.Finish("")
		login := NewLogin()
		login.Message = MsgAccountCreated
		return Outcome{Form: *login, Tab: tabs.PaneLogin}
	}
	if err := h.sessions.Save(ctx, token, email); err != nil {
		log.Printf("forms: storing session: %v", err)
		f.Finish(fallback)
		return Outcome{Form: *f, Tab: f.Name}
	}
	f.Finish("")
	return Outcome{Form: *f, Redirect: DashboardPath}
}

// Forgot submits the password-reset form. Any completed request reports
// the same neutral message.
func (h *Handler) Forgot(ctx context.Context, email string) Outcome {
	f := NewForgot()
	h.start(f)
	if err := h.auth.RequestReset(ctx, strings.TrimSpace(email)); err != nil {
		log.Printf("forms: reset request failed: %v", err)
		f.Finish(MsgResetFailed)
	} else {
		f.Finish(MsgResetSent)
	}
	return Outcome{Form: *f, Tab: tabs.PaneForgot}
}

// failureMessage prefers the upstream's own error text.
func failureMessage(err error, fallback string) string {
	var se *remote.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
