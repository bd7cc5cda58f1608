package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/learnhub/internal/remote"
	"github.com/ziadkadry99/learnhub/internal/session"
	"github.com/ziadkadry99/learnhub/internal/storage"
)

type fakeAuth struct {
	token    string
	err      error
	resetErr error

	gotEmail    string
	gotPassword string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.token, f.err
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (string, error) {
	return f.Login(ctx, email, password)
}

func (f *fakeAuth) RequestReset(_ context.Context, email string) error {
	f.gotEmail = email
	return f.resetErr
}

func newHandler(auth Authenticator, opts ...Option) (*Handler, *storage.MemoryStore, *[]Form) {
	store := storage.NewMemoryStore()
	var seen []Form
	opts = append(opts, WithObserver(func(f Form) { seen = append(seen, f) }))
	return NewHandler(auth, session.NewManager(store), opts...), store, &seen
}

func TestFormTransitions(t *testing.T) {
	f := NewLogin()
	if f.Label != "Sign In" || f.Disabled {
		t.Fatalf("idle form = %+v", f)
	}
	f.Message = "old"
	f.Begin()
	if !f.Disabled || f.Label != "Signing in..." || f.Message != "" {
		t.Errorf("submitting form = %+v", f)
	}
	f.Finish("Login failed")
	if f.Disabled || f.Label != "Sign In" || f.Message != "Login failed" {
		t.Errorf("finished form = %+v", f)
	}
}

func TestLoginSuccess(t *testing.T) {
	auth := &fakeAuth{token: "QpwL5tke4Pnpja7X4"}
	h, store, seen := newHandler(auth)

	out := h.Login(context.Background(), "  eve.holt@reqres.in ", " cityslicka ")
	if out.Redirect != "/dashboard" {
		t.Errorf("redirect = %q, want /dashboard", out.Redirect)
	}
	if auth.gotEmail != "eve.holt@reqres.in" || auth.gotPassword != "cityslicka" {
		t.Errorf("credentials not trimmed: %q %q", auth.gotEmail, auth.gotPassword)
	}
	snap := store.Snapshot()
	if snap[storage.KeyToken] != "QpwL5tke4Pnpja7X4" || snap[storage.KeyEmail] != "eve.holt@reqres.in" {
		t.Errorf("stored session = %v", snap)
	}
	if len(*seen) != 2 || !(*seen)[0].Disabled || (*seen)[1].Disabled {
		t.Errorf("transitions = %+v, want submitting then idle", *seen)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &remote.StatusError{Code: 400, Message: "user not found"}, "user not found"},
		{"status without message", &remote.StatusError{Code: 500}, MsgLoginFailed},
		{"network", errors.New("connection refused"), MsgLoginFailed},
		{"no token", remote.ErrNoToken, MsgLoginFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store, seen := newHandler(&fakeAuth{err: tt.err})
			store.Set(context.Background(), storage.KeyToken, "previous")

			out := h.Login(context.Background(), "a@b.c", "pw")
			if out.Redirect != "" {
				t.Errorf("redirect = %q, want none", out.Redirect)
			}
			if out.Form.Message != tt.want {
				t.Errorf("message = %q, want %q", out.Form.Message, tt.want)
			}
			if out.Form.Disabled || out.Form.Label != "Sign In" {
				t.Errorf("form not restored: %+v", out.Form)
			}
			if out.Tab != NameLogin {
				t.Errorf("tab = %q, want login", out.Tab)
			}
			if got := store.Snapshot()[storage.KeyToken]; got != "previous" {
				t.Errorf("token = %q, session should be unchanged", got)
			}
			if len(*seen) != 2 {
				t.Errorf("saw %d transitions, want 2", len(*seen))
			}
		})
	}
}

func TestSignupAutoLogin(t *testing.T) {
	h, store, _ := newHandler(&fakeAuth{token: "tok"})
	out := h.Signup(context.Background(), "new@x.io", "pw")
	if out.Redirect != "/dashboard" {
		t.Errorf("redirect = %q", out.Redirect)
	}
	if store.Snapshot()[storage.KeyToken] != "tok" {
		t.Error("signup did not store the token")
	}
}

func TestSignupWithoutAutoLogin(t *testing.T) {
	h, store, _ := newHandler(&fakeAuth{token: "tok"}, WithSignupAutoLogin(false))
	out := h.Signup(context.Background(), "new@x.io", "pw")
	if out.Redirect != "" || out.Tab != NameLogin {
		t.Errorf("outcome = %+v, want login tab", out)
	}
	if out.Form.Message != MsgAccountCreated {
		t.Errorf("message = %q", out.Form.Message)
	}
	if len(store.Snapshot()) != 0 {
		t.Errorf("store = %v, want empty", store.Snapshot())
	}
}

func TestSignupFailureFallback(t *testing.T) {
	h, _, _ := newHandler(&fakeAuth{err: &remote.StatusError{Code: 400}})
	out := h.Signup(context.Background(), "x", "y")
	if out.Form.Message != MsgSignupFailed || out.Form.Label != "Sign Up" {
		t.Errorf("form = %+v", out.Form)
	}
}

func TestForgot(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"delivered", nil, MsgResetSent},
		{"transport error", errors.New("dial tcp: timeout"), MsgResetFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{resetErr: tt.err}
			h, store, _ := newHandler(auth)
			out := h.Forgot(context.Background(), " who@x.io ")
			if out.Form.Message != tt.want {
				t.Errorf("message = %q, want %q", out.Form.Message, tt.want)
			}
			if out.Tab != NameForgot || out.Redirect != "" {
				t.Errorf("outcome = %+v", out)
			}
			if auth.gotEmail != "who@x.io" {
				t.Errorf("email = %q", auth.gotEmail)
			}
			if len(store.Snapshot()) != 0 {
				t.Error("forgot password touched the session")
			}
		})
	}
}

type tokenRejectingStore struct{ *storage.MemoryStore }

func (s tokenRejectingStore) Set(ctx context.Context, key, value string) error {
	if key == storage.KeyToken {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestLoginSessionWriteFailureStaysSignedOut(t *testing.T) {
	store := tokenRejectingStore{storage.NewMemoryStore()}
	sessions := session.NewManager(store)
	h := NewHandler(&fakeAuth{token: "QpwL5tke4Pnpja7X4"}, sessions)

	out := h.Login(context.Background(), "eve.holt@reqres.in", "cityslicka")
	if out.Redirect != "" {
		t.Errorf("redirect = %q, want none", out.Redirect)
	}
	if out.Form.Message != MsgLoginFailed {
		t.Errorf("message = %q, want %q", out.Form.Message, MsgLoginFailed)
	}
	s, _ := sessions.Load(context.Background())
	if s.Active() {
		t.Errorf("session active after failed save: %+v", s)
	}
}
