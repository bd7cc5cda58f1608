// Package forms drives the login, signup and forgot-password forms.
package forms

// Form is the visible state of one submit form.
type Form struct {
	Name      string
	IdleLabel string
	BusyLabel string
	Disabled  bool
	Label     string
	Message   string

	observe func(Form)
}

// Observer is called with a copy of the form after every transition.
type Observer func(Form)

// Form names.
const (
	NameLogin  = "login"
	NameSignup = "signup"
	NameForgot = "forgot"
)

// New returns an idle form.
func New(name, idle, busy string) *Form {
	return &Form{Name: name, IdleLabel: idle, BusyLabel: busy, Label: idle}
}

// NewLogin, NewSignup and NewForgot return the three auth forms in their idle state.
func NewLogin() *Form  { return New(NameLogin, "Sign In", "Signing in...") }
func NewSignup() *Form { return New(NameSignup, "Sign Up", "Creating...") }
func NewForgot() *Form { return New(NameForgot, "Send Reset Link", "Sending...") }

// Begin disables the submit control and clears the message.
func (f *Form) Begin() {
	f.Disabled = true
	f.Label = f.BusyLabel
	f.Message = ""
	f.notify()
}

// Finish re-enables the submit control and shows msg.
func (f *Form) Finish(msg string) {
	f.Disabled = false
	f.Label = f.IdleLabel
	f.Message = msg
	f.notify()
}

func (f *Form) notify() {
	if f.observe != nil {
		c := *f
		c.observe = nil
		f.observe(c)
	}
}
