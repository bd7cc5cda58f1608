// Package theme resolves and toggles the light/dark presentation flag.
package theme

import (
	"context"
	"log"

	"github.com/ziadkadry99/learnhub/internal/storage"
)

// Theme is the presentation flag applied to the document root.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == Dark }

// Parse maps a stored value to a Theme. Unknown values are not ok.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Controller reads and persists the theme through a Store.
type Controller struct {
	store storage.Store
}

// NewController creates a Controller over the given store.
func NewController(store storage.Store) *Controller {
	return &Controller{store: store}
}

// Initialize returns the stored theme, or the ambient preference when
// nothing valid is stored. Storage errors count as nothing stored.
func (c *Controller) Initialize(ctx context.Context, prefersDark bool) Theme {
	v, ok, err := c.store.Get(ctx, storage.KeyTheme)
	if err != nil {
		log.Printf("theme: reading preference: %v", err)
	}
	if ok && err == nil {
		if t, valid := Parse(v); valid {
			return t
		}
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// Toggle flips current and persists the result.
func (c *Controller) Toggle(ctx context.Context, current Theme) Theme {
	next := current.Toggled()
	c.Set(ctx, next)
	return next
}

// Set persists t. A failed write is logged and otherwise ignored.
func (c *Controller) Set(ctx context.Context, t Theme) {
	if err := c.store.Set(ctx, storage.KeyTheme, string(t)); err != nil {
		log.Printf("theme: saving preference: %v", err)
	}
}
