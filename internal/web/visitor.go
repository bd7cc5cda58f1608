package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/ziadkadry99/learnhub/internal/session"
	"github.com/ziadkadry99/learnhub/internal/storage"
	"github.com/ziadkadry99/learnhub/internal/theme"
)

// VisitorCookie names the cookie carrying the signed visitor id.
const VisitorCookie = "learnhub_visitor"

const visitorTTL = 365 * 24 * time.Hour

// visitor is the per-request view of one browser's persisted state.
type visitor struct {
	id       string
	store    storage.Store
	sessions *session.Manager
	themes   *theme.Controller
}

type visitorKey struct{}

func visitorFrom(ctx context.Context) *visitor {
	v, _ := ctx.Value(visitorKey{}).(*visitor)
	return v
}

// signVisitor returns an HS256 token whose subject is id.
func signVisitor(secret []byte, id string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(visitorTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseVisitor returns the visitor id in a token signed with secret.
func parseVisitor(secret []byte, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", errors.New("invalid visitor token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("visitor subject: %w", err)
	}
	return claims.Subject, nil
}

// withVisitor resolves the visitor cookie, issuing a new identity when it
// is missing or does not verify, and attaches the visitor's stores.
func (h *Handler) withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(VisitorCookie); err == nil {
			if id, err = parseVisitor(h.opts.Secret, c.Value); err != nil {
				log.Printf("web: discarding visitor cookie: %v", err)
				id = ""
			}
		}
		if id == "" {
			id = uuid.NewString()
			signed, err := signVisitor(h.opts.Secret, id, time.Now())
			if err != nil {
				http.Error(w, "could not issue visitor id", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookie,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(visitorTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		if err := h.visitors.Touch(r.Context(), id); err != nil {
			log.Printf("web: %v", err)
		}

		store := h.visitors.For(id)
		v := &visitor{
			id:       id,
			store:    store,
			sessions: session.NewManager(store),
			themes:   theme.NewController(store),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, v)))
	})
}
