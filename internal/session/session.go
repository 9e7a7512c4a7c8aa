// Package session provides the Valkey-backed viewer session. There is no
// authentication in the dashboard; the session only carries advisory UI
// state per browser: which books this browser already reviewed (to disable
// the duplicate-submission UI — the backend enforces the real rule), the
// sidebar collapse state, and the locale choice. Sessions are identified
// by a cookie and stored as JSON with automatic TTL expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the viewer cookie sent to the browser.
	CookieName = "bd_viewer"

	// DefaultTTL is how long viewer state lives in Valkey. The review
	// flags are advisory, so expiry simply re-enables the review form.
	DefaultTTL = 30 * 24 * time.Hour

	// keyPrefix namespaces viewer keys in Valkey.
	keyPrefix = "viewer:"

	// idLength is the byte length of the random viewer ID.
	idLength = 32
)

// Data is the viewer state payload stored in Valkey.
type Data struct {
	SubmittedReviews map[string]bool `json:"submitted_reviews,omitempty"`
	SidebarCollapsed bool            `json:"sidebar_collapsed,omitempty"`
	Locale           string          `json:"locale,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// HasReviewed reports whether this browser already submitted a review for
// the given book.
func (d *Data) HasReviewed(bookID string) bool {
	return d != nil && d.SubmittedReviews[bookID]
}

// Store manages viewer state lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a viewer store backed by the given Valkey client.
// When secure is true, cookies are marked HTTPS-only.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{
		client: client,
		ttl:    DefaultTTL,
		secure: secure,
	}
}

// Get loads the viewer state for the request. Returns nil when the browser
// has no session yet or it expired; that is a normal state, not an error.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("viewer get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("viewer unmarshal: %w", err)
	}
	return &data, nil
}

// MarkReviewed records that this browser submitted a review for the book,
// creating the session on first use.
func (s *Store) MarkReviewed(ctx context.Context, w http.ResponseWriter, r *http.Request, bookID string) error {
	return s.update(ctx, w, r, func(d *Data) {
		if d.SubmittedReviews == nil {
			d.SubmittedReviews = make(map[string]bool)
		}
		d.SubmittedReviews[bookID] = true
	})
}

// SetSidebarCollapsed persists the sidebar collapse preference.
func (s *Store) SetSidebarCollapsed(ctx context.Context, w http.ResponseWriter, r *http.Request, collapsed bool) error {
	return s.update(ctx, w, r, func(d *Data) {
		d.SidebarCollapsed = collapsed
	})
}

// SetLocale persists the viewer's locale choice.
func (s *Store) SetLocale(ctx context.Context, w http.ResponseWriter, r *http.Request, locale string) error {
	return s.update(ctx, w, r, func(d *Data) {
		d.Locale = locale
	})
}

// update loads (or creates) the viewer state, applies mutate, and writes
// it back with a fresh TTL. The cookie is set when a new session is made.
func (s *Store) update(ctx context.Context, w http.ResponseWriter, r *http.Request, mutate func(*Data)) error {
	id := ""
	if cookie, err := r.Cookie(CookieName); err == nil {
		id = cookie.Value
	}

	var data *Data
	if id != "" {
		existing, err := s.Get(ctx, r)
		if err != nil {
			return err
		}
		data = existing
	}

	if data == nil {
		data = &Data{CreatedAt: time.Now()}
	}
	if id == "" {
		newID, err := generateID()
		if err != nil {
			return fmt.Errorf("viewer id: %w", err)
		}
		id = newID
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(s.ttl.Seconds()),
		})
	}

	mutate(data)

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("viewer marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("viewer store: %w", err)
	}
	return nil
}

// generateID creates a cryptographically random viewer ID.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
