package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookdeck/internal/backend"
	"bookdeck/internal/handlers"
	"bookdeck/internal/i18n"
	"bookdeck/internal/middleware"
	"bookdeck/internal/models"
	"bookdeck/internal/render"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.BookList{})
	}))
	t.Cleanup(ts.Close)

	tr, err := i18n.Load()
	if err != nil {
		t.Fatalf("i18n.Load() returned error: %v", err)
	}
	rn, err := render.New(true, tr)
	if err != nil {
		t.Fatalf("render.New() returned error: %v", err)
	}

	api := backend.New(ts.URL, 0)
	books := handlers.NewBooks(api, rn, nil, nil, tr)
	analytics := handlers.NewAnalytics(api, rn, nil, tr)
	prefs := handlers.NewPrefs(nil, tr)

	return New(nil, books, analytics, prefs)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body: %s", rec.Body.String())
	}
}

func TestListPageServes(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Book Library") {
		t.Error("expected the list page")
	}
}

func TestGetIssuesCSRFCookie(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a CSRF cookie on first page load")
	}
}

func TestMutationRequiresCSRFToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("POST", "/prefs", strings.NewReader("sidebar=collapsed"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 without CSRF token", rec.Code)
	}
}

func TestMutationWithCSRFToken(t *testing.T) {
	r := newTestRouter(t)

	// First load issues the token cookie.
	seed := httptest.NewRecorder()
	r.ServeHTTP(seed, httptest.NewRequest("GET", "/", nil))
	var token string
	for _, c := range seed.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no CSRF cookie issued")
	}

	form := url.Values{"sidebar": {"collapsed"}, middleware.CSRFFormField: {token}}
	req := httptest.NewRequest("POST", "/prefs", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303 redirect", rec.Code)
	}
}

func TestStaticAssetsServed(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.css", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestUnknownBookRouteIs404(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/no-such-page", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
