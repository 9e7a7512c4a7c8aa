package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// csrfCookie runs a GET through the middleware and returns the issued token cookie.
func csrfCookie(t *testing.T) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("no CSRF cookie issued")
	return nil
}

func TestCSRFIssuesCookieOnGet(t *testing.T) {
	cookie := csrfCookie(t)
	if len(cookie.Value) != csrfTokenLength*2 {
		t.Errorf("token length = %d, want %d", len(cookie.Value), csrfTokenLength*2)
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	cookie := csrfCookie(t)

	req := httptest.NewRequest("POST", "/books", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCSRFAcceptsHeaderToken(t *testing.T) {
	cookie := csrfCookie(t)

	req := httptest.NewRequest("POST", "/books", nil)
	req.AddCookie(cookie)
	req.Header.Set(CSRFHeaderName, cookie.Value)
	rec := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCSRFAcceptsFormFieldToken(t *testing.T) {
	cookie := csrfCookie(t)

	form := url.Values{CSRFFormField: {cookie.Value}}
	req := httptest.NewRequest("POST", "/books", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	cookie := csrfCookie(t)

	req := httptest.NewRequest("POST", "/books", nil)
	req.AddCookie(cookie)
	req.Header.Set(CSRFHeaderName, "wrong-token")
	rec := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
