package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/todos/internal/services/todos/platform/requestmeta"
)

func TestWriteThenRead(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	expires := time.Now().Add(time.Hour)
	Write(rr, req, " token-1 ", expires, requestmeta.SchemePolicy{})

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name || cookie.Value != "token-1" {
		t.Fatalf("cookie = %s=%q", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly || cookie.Secure {
		t.Fatalf("cookie flags httpOnly=%v secure=%v", cookie.HttpOnly, cookie.Secure)
	}

	next := httptest.NewRequest(http.MethodGet, "/lists", nil)
	next.AddCookie(cookie)
	got, ok := Read(next)
	if !ok || got != "token-1" {
		t.Fatalf("Read() = %q, %v", got, ok)
	}
}

func TestReadMissingOrBlank(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatal("nil request should have no cookie")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: "  "})
	if _, ok := Read(req); ok {
		t.Fatal("blank cookie should be ignored")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Clear(rr, httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{})
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want one expired cookie", cookies)
	}
}
