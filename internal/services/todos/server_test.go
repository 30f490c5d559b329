package todos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewServerRequiresHTTPAddress(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, backends()[0].provider(t))
	cfg.HTTPAddr = "  "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("expected error for empty http address")
	}
}

func TestNewHandlerRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected error without storage provider")
	}
	cfg := newTestConfig(t, backends()[0].provider(t))
	cfg.Signer = nil
	if _, err := NewHandler(cfg); err == nil {
		t.Fatal("expected error without session signer")
	}
}

func TestUpReportsOKWithoutSession(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(newTestConfig(t, backends()[0].provider(t)))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("GET /up = %d %q", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Request-ID"); !strings.HasPrefix(got, "todos-") {
		t.Fatalf("X-Request-ID = %q", got)
	}
	if got := rr.Result().Cookies(); len(got) != 0 {
		t.Fatalf("cookies = %+v, want none", got)
	}
}

func TestStaticAssetsAreServed(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(newTestConfig(t, backends()[0].provider(t)))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	for _, path := range []string{"/static/app.css", "/static/app.js"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK || rr.Body.Len() == 0 {
			t.Fatalf("GET %s = %d (%d bytes)", path, rr.Code, rr.Body.Len())
		}
	}
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(newTestConfig(t, backends()[0].provider(t)))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `id="error-state"`) {
		t.Fatalf("body missing error state: %q", rr.Body.String())
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), newTestConfig(t, backends()[0].provider(t)))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}

func TestListenAndServeRejectsNilServer(t *testing.T) {
	t.Parallel()

	var server *Server
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}
