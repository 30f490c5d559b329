package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/todos/internal/services/todos/platform/flash"
	"github.com/louisbranch/todos/internal/sessions"
)

func TestWritePageRendersFullPageWithAppShell(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	rr := httptest.NewRecorder()

	err := WritePage(rr, req, Page{
		Title:      "Lists",
		StatusCode: http.StatusAccepted,
		Fragment:   textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="main"`, `id="fragment-root"`, "<title>Lists | Todo Tracker</title>"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWritePageConsumesFlashNotice(t *testing.T) {
	t.Parallel()

	s, err := sessions.New(time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("sessions.New() error = %v", err)
	}
	if err := flash.Write(s, flash.NoticeSuccess("web.todos.notice.list_created")); err != nil {
		t.Fatalf("flash.Write() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	req = req.WithContext(sessions.WithSession(req.Context(), s))
	rr := httptest.NewRecorder()
	if err := WritePage(rr, req, Page{Title: "Lists"}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if !strings.Contains(rr.Body.String(), "The list has been created.") {
		t.Fatalf("body missing flash message: %q", rr.Body.String())
	}
	if _, ok := flash.ReadAndClear(s); ok {
		t.Fatal("flash notice was not cleared")
	}
}

func TestWritePageNoticeOverrideConsumesPendingFlash(t *testing.T) {
	t.Parallel()

	s, _ := sessions.New(time.Now(), time.Hour)
	_ = flash.Write(s, flash.NoticeSuccess("web.todos.notice.todo_added"))
	req := httptest.NewRequest(http.MethodPost, "/lists?lang=pt-BR", nil)
	req = req.WithContext(sessions.WithSession(req.Context(), s))
	rr := httptest.NewRecorder()
	notice := flash.NoticeError("errors.list.name_taken")
	if err := WritePage(rr, req, Page{StatusCode: http.StatusBadRequest, Notice: &notice}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `class="flash error"`) {
		t.Fatalf("body missing error notice: %q", body)
	}
	if !strings.Contains(body, `<html lang="pt-BR"`) {
		t.Fatalf("body not rendered in pt-BR: %q", body)
	}
	if strings.Contains(body, "flash success") {
		t.Fatalf("body shows the pending notice alongside the override: %q", body)
	}
	if _, ok := flash.ReadAndClear(s); ok {
		t.Fatal("pending flash notice should be consumed by the override page")
	}
}

type textComponent string

func (c textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}
