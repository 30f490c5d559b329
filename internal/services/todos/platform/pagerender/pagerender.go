// Package pagerender centralizes todo page rendering behavior.
package pagerender

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/todos/internal/services/todos/platform/flash"
	"github.com/louisbranch/todos/internal/services/todos/platform/httpx"
	todoi18n "github.com/louisbranch/todos/internal/services/todos/platform/i18n"
	"github.com/louisbranch/todos/internal/services/todos/templates"
	"github.com/louisbranch/todos/internal/sessions"
)

// Page describes one full-page response.
type Page struct {
	Title      string
	StatusCode int
	// Notice replaces any pending flash notice when set.
	Notice   *flash.Notice
	Fragment templ.Component
	// Loc and Lang reuse a localizer the handler already resolved.
	Loc  todoi18n.Localizer
	Lang string
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the app layout. The pending flash notice is
// consumed unless the page supplies its own.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	loc, lang := page.Loc, page.Lang
	if loc == nil || lang == "" {
		loc, lang = todoi18n.ResolveLocalizer(w, r)
	}
	ctx := httpx.RequestContext(r)
	pageContext := templates.PageContext{
		Lang:      lang,
		Loc:       loc,
		Languages: todoi18n.LanguageOptions(loc, r, lang),
		Notice:    resolveNotice(ctx, loc, page.Notice),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return templates.Layout(page.Title, pageContext).Render(templ.WithChildren(ctx, fragment), w)
}

// resolveNotice consumes any pending flash; an override replaces it.
func resolveNotice(ctx context.Context, loc todoi18n.Localizer, override *flash.Notice) *templates.Notice {
	notice, ok := flash.Notice{}, false
	if s, found := sessions.FromContext(ctx); found {
		notice, ok = flash.ReadAndClear(s)
	}
	if override != nil {
		notice, ok = *override, true
	}
	if !ok || notice.Key == "" {
		return nil
	}
	return &templates.Notice{Kind: string(notice.Kind), Message: templates.T(loc, notice.Key)}
}
