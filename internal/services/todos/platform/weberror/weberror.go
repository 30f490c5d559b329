// Package weberror renders error responses for todo pages.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/todos/internal/services/todos/platform/errors"
	"github.com/louisbranch/todos/internal/services/todos/platform/httpx"
	todoi18n "github.com/louisbranch/todos/internal/services/todos/platform/i18n"
	"github.com/louisbranch/todos/internal/services/todos/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc todoi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized error page.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	loc, lang := todoi18n.ResolveLocalizer(w, r)
	page := templates.PageContext{
		Lang:      lang,
		Loc:       loc,
		Languages: todoi18n.LanguageOptions(loc, r, lang),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	title := templates.ErrorPageTitle(statusCode, loc)
	ctx := templ.WithChildren(httpx.RequestContext(r), templates.ErrorState(statusCode, loc))
	if err := templates.Layout(title, page).Render(ctx, w); err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

// WriteError writes err as an error page or, for client errors, plain text.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode)
		return
	}
	loc, _ := todoi18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
