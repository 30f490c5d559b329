package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
)

// ErrorPageTitle returns the localized title for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, "errors.page.title", statusCode)
}

// ErrorState renders the body of an error page.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		key := "errors.page.internal"
		if statusCode == http.StatusNotFound {
			key = "errors.page.not_found"
		}
		h := &htmlWriter{w: w}
		h.raw(`<section id="error-state"><h2>`)
		h.text(ErrorPageTitle(statusCode, loc))
		h.raw("</h2><p>")
		h.text(T(loc, key))
		h.raw("</p><a")
		h.attr("href", routepath.Lists)
		h.raw(">")
		h.text(T(loc, "errors.page.back"))
		h.raw("</a></section>")
		return h.err
	})
}
