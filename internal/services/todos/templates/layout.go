package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
)

// ComposePageTitle appends the application name to a page title.
func ComposePageTitle(title string, loc Localizer) string {
	app := T(loc, "web.todos.title")
	title = strings.TrimSpace(title)
	if title == "" || title == app {
		return app
	}
	return title + " | " + app
}

// Layout renders the document shell around the children in ctx.
func Layout(title string, page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		h.raw("<!doctype html>\n<html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(ComposePageTitle(title, page.Loc))
		h.raw(`</title><link rel="stylesheet"`)
		h.attr("href", routepath.Static("app.css"))
		h.raw(`></head><body><header id="header"><h1><a`)
		h.attr("href", routepath.Lists)
		h.raw(">")
		h.text(T(page.Loc, "web.todos.title"))
		h.raw(`</a></h1><nav class="languages"`)
		h.attr("aria-label", T(page.Loc, "web.todos.nav.language"))
		h.raw(">")
		for _, option := range page.Languages {
			h.raw("<a")
			h.attr("href", option.URL)
			h.attr("hreflang", option.Tag)
			if option.Active {
				h.attr("class", "active")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw("</nav></header>")
		if page.Notice != nil && page.Notice.Message != "" {
			h.raw(`<div id="flash"`)
			h.attr("class", "flash "+page.Notice.Kind)
			h.raw(` role="status"><p>`)
			h.text(page.Notice.Message)
			h.raw("</p></div>")
		}
		h.raw(`<main id="main">`)
		if h.err != nil {
			return h.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main><script`)
		h.attr("src", routepath.Static("app.js"))
		h.raw("></script></body></html>")
		return h.err
	})
}
