package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
	"github.com/louisbranch/todos/internal/todo"
)

// ListsIndex renders every list with its completion progress.
// Callers pass summaries already in display order.
func ListsIndex(summaries []todo.Summary, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section><h2>")
		h.text(T(loc, "web.todos.lists.heading"))
		h.raw(`</h2><a class="action"`)
		h.attr("href", routepath.NewList)
		h.raw(">")
		h.text(T(loc, "web.todos.lists.new"))
		h.raw("</a>")
		if len(summaries) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(loc, "web.todos.lists.empty"))
			h.raw("</p></section>")
			return h.err
		}
		h.raw(`<ul id="lists">`)
		for _, summary := range summaries {
			h.raw("<li")
			if class := classFor(summary.AllCompleted()); class != "" {
				h.attr("class", class)
			}
			h.raw("><a")
			h.attr("href", routepath.List(summary.ID))
			h.raw("><h3>")
			h.text(summary.Name)
			h.raw("</h3><p>")
			h.text(T(loc, "web.todos.lists.progress", summary.TodosRemainingCount, summary.TodosCount))
			h.raw("</p></a></li>")
		}
		h.raw("</ul></section>")
		return h.err
	})
}
