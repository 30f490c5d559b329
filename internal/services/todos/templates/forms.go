package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
	"github.com/louisbranch/todos/internal/todo"
)

// NewListForm renders the create-list form prefilled with name.
func NewListForm(name string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h2>")
		h.text(T(loc, "web.todos.new_list.heading"))
		h.raw(`</h2><form method="post"`)
		h.attr("action", routepath.Lists)
		h.raw(`><dl><dt><label for="list_name">`)
		h.text(T(loc, "web.todos.new_list.label"))
		h.raw(`</label></dt><dd><input name="list_name" id="list_name" type="text"`)
		h.attr("value", name)
		h.raw(`></dd></dl>`)
		writeFormActions(h, routepath.Lists, loc)
		h.raw("</form>")
		return h.err
	})
}

// EditListForm renders the rename form for list prefilled with name.
func EditListForm(list todo.List, name string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section><header><h2>")
		h.text(T(loc, "web.todos.edit_list.heading", list.Name))
		h.raw(`</h2><form class="delete" method="post"`)
		h.attr("action", routepath.DeleteList(list.ID))
		h.raw(`><button type="submit">`)
		h.text(T(loc, "web.todos.edit_list.delete"))
		h.raw(`</button></form></header><form method="post"`)
		h.attr("action", routepath.EditList(list.ID))
		h.raw(`><dl><dt><label for="new_list_name">`)
		h.text(T(loc, "web.todos.edit_list.label"))
		h.raw(`</label></dt><dd><input name="new_list_name" id="new_list_name" type="text"`)
		h.attr("value", name)
		h.raw(`></dd></dl>`)
		writeFormActions(h, routepath.List(list.ID), loc)
		h.raw("</form></section>")
		return h.err
	})
}

func writeFormActions(h *htmlWriter, cancel string, loc Localizer) {
	h.raw(`<fieldset class="actions"><button type="submit">`)
	h.text(T(loc, "web.todos.form.save"))
	h.raw("</button><a")
	h.attr("href", cancel)
	h.raw(">")
	h.text(T(loc, "web.todos.form.cancel"))
	h.raw("</a></fieldset>")
}
