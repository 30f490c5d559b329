package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
	"github.com/louisbranch/todos/internal/todo"
)

// ListPage renders a list with its todos, completed todos last.
func ListPage(list todo.List, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section")
		h.attr("id", "todos")
		if class := classFor(list.AllCompleted()); class != "" {
			h.attr("class", class)
		}
		h.raw("><header><h2>")
		h.text(list.Name)
		h.raw(`</h2><ul class="actions"><li><form method="post"`)
		h.attr("action", routepath.MarkAllCompleted(list.ID))
		h.raw(`><button class="check" type="submit">`)
		h.text(T(loc, "web.todos.list.complete_all"))
		h.raw(`</button></form></li><li><a class="edit"`)
		h.attr("href", routepath.EditList(list.ID))
		h.raw(">")
		h.text(T(loc, "web.todos.list.edit"))
		h.raw("</a></li></ul></header>")

		todos := todo.SortTodos(list.Todos)
		if len(todos) == 0 {
			h.raw(`<p class="empty">`)
			h.text(T(loc, "web.todos.list.empty"))
			h.raw("</p>")
		} else {
			h.raw("<ul>")
			for _, item := range todos {
				writeTodo(h, list.ID, item, loc)
			}
			h.raw("</ul>")
		}

		h.raw(`</section><form method="post"`)
		h.attr("action", routepath.Todos(list.ID))
		h.raw(`><dl><dt><label for="todo">`)
		h.text(T(loc, "web.todos.list.new_todo_label"))
		h.raw(`</label></dt><dd><input name="todo" id="todo" type="text" maxlength="100"></dd></dl><fieldset class="actions"><button type="submit">`)
		h.text(T(loc, "web.todos.list.add"))
		h.raw(`</button></fieldset></form><a`)
		h.attr("href", routepath.Lists)
		h.raw(">")
		h.text(T(loc, "web.todos.nav.all_lists"))
		h.raw("</a>")
		return h.err
	})
}

func writeTodo(h *htmlWriter, listID int64, item todo.Todo, loc Localizer) {
	next := "true"
	if item.Completed {
		next = "false"
	}
	h.raw("<li")
	if class := classFor(item.Completed); class != "" {
		h.attr("class", class)
	}
	h.raw(`><form class="check" method="post"`)
	h.attr("action", routepath.Todo(listID, item.ID))
	h.raw(`><input type="hidden" name="completed"`)
	h.attr("value", next)
	h.raw(`><button type="submit">`)
	h.text(T(loc, "web.todos.list.toggle"))
	h.raw("</button></form><h3>")
	h.text(item.Name)
	h.raw(`</h3><form class="delete" method="post"`)
	h.attr("action", routepath.DeleteTodo(listID, item.ID))
	h.raw(`><button type="submit">`)
	h.text(T(loc, "web.todos.list.delete_todo"))
	h.raw("</button></form></li>")
}
