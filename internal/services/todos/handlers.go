package todos

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/todos/internal/services/todos/platform/errors"
	"github.com/louisbranch/todos/internal/services/todos/platform/flash"
	"github.com/louisbranch/todos/internal/services/todos/platform/httpx"
	todoi18n "github.com/louisbranch/todos/internal/services/todos/platform/i18n"
	"github.com/louisbranch/todos/internal/services/todos/platform/pagerender"
	"github.com/louisbranch/todos/internal/services/todos/platform/weberror"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
	"github.com/louisbranch/todos/internal/services/todos/templates"
	"github.com/louisbranch/todos/internal/sessions"
	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/todo"
)

const (
	noticeListCreated  = "web.todos.notice.list_created"
	noticeListUpdated  = "web.todos.notice.list_updated"
	noticeListDeleted  = "web.todos.notice.list_deleted"
	noticeTodoAdded    = "web.todos.notice.todo_added"
	noticeTodoUpdated  = "web.todos.notice.todo_updated"
	noticeTodoDeleted  = "web.todos.notice.todo_deleted"
	noticeAllCompleted = "web.todos.notice.all_completed"
	noticeListNotFound = "web.todos.notice.list_not_found"
)

type handlers struct {
	logger Logger
}

func (h handlers) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodGet+" /{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Lists, h.handleLists)
	mux.HandleFunc(http.MethodPost+" "+routepath.Lists, h.handleCreateList)
	mux.HandleFunc(http.MethodGet+" "+routepath.NewList, h.handleNewList)
	mux.HandleFunc(http.MethodGet+" "+routepath.ListPattern, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.EditPattern, h.handleEditList)
	mux.HandleFunc(http.MethodPost+" "+routepath.EditPattern, h.handleUpdateList)
	mux.HandleFunc(http.MethodPost+" "+routepath.DeletePattern, h.handleDeleteList)
	mux.HandleFunc(http.MethodPost+" "+routepath.TodosPattern, h.handleCreateTodo)
	mux.HandleFunc(http.MethodPost+" "+routepath.TodoPattern, h.handleUpdateTodo)
	mux.HandleFunc(http.MethodPost+" "+routepath.DeleteTodoPattern, h.handleDeleteTodo)
	mux.HandleFunc(http.MethodPost+" "+routepath.MarkAllCompletedPattern, h.handleMarkAllCompleted)
	mux.HandleFunc("/", h.handleNotFound)
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}

func (h handlers) handleLists(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	summaries, err := store.ListSummaries(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	loc, lang := todoi18n.ResolveLocalizer(w, r)
	h.writePage(w, r, pagerender.Page{
		Title:    templates.T(loc, "web.todos.lists.heading"),
		Fragment: templates.ListsIndex(todo.SortSummaries(summaries), loc),
		Loc:      loc,
		Lang:     lang,
	})
}

func (h handlers) handleNewList(w http.ResponseWriter, r *http.Request) {
	loc, lang := todoi18n.ResolveLocalizer(w, r)
	h.writePage(w, r, pagerender.Page{
		Title:    templates.T(loc, "web.todos.new_list.heading"),
		Fragment: templates.NewListForm("", loc),
		Loc:      loc,
		Lang:     lang,
	})
}

func (h handlers) handleCreateList(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	entered := r.PostFormValue("list_name")
	name := strings.TrimSpace(entered)
	lists, err := store.AllLists(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if invalid := validationError(todo.ListNameError(name, lists)); invalid != nil {
		loc, lang := todoi18n.ResolveLocalizer(w, r)
		h.writeInvalid(w, r, invalid, pagerender.Page{
			Title:    templates.T(loc, "web.todos.new_list.heading"),
			Fragment: templates.NewListForm(entered, loc),
			Loc:      loc,
			Lang:     lang,
		})
		return
	}
	if _, err := store.CreateList(r.Context(), name); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeListCreated))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, store)
	if !ok {
		return
	}
	h.writeListPage(w, r, list, nil)
}

func (h handlers) handleEditList(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, store)
	if !ok {
		return
	}
	loc, lang := todoi18n.ResolveLocalizer(w, r)
	h.writePage(w, r, pagerender.Page{
		Title:    templates.T(loc, "web.todos.edit_list.heading", list.Name),
		Fragment: templates.EditListForm(list, list.Name, loc),
		Loc:      loc,
		Lang:     lang,
	})
}

func (h handlers) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, store)
	if !ok {
		return
	}
	entered := r.PostFormValue("new_list_name")
	name := strings.TrimSpace(entered)
	lists, err := store.AllLists(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if invalid := validationError(todo.ListNameError(name, lists)); invalid != nil {
		loc, lang := todoi18n.ResolveLocalizer(w, r)
		h.writeInvalid(w, r, invalid, pagerender.Page{
			Title:    templates.T(loc, "web.todos.edit_list.heading", list.Name),
			Fragment: templates.EditListForm(list, entered, loc),
			Loc:      loc,
			Lang:     lang,
		})
		return
	}
	if err := store.UpdateListName(r.Context(), list.ID, name); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeListUpdated))
	httpx.WriteRedirect(w, r, routepath.List(list.ID))
}

func (h handlers) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.listNotFound(w, r)
		return
	}
	if err := store.DeleteList(r.Context(), listID); err != nil {
		h.writeError(w, r, err)
		return
	}
	if httpx.IsXHRRequest(r) {
		if err := httpx.WriteText(w, http.StatusOK, routepath.Lists); err != nil {
			h.logger.Warn("write delete list response", "err", err)
		}
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeListDeleted))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	list, ok := h.loadList(w, r, store)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.PostFormValue("todo"))
	if invalid := validationError(todo.TodoNameError(name)); invalid != nil {
		h.writeListPage(w, r, list, invalid)
		return
	}
	if _, err := store.CreateTodo(r.Context(), list.ID, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.listNotFound(w, r)
			return
		}
		h.writeError(w, r, err)
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeTodoAdded))
	httpx.WriteRedirect(w, r, routepath.List(list.ID))
}

func (h handlers) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	listID, todoID, ok := todoPathIDs(r)
	if !ok {
		h.listNotFound(w, r)
		return
	}
	completed := r.PostFormValue("completed") == "true"
	if err := store.UpdateTodoStatus(r.Context(), listID, todoID, completed); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeTodoUpdated))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	listID, todoID, ok := todoPathIDs(r)
	if !ok {
		h.listNotFound(w, r)
		return
	}
	if err := store.DeleteTodo(r.Context(), listID, todoID); err != nil {
		h.writeError(w, r, err)
		return
	}
	if httpx.IsXHRRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeTodoDeleted))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleMarkAllCompleted(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	listID, ok := pathID(r, "listID")
	if !ok {
		h.listNotFound(w, r)
		return
	}
	if err := store.MarkAllTodosCompleted(r.Context(), listID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.flash(r, flash.NoticeSuccess(noticeAllCompleted))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

// loadList resolves the list named in the path. On a miss it flashes the
// not-found notice and redirects to the index.
func (h handlers) loadList(w http.ResponseWriter, r *http.Request, store storage.Store) (todo.List, bool) {
	listID, ok := pathID(r, "listID")
	if !ok {
		h.listNotFound(w, r)
		return todo.List{}, false
	}
	list, found, err := store.FindList(r.Context(), listID)
	if err != nil {
		h.writeError(w, r, err)
		return todo.List{}, false
	}
	if !found {
		h.listNotFound(w, r)
		return todo.List{}, false
	}
	return list, true
}

func (h handlers) writeListPage(w http.ResponseWriter, r *http.Request, list todo.List, invalid error) {
	loc, lang := todoi18n.ResolveLocalizer(w, r)
	page := pagerender.Page{
		Title:    list.Name,
		Fragment: templates.ListPage(list, loc),
		Loc:      loc,
		Lang:     lang,
	}
	if invalid != nil {
		h.writeInvalid(w, r, invalid, page)
		return
	}
	h.writePage(w, r, page)
}

func (h handlers) writeInvalid(w http.ResponseWriter, r *http.Request, invalid error, page pagerender.Page) {
	notice := flash.NoticeError(apperrors.LocalizationKey(invalid))
	page.Notice = &notice
	page.StatusCode = apperrors.HTTPStatus(invalid)
	h.writePage(w, r, page)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, page); err != nil {
		h.logger.Error("render page", "path", r.URL.Path, "err", err)
	}
}

func (h handlers) listNotFound(w http.ResponseWriter, r *http.Request) {
	h.flash(r, flash.NoticeError(noticeListNotFound))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) flash(r *http.Request, notice flash.Notice) {
	s, ok := sessions.FromContext(r.Context())
	if !ok {
		return
	}
	if err := flash.Write(s, notice); err != nil {
		h.logger.Warn("write flash notice", "err", err)
	}
}

func (h handlers) store(w http.ResponseWriter, r *http.Request) (storage.Store, bool) {
	store, ok := storeFromRequest(r)
	if !ok {
		h.writeError(w, r, apperrors.E(apperrors.KindUnavailable, "storage unavailable"))
	}
	return store, ok
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	weberror.WriteError(w, r, err)
}

// validationError maps validator sentinels onto localized input errors.
func validationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, todo.ErrTodoNameLength):
		return apperrors.EK(apperrors.KindInvalidInput, "errors.todo.name_length", err.Error())
	case errors.Is(err, todo.ErrListNameLength):
		return apperrors.EK(apperrors.KindInvalidInput, "errors.list.name_length", err.Error())
	case errors.Is(err, todo.ErrListNameTaken):
		return apperrors.EK(apperrors.KindInvalidInput, "errors.list.name_taken", err.Error())
	default:
		return apperrors.Wrap(apperrors.KindInvalidInput, "", err)
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func todoPathIDs(r *http.Request) (int64, int64, bool) {
	listID, ok := pathID(r, "listID")
	if !ok {
		return 0, 0, false
	}
	todoID, ok := pathID(r, "todoID")
	if !ok {
		return 0, 0, false
	}
	return listID, todoID, true
}
