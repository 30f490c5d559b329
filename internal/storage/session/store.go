package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/todo"
)

// ListsKey is the session value holding the visitor's lists.
const ListsKey = "lists"

// Store keeps lists in memory for one session.
type Store struct {
	lists []todo.List
	dirty bool
}

// New returns a store seeded with lists. The store owns the slice afterwards.
func New(lists []todo.List) *Store {
	if lists == nil {
		lists = []todo.List{}
	}
	return &Store{lists: lists}
}

// Lists returns the current lists in insertion order.
func (s *Store) Lists() []todo.List {
	return s.lists
}

// Dirty reports whether any mutation ran since the store was created.
func (s *Store) Dirty() bool {
	return s.dirty
}

// FindList returns a copy of the list with listID.
func (s *Store) FindList(_ context.Context, listID int64) (todo.List, bool, error) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return todo.List{}, false, nil
	}
	return cloneList(s.lists[idx]), true, nil
}

// AllLists returns copies of every list in insertion order.
func (s *Store) AllLists(_ context.Context) ([]todo.List, error) {
	out := make([]todo.List, 0, len(s.lists))
	for _, list := range s.lists {
		out = append(out, cloneList(list))
	}
	return out, nil
}

// ListSummaries returns aggregate counts for every list in insertion order.
func (s *Store) ListSummaries(_ context.Context) ([]todo.Summary, error) {
	return todo.Summaries(s.lists), nil
}

// AllTodosForList returns a copy of the todos of one list.
func (s *Store) AllTodosForList(_ context.Context, listID int64) ([]todo.Todo, error) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return []todo.Todo{}, nil
	}
	return slices.Clone(s.lists[idx].Todos), nil
}

// CreateList appends an empty list named name.
func (s *Store) CreateList(_ context.Context, name string) (todo.List, error) {
	list := todo.List{ID: todo.NextListID(s.lists), Name: name, Todos: []todo.Todo{}}
	s.lists = append(s.lists, list)
	s.dirty = true
	return cloneList(list), nil
}

// DeleteList removes a list and its todos.
func (s *Store) DeleteList(_ context.Context, listID int64) error {
	before := len(s.lists)
	s.lists = slices.DeleteFunc(s.lists, func(list todo.List) bool { return list.ID == listID })
	if len(s.lists) != before {
		s.dirty = true
	}
	return nil
}

// UpdateListName renames a list.
func (s *Store) UpdateListName(_ context.Context, listID int64, name string) error {
	idx := s.listIndex(listID)
	if idx < 0 {
		return nil
	}
	s.lists[idx].Name = name
	s.dirty = true
	return nil
}

// CreateTodo appends an incomplete todo to a list.
func (s *Store) CreateTodo(_ context.Context, listID int64, name string) (todo.Todo, error) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return todo.Todo{}, fmt.Errorf("create todo in list %d: %w", listID, storage.ErrNotFound)
	}
	item := todo.Todo{ID: todo.NextTodoID(s.lists[idx].Todos), Name: name}
	s.lists[idx].Todos = append(s.lists[idx].Todos, item)
	s.dirty = true
	return item, nil
}

// DeleteTodo removes one todo from a list.
func (s *Store) DeleteTodo(_ context.Context, listID, todoID int64) error {
	idx := s.listIndex(listID)
	if idx < 0 {
		return nil
	}
	list := &s.lists[idx]
	before := len(list.Todos)
	list.Todos = slices.DeleteFunc(list.Todos, func(item todo.Todo) bool { return item.ID == todoID })
	if len(list.Todos) != before {
		s.dirty = true
	}
	return nil
}

// UpdateTodoStatus sets the completed flag of one todo.
func (s *Store) UpdateTodoStatus(_ context.Context, listID, todoID int64, completed bool) error {
	idx := s.listIndex(listID)
	if idx < 0 {
		return nil
	}
	list := &s.lists[idx]
	for i := range list.Todos {
		if list.Todos[i].ID == todoID {
			list.Todos[i].Completed = completed
			s.dirty = true
			return nil
		}
	}
	return nil
}

// MarkAllTodosCompleted completes every todo of one list.
func (s *Store) MarkAllTodosCompleted(_ context.Context, listID int64) error {
	idx := s.listIndex(listID)
	if idx < 0 {
		return nil
	}
	list := &s.lists[idx]
	for i := range list.Todos {
		list.Todos[i].Completed = true
	}
	s.dirty = true
	return nil
}

func (s *Store) listIndex(listID int64) int {
	return slices.IndexFunc(s.lists, func(list todo.List) bool { return list.ID == listID })
}

func cloneList(list todo.List) todo.List {
	list.Todos = slices.Clone(list.Todos)
	if list.Todos == nil {
		list.Todos = []todo.Todo{}
	}
	return list
}

var _ storage.Store = (*Store)(nil)
