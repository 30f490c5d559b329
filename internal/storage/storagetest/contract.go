// Package storagetest provides the behavior suite every storage backend must
// pass.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/todo"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) storage.Store

// RunContract runs the shared Store behavior suite against newStore.
func RunContract(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("assigns increasing list ids", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		for want := int64(1); want <= 3; want++ {
			list := mustCreateList(t, store, "list-"+string(rune('a'+want-1)))
			if list.ID != want {
				t.Fatalf("CreateList() id = %d, want %d", list.ID, want)
			}
		}
		lists, err := store.AllLists(ctx)
		if err != nil {
			t.Fatalf("AllLists() error = %v", err)
		}
		if len(lists) != 3 {
			t.Fatalf("AllLists() len = %d, want 3", len(lists))
		}
	})

	t.Run("create then find round trips", func(t *testing.T) {
		store := newStore(t)
		created := mustCreateList(t, store, "X")
		found, ok, err := store.FindList(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if !ok {
			t.Fatal("FindList() found = false, want true")
		}
		if found.Name != "X" {
			t.Fatalf("FindList().Name = %q, want %q", found.Name, "X")
		}
		if len(found.Todos) != 0 {
			t.Fatalf("FindList().Todos len = %d, want 0", len(found.Todos))
		}
	})

	t.Run("find missing list reports not found", func(t *testing.T) {
		store := newStore(t)
		_, ok, err := store.FindList(context.Background(), 42)
		if err != nil {
			t.Fatalf("FindList() error = %v", err)
		}
		if ok {
			t.Fatal("FindList() found = true, want false")
		}
	})

	t.Run("delete list then find reports not found", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		list := mustCreateList(t, store, "Groceries")
		mustCreateTodo(t, store, list.ID, "Milk")
		if err := store.DeleteList(ctx, list.ID); err != nil {
			t.Fatalf("DeleteList() error = %v", err)
		}
		if _, ok, err := store.FindList(ctx, list.ID); err != nil || ok {
			t.Fatalf("FindList() after delete = (found %t, err %v), want (false, nil)", ok, err)
		}
		todos, err := store.AllTodosForList(ctx, list.ID)
		if err != nil {
			t.Fatalf("AllTodosForList() error = %v", err)
		}
		if len(todos) != 0 {
			t.Fatalf("AllTodosForList() len = %d, want 0", len(todos))
		}
	})

	t.Run("delete missing list is a no-op", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		mustCreateList(t, store, "Keep")
		if err := store.DeleteList(ctx, 99); err != nil {
			t.Fatalf("DeleteList() error = %v", err)
		}
		lists, err := store.AllLists(ctx)
		if err != nil {
			t.Fatalf("AllLists() error = %v", err)
		}
		if len(lists) != 1 {
			t.Fatalf("AllLists() len = %d, want 1", len(lists))
		}
	})

	t.Run("update list name", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		list := mustCreateList(t, store, "Old")
		if err := store.UpdateListName(ctx, list.ID, "New"); err != nil {
			t.Fatalf("UpdateListName() error = %v", err)
		}
		found := mustFindList(t, store, list.ID)
		if found.Name != "New" {
			t.Fatalf("Name = %q, want %q", found.Name, "New")
		}
		if err := store.UpdateListName(ctx, 99, "Ghost"); err != nil {
			t.Fatalf("UpdateListName() missing list error = %v", err)
		}
	})

	t.Run("create todo starts incomplete", func(t *testing.T) {
		store := newStore(t)
		list := mustCreateList(t, store, "Chores")
		first := mustCreateTodo(t, store, list.ID, "Dishes")
		second := mustCreateTodo(t, store, list.ID, "Laundry")
		if first.Completed || second.Completed {
			t.Fatal("new todos must start incomplete")
		}
		if first.ID == second.ID {
			t.Fatalf("todo ids must be unique within a list, got %d twice", first.ID)
		}
		found := mustFindList(t, store, list.ID)
		if len(found.Todos) != 2 {
			t.Fatalf("Todos len = %d, want 2", len(found.Todos))
		}
		if found.Todos[0].Name != "Dishes" || found.Todos[1].Name != "Laundry" {
			t.Fatalf("Todos = %+v, want creation order", found.Todos)
		}
	})

	t.Run("create todo in missing list", func(t *testing.T) {
		store := newStore(t)
		_, err := store.CreateTodo(context.Background(), 7, "Orphan")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("CreateTodo() error = %v, want %v", err, storage.ErrNotFound)
		}
	})

	t.Run("update todo status", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		list := mustCreateList(t, store, "Chores")
		item := mustCreateTodo(t, store, list.ID, "Dishes")
		if err := store.UpdateTodoStatus(ctx, list.ID, item.ID, true); err != nil {
			t.Fatalf("UpdateTodoStatus() error = %v", err)
		}
		if !mustFindList(t, store, list.ID).Todos[0].Completed {
			t.Fatal("todo should be completed")
		}
		if err := store.UpdateTodoStatus(ctx, list.ID, item.ID, false); err != nil {
			t.Fatalf("UpdateTodoStatus() error = %v", err)
		}
		if mustFindList(t, store, list.ID).Todos[0].Completed {
			t.Fatal("todo should be incomplete")
		}
	})

	t.Run("mark all todos completed touches one list", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		target := mustCreateList(t, store, "Target")
		other := mustCreateList(t, store, "Other")
		mustCreateTodo(t, store, target.ID, "a")
		mustCreateTodo(t, store, target.ID, "b")
		mustCreateTodo(t, store, other.ID, "c")

		if err := store.MarkAllTodosCompleted(ctx, target.ID); err != nil {
			t.Fatalf("MarkAllTodosCompleted() error = %v", err)
		}
		for _, item := range mustFindList(t, store, target.ID).Todos {
			if !item.Completed {
				t.Fatalf("todo %d should be completed", item.ID)
			}
		}
		for _, item := range mustFindList(t, store, other.ID).Todos {
			if item.Completed {
				t.Fatalf("todo %d in other list should stay incomplete", item.ID)
			}
		}
	})

	t.Run("delete missing todo is a no-op", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		list := mustCreateList(t, store, "Chores")
		keep := mustCreateTodo(t, store, list.ID, "Keep")
		if err := store.DeleteTodo(ctx, list.ID, keep.ID+100); err != nil {
			t.Fatalf("DeleteTodo() error = %v", err)
		}
		found := mustFindList(t, store, list.ID)
		if len(found.Todos) != 1 || found.Todos[0].ID != keep.ID {
			t.Fatalf("Todos = %+v, want only %d", found.Todos, keep.ID)
		}
	})

	t.Run("delete todo", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		list := mustCreateList(t, store, "Chores")
		drop := mustCreateTodo(t, store, list.ID, "Drop")
		keep := mustCreateTodo(t, store, list.ID, "Keep")
		if err := store.DeleteTodo(ctx, list.ID, drop.ID); err != nil {
			t.Fatalf("DeleteTodo() error = %v", err)
		}
		todos, err := store.AllTodosForList(ctx, list.ID)
		if err != nil {
			t.Fatalf("AllTodosForList() error = %v", err)
		}
		if len(todos) != 1 || todos[0].ID != keep.ID {
			t.Fatalf("AllTodosForList() = %+v, want only %d", todos, keep.ID)
		}
	})

	t.Run("delete todo through the wrong list is a no-op", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		owner := mustCreateList(t, store, "Owner")
		other := mustCreateList(t, store, "Other")
		item := mustCreateTodo(t, store, owner.ID, "Mine")
		if err := store.DeleteTodo(ctx, other.ID, item.ID); err != nil {
			t.Fatalf("DeleteTodo() error = %v", err)
		}
		if got := len(mustFindList(t, store, owner.ID).Todos); got != 1 {
			t.Fatalf("owner todos = %d, want 1", got)
		}
	})

	t.Run("list summaries count remaining todos", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		empty := mustCreateList(t, store, "Empty")
		busy := mustCreateList(t, store, "Busy")
		done := mustCreateTodo(t, store, busy.ID, "done")
		mustCreateTodo(t, store, busy.ID, "open")
		if err := store.UpdateTodoStatus(ctx, busy.ID, done.ID, true); err != nil {
			t.Fatalf("UpdateTodoStatus() error = %v", err)
		}

		summaries, err := store.ListSummaries(ctx)
		if err != nil {
			t.Fatalf("ListSummaries() error = %v", err)
		}
		byID := map[int64]todo.Summary{}
		for _, summary := range summaries {
			byID[summary.ID] = summary
		}
		if got := byID[empty.ID]; got.TodosCount != 0 || got.TodosRemainingCount != 0 {
			t.Fatalf("empty summary = %+v", got)
		}
		if got := byID[busy.ID]; got.TodosCount != 2 || got.TodosRemainingCount != 1 {
			t.Fatalf("busy summary = %+v", got)
		}
	})
}

func mustCreateList(t *testing.T, store storage.Store, name string) todo.List {
	t.Helper()
	list, err := store.CreateList(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateList(%q) error = %v", name, err)
	}
	return list
}

func mustCreateTodo(t *testing.T, store storage.Store, listID int64, name string) todo.Todo {
	t.Helper()
	item, err := store.CreateTodo(context.Background(), listID, name)
	if err != nil {
		t.Fatalf("CreateTodo(%d, %q) error = %v", listID, name, err)
	}
	return item
}

func mustFindList(t *testing.T, store storage.Store, listID int64) todo.List {
	t.Helper()
	list, ok, err := store.FindList(context.Background(), listID)
	if err != nil {
		t.Fatalf("FindList(%d) error = %v", listID, err)
	}
	if !ok {
		t.Fatalf("FindList(%d) found = false", listID)
	}
	return list
}
