package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/storage/storagetest"
	"github.com/louisbranch/todos/internal/todo"
)

func TestStoreContract(t *testing.T) {
	storagetest.RunContract(t, func(*testing.T) storage.Store {
		return New(nil)
	})
}

func TestAllListsPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	store := New(nil)
	ctx := context.Background()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := store.CreateList(ctx, name); err != nil {
			t.Fatalf("CreateList(%q) error = %v", name, err)
		}
	}
	lists, err := store.AllLists(ctx)
	if err != nil {
		t.Fatalf("AllLists() error = %v", err)
	}
	for i, want := range []string{"Zeta", "Alpha", "Mid"} {
		if lists[i].Name != want {
			t.Fatalf("AllLists()[%d].Name = %q, want %q", i, lists[i].Name, want)
		}
	}
}

func TestListIDsFollowHighestExistingID(t *testing.T) {
	t.Parallel()

	store := New([]todo.List{{ID: 3, Name: "three"}, {ID: 1, Name: "one"}})
	list, err := store.CreateList(context.Background(), "next")
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if list.ID != 4 {
		t.Fatalf("CreateList() id = %d, want 4", list.ID)
	}
}

func TestTodoIDsAreScopedToTheirList(t *testing.T) {
	t.Parallel()

	store := New(nil)
	ctx := context.Background()
	first, _ := store.CreateList(ctx, "first")
	second, _ := store.CreateList(ctx, "second")
	a, err := store.CreateTodo(ctx, first.ID, "a")
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	b, err := store.CreateTodo(ctx, second.ID, "b")
	if err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	if a.ID != 1 || b.ID != 1 {
		t.Fatalf("todo ids = (%d, %d), want (1, 1)", a.ID, b.ID)
	}
}

func TestFindListReturnsCopy(t *testing.T) {
	t.Parallel()

	store := New(nil)
	ctx := context.Background()
	list, _ := store.CreateList(ctx, "Chores")
	if _, err := store.CreateTodo(ctx, list.ID, "Dishes"); err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	found, _, _ := store.FindList(ctx, list.ID)
	found.Name = "changed"
	found.Todos[0].Completed = true

	again, _, _ := store.FindList(ctx, list.ID)
	if again.Name != "Chores" || again.Todos[0].Completed {
		t.Fatalf("FindList() leaked internal state: %+v", again)
	}
}

func TestReadsDoNotMarkDirty(t *testing.T) {
	t.Parallel()

	store := New([]todo.List{{ID: 1, Name: "one"}})
	ctx := context.Background()
	_, _, _ = store.FindList(ctx, 1)
	_, _ = store.AllLists(ctx)
	_, _ = store.ListSummaries(ctx)
	_ = store.DeleteTodo(ctx, 1, 5)
	_ = store.DeleteList(ctx, 9)
	if store.Dirty() {
		t.Fatal("Dirty() = true after reads and no-op deletes")
	}
}

type fakeState struct {
	values map[string]json.RawMessage
	stores int
}

func (f *fakeState) Load(key string, dst any) (bool, error) {
	raw, ok := f.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (f *fakeState) Store(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if f.values == nil {
		f.values = map[string]json.RawMessage{}
	}
	f.values[key] = data
	f.stores++
	return nil
}

func TestProviderPersistsMutationsOnRelease(t *testing.T) {
	t.Parallel()

	state := &fakeState{}
	provider := NewProvider()
	ctx := context.Background()

	handle, err := provider.Acquire(ctx, state)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	list, err := handle.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if _, err := handle.CreateTodo(ctx, list.ID, "Milk"); err != nil {
		t.Fatalf("CreateTodo() error = %v", err)
	}
	if err := handle.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	next, err := provider.Acquire(ctx, state)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer func() {
		_ = next.Release()
	}()
	found, ok, err := next.FindList(ctx, list.ID)
	if err != nil || !ok {
		t.Fatalf("FindList() = (found %t, err %v)", ok, err)
	}
	if found.Name != "Groceries" || len(found.Todos) != 1 || found.Todos[0].Name != "Milk" {
		t.Fatalf("FindList() = %+v", found)
	}
}

func TestProviderSkipsStoreWhenUnchanged(t *testing.T) {
	t.Parallel()

	state := &fakeState{}
	handle, err := NewProvider().Acquire(context.Background(), state)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, err := handle.AllLists(context.Background()); err != nil {
		t.Fatalf("AllLists() error = %v", err)
	}
	if err := handle.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := handle.Release(); err != nil {
		t.Fatalf("second Release() error = %v", err)
	}
	if state.stores != 0 {
		t.Fatalf("stores = %d, want 0", state.stores)
	}
}

func TestProviderRequiresState(t *testing.T) {
	t.Parallel()

	if _, err := NewProvider().Acquire(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil session state")
	}
}

func TestProviderRejectsCorruptLists(t *testing.T) {
	t.Parallel()

	state := &fakeState{values: map[string]json.RawMessage{ListsKey: json.RawMessage(`{"not":"a list"}`)}}
	if _, err := NewProvider().Acquire(context.Background(), state); err == nil {
		t.Fatal("expected error for corrupt lists value")
	}
}
