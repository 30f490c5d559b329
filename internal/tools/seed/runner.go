package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/todo"
)

// Result counts what Apply changed.
type Result struct {
	ListsCreated int
	ListsSkipped int
	TodosCreated int
}

// Apply creates every fixture list through store. Lists whose name already
// exists are skipped so a fixture can be applied repeatedly.
func Apply(ctx context.Context, store storage.Store, fixture Fixture, out io.Writer) (Result, error) {
	if store == nil {
		return Result{}, fmt.Errorf("store is required")
	}
	if out == nil {
		out = io.Discard
	}
	existing, err := store.AllLists(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load existing lists: %w", err)
	}

	var result Result
	for _, listFixture := range fixture.Lists {
		if todo.ListNameError(listFixture.Name, existing) != nil {
			fmt.Fprintf(out, "skip list %q: already exists\n", listFixture.Name)
			result.ListsSkipped++
			continue
		}
		list, err := store.CreateList(ctx, listFixture.Name)
		if err != nil {
			return result, fmt.Errorf("create list %q: %w", listFixture.Name, err)
		}
		existing = append(existing, list)
		result.ListsCreated++
		fmt.Fprintf(out, "created list %d %q\n", list.ID, list.Name)

		for _, todoFixture := range listFixture.Todos {
			item, err := store.CreateTodo(ctx, list.ID, todoFixture.Name)
			if err != nil {
				return result, fmt.Errorf("create todo %q in list %q: %w", todoFixture.Name, list.Name, err)
			}
			if todoFixture.Completed {
				if err := store.UpdateTodoStatus(ctx, list.ID, item.ID, true); err != nil {
					return result, fmt.Errorf("complete todo %q in list %q: %w", todoFixture.Name, list.Name, err)
				}
			}
			result.TodosCreated++
		}
	}
	return result, nil
}
