// Package todo defines lists, todos and the pure rules shared by every
// storage backend and the web handlers.
package todo

// List is a named collection of todos.
type List struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Todos []Todo `json:"todos"`
}

// Todo is a completable item owned by exactly one list.
type Todo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Summary is the aggregate-count view of a list.
type Summary struct {
	ID                  int64
	Name                string
	TodosCount          int
	TodosRemainingCount int
}

// TodosCount returns the number of todos in the list.
func (l List) TodosCount() int {
	return len(l.Todos)
}

// TodosRemainingCount returns the number of todos not yet completed.
func (l List) TodosRemainingCount() int {
	remaining := 0
	for _, item := range l.Todos {
		if !item.Completed {
			remaining++
		}
	}
	return remaining
}

// AllCompleted reports whether the list has todos and all of them are done.
func (l List) AllCompleted() bool {
	return allCompleted(l.TodosCount(), l.TodosRemainingCount())
}

// Summary collapses the list into its aggregate counts.
func (l List) Summary() Summary {
	return Summary{
		ID:                  l.ID,
		Name:                l.Name,
		TodosCount:          l.TodosCount(),
		TodosRemainingCount: l.TodosRemainingCount(),
	}
}

// AllCompleted reports whether the summarized list has todos and all of them are done.
func (s Summary) AllCompleted() bool {
	return allCompleted(s.TodosCount, s.TodosRemainingCount)
}

func allCompleted(count, remaining int) bool {
	return count > 0 && remaining == 0
}

// Summaries collapses lists into summaries, preserving order.
func Summaries(lists []List) []Summary {
	out := make([]Summary, 0, len(lists))
	for _, list := range lists {
		out = append(out, list.Summary())
	}
	return out
}

// NextListID returns max(existing ids)+1, or 1 for an empty collection.
func NextListID(lists []List) int64 {
	var highest int64
	for _, list := range lists {
		if list.ID > highest {
			highest = list.ID
		}
	}
	return highest + 1
}

// NextTodoID returns max(existing ids)+1, or 1 for an empty collection.
func NextTodoID(todos []Todo) int64 {
	var highest int64
	for _, item := range todos {
		if item.ID > highest {
			highest = item.ID
		}
	}
	return highest + 1
}
