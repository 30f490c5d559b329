package todo

import "slices"

// SortSummaries returns a copy with fully completed lists moved last.
// Relative order is otherwise preserved.
func SortSummaries(summaries []Summary) []Summary {
	out := slices.Clone(summaries)
	slices.SortStableFunc(out, func(a, b Summary) int {
		return completionRank(a.AllCompleted()) - completionRank(b.AllCompleted())
	})
	return out
}

// SortTodos returns a copy with completed todos moved last.
// Relative order is otherwise preserved.
func SortTodos(todos []Todo) []Todo {
	out := slices.Clone(todos)
	slices.SortStableFunc(out, func(a, b Todo) int {
		return completionRank(a.Completed) - completionRank(b.Completed)
	})
	return out
}

func completionRank(completed bool) int {
	if completed {
		return 1
	}
	return 0
}
