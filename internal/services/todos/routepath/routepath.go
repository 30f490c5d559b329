// Package routepath defines the todo service URL paths.
package routepath

import "strconv"

const (
	Root          = "/"
	Up            = "/up"
	StaticPrefix  = "/static/"
	Lists         = "/lists"
	NewList       = "/lists/new"
	ListPattern   = "/lists/{listID}"
	EditPattern   = "/lists/{listID}/edit"
	DeletePattern = "/lists/{listID}/delete"
	TodosPattern  = "/lists/{listID}/todos"
	TodoPattern   = "/lists/{listID}/todos/{todoID}"
	// DeleteTodoPattern removes one todo.
	DeleteTodoPattern = "/lists/{listID}/todos/{todoID}/delete"
	// MarkAllCompletedPattern completes every todo of a list.
	MarkAllCompletedPattern = "/lists/{listID}/mark_all_todos_completed"
)

// List returns the page path for a list.
func List(listID int64) string {
	return Lists + "/" + strconv.FormatInt(listID, 10)
}

// EditList returns the edit form path for a list.
func EditList(listID int64) string {
	return List(listID) + "/edit"
}

// DeleteList returns the delete action path for a list.
func DeleteList(listID int64) string {
	return List(listID) + "/delete"
}

// MarkAllCompleted returns the complete-all action path for a list.
func MarkAllCompleted(listID int64) string {
	return List(listID) + "/mark_all_todos_completed"
}

// Todos returns the create-todo action path for a list.
func Todos(listID int64) string {
	return List(listID) + "/todos"
}

// Todo returns the status update path for a todo.
func Todo(listID, todoID int64) string {
	return Todos(listID) + "/" + strconv.FormatInt(todoID, 10)
}

// DeleteTodo returns the delete action path for a todo.
func DeleteTodo(listID, todoID int64) string {
	return Todo(listID, todoID) + "/delete"
}

// Static returns the path for an embedded asset.
func Static(name string) string {
	return StaticPrefix + name
}
