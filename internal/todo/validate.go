package todo

import (
	"errors"
	"unicode/utf8"
)

const (
	// MinNameLength is the shortest accepted list or todo name.
	MinNameLength = 1
	// MaxNameLength is the longest accepted list or todo name.
	MaxNameLength = 100
)

var (
	// ErrTodoNameLength rejects todo names outside the accepted length.
	ErrTodoNameLength = errors.New("the todo must be between 1 and 100 characters")
	// ErrListNameLength rejects list names outside the accepted length.
	ErrListNameLength = errors.New("the list name must be between 1 and 100 characters")
	// ErrListNameTaken rejects list names already used by another list.
	ErrListNameTaken = errors.New("the list name must be unique")
)

// TodoNameError returns nil when name is an acceptable todo name.
func TodoNameError(name string) error {
	if !validLength(name) {
		return ErrTodoNameLength
	}
	return nil
}

// ListNameError returns nil when name is an acceptable, unused list name.
// The uniqueness check is an exact, case-sensitive comparison.
func ListNameError(name string, existing []List) error {
	if !validLength(name) {
		return ErrListNameLength
	}
	for _, list := range existing {
		if list.Name == name {
			return ErrListNameTaken
		}
	}
	return nil
}

func validLength(name string) bool {
	if !utf8.ValidString(name) {
		return false
	}
	length := utf8.RuneCountInString(name)
	return length >= MinNameLength && length <= MaxNameLength
}
