package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestTodoNameError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "empty", in: "", want: ErrTodoNameLength},
		{name: "single character", in: "a", want: nil},
		{name: "max length", in: strings.Repeat("a", MaxNameLength), want: nil},
		{name: "too long", in: strings.Repeat("a", MaxNameLength+1), want: ErrTodoNameLength},
		{name: "multibyte counted as characters", in: strings.Repeat("é", MaxNameLength), want: nil},
		{name: "invalid utf-8", in: "x\xff", want: ErrTodoNameLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TodoNameError(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("TodoNameError(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestListNameErrorRejectsEmptyName(t *testing.T) {
	t.Parallel()

	if err := ListNameError("", nil); !errors.Is(err, ErrListNameLength) {
		t.Fatalf("ListNameError(\"\") = %v, want %v", err, ErrListNameLength)
	}
}

func TestListNameErrorRejectsTakenName(t *testing.T) {
	t.Parallel()

	existing := []List{{ID: 1, Name: "Groceries"}}
	if err := ListNameError("Groceries", existing); !errors.Is(err, ErrListNameTaken) {
		t.Fatalf("ListNameError() = %v, want %v", err, ErrListNameTaken)
	}
}

func TestListNameErrorAcceptsUnusedName(t *testing.T) {
	t.Parallel()

	if err := ListNameError("Groceries", nil); err != nil {
		t.Fatalf("ListNameError() = %v, want nil", err)
	}
}

func TestListNameErrorIsCaseSensitive(t *testing.T) {
	t.Parallel()

	existing := []List{{ID: 1, Name: "Groceries"}}
	if err := ListNameError("groceries", existing); err != nil {
		t.Fatalf("ListNameError() = %v, want nil", err)
	}
}

func TestListNameErrorChecksLengthBeforeUniqueness(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", MaxNameLength+1)
	existing := []List{{ID: 1, Name: long}}
	if err := ListNameError(long, existing); !errors.Is(err, ErrListNameLength) {
		t.Fatalf("ListNameError() = %v, want %v", err, ErrListNameLength)
	}
}

func TestListNameErrorRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()

	// Stored names are re-encoded with U+FFFD, so raw bytes would never match them.
	existing := []List{{ID: 1, Name: "Groceries\uFFFD"}}
	if err := ListNameError("Groceries\xff", existing); !errors.Is(err, ErrListNameLength) {
		t.Fatalf("ListNameError() = %v, want %v", err, ErrListNameLength)
	}
}
