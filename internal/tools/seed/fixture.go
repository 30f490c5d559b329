// Package seed loads todo lists from TOML fixtures into a store.
package seed

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/louisbranch/todos/internal/todo"
	"github.com/louisbranch/todos/internal/tools/seed/fixtures"
)

const fixtureExt = ".toml"

// Fixture is a set of lists to create.
type Fixture struct {
	Lists []ListFixture `toml:"lists"`
}

// ListFixture describes one list and its todos.
type ListFixture struct {
	Name  string        `toml:"name"`
	Todos []TodoFixture `toml:"todos"`
}

// TodoFixture describes one todo.
type TodoFixture struct {
	Name      string `toml:"name"`
	Completed bool   `toml:"completed"`
}

// ParseFixture decodes and validates a TOML fixture.
func ParseFixture(r io.Reader) (Fixture, error) {
	var fixture Fixture
	meta, err := toml.NewDecoder(r).Decode(&fixture)
	if err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Fixture{}, fmt.Errorf("unknown fixture keys: %v", undecoded)
	}
	if err := fixture.Validate(); err != nil {
		return Fixture{}, err
	}
	return fixture, nil
}

// LoadFixtureFile reads a fixture from disk.
func LoadFixtureFile(filename string) (Fixture, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	fixture, err := ParseFixture(f)
	if err != nil {
		return Fixture{}, fmt.Errorf("%s: %w", filename, err)
	}
	return fixture, nil
}

// LoadBundledFixture reads a fixture shipped with the binary by name.
func LoadBundledFixture(name string) (Fixture, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), fixtureExt)
	if name == "" {
		return Fixture{}, errors.New("fixture name is required")
	}
	f, err := fixtures.FS.Open(name + fixtureExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Fixture{}, fmt.Errorf("unknown fixture %q", name)
		}
		return Fixture{}, fmt.Errorf("open fixture %q: %w", name, err)
	}
	defer f.Close()
	fixture, err := ParseFixture(f)
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture %q: %w", name, err)
	}
	return fixture, nil
}

// BundledFixtures lists the names of the fixtures shipped with the binary.
func BundledFixtures() ([]string, error) {
	entries, err := fs.ReadDir(fixtures.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read bundled fixtures: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != fixtureExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fixtureExt))
	}
	slices.Sort(names)
	return names, nil
}

// Validate applies the list and todo name rules to every entry, trimming
// names the way the web forms do.
func (f *Fixture) Validate() error {
	seen := make([]todo.List, 0, len(f.Lists))
	for i := range f.Lists {
		list := &f.Lists[i]
		list.Name = strings.TrimSpace(list.Name)
		if err := todo.ListNameError(list.Name, seen); err != nil {
			return fmt.Errorf("list %d %q: %w", i+1, list.Name, err)
		}
		seen = append(seen, todo.List{Name: list.Name})
		for j := range list.Todos {
			item := &list.Todos[j]
			item.Name = strings.TrimSpace(item.Name)
			if err := todo.TodoNameError(item.Name); err != nil {
				return fmt.Errorf("list %q todo %d: %w", list.Name, j+1, err)
			}
		}
	}
	return nil
}
