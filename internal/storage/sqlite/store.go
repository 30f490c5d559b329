package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/todo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/todos/internal/storage/sqlite"

// Store runs todo statements on one pooled connection.
type Store struct {
	conn     *sql.Conn
	logger   QueryLogger
	released bool
}

// Release returns the connection to the pool. Calling it twice is safe.
func (s *Store) Release() error {
	if s == nil || s.conn == nil || s.released {
		return nil
	}
	s.released = true
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("release sqlite connection: %w", err)
	}
	return nil
}

// FindList loads one list with its todos.
func (s *Store) FindList(ctx context.Context, listID int64) (todo.List, bool, error) {
	ctx, span := s.start(ctx, "FindList")
	defer span.End()

	const query = `SELECT id, name FROM lists WHERE id = ?`
	var list todo.List
	err := s.queryRow(ctx, query, listID).Scan(&list.ID, &list.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.List{}, false, nil
	}
	if err != nil {
		return todo.List{}, false, record(span, fmt.Errorf("find list: %w", err))
	}

	todos, err := s.todosForList(ctx, list.ID)
	if err != nil {
		return todo.List{}, false, record(span, err)
	}
	list.Todos = todos
	return list, true, nil
}

// AllLists loads every list with its todos, ordered by list name.
func (s *Store) AllLists(ctx context.Context) ([]todo.List, error) {
	ctx, span := s.start(ctx, "AllLists")
	defer span.End()

	const query = `SELECT lists.id, lists.name, todos.id, todos.name, todos.completed
		 FROM lists
		 LEFT OUTER JOIN todos ON todos.list_id = lists.id
		 ORDER BY lists.name, lists.id, todos.id`
	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, record(span, fmt.Errorf("all lists: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	lists := make([]todo.List, 0)
	for rows.Next() {
		var (
			listID    int64
			listName  string
			todoID    sql.NullInt64
			todoName  sql.NullString
			completed sql.NullBool
		)
		if err := rows.Scan(&listID, &listName, &todoID, &todoName, &completed); err != nil {
			return nil, record(span, fmt.Errorf("scan list row: %w", err))
		}
		if len(lists) == 0 || lists[len(lists)-1].ID != listID {
			lists = append(lists, todo.List{ID: listID, Name: listName, Todos: []todo.Todo{}})
		}
		if todoID.Valid {
			current := &lists[len(lists)-1]
			current.Todos = append(current.Todos, todo.Todo{
				ID:        todoID.Int64,
				Name:      todoName.String,
				Completed: completed.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, record(span, fmt.Errorf("iterate lists: %w", err))
	}
	return lists, nil
}

// ListSummaries computes todo counts per list with one aggregate query,
// ordered by list name.
func (s *Store) ListSummaries(ctx context.Context) ([]todo.Summary, error) {
	ctx, span := s.start(ctx, "ListSummaries")
	defer span.End()

	const query = `SELECT lists.id, lists.name,
		        COUNT(todos.id) AS todos_count,
		        COUNT(NULLIF(todos.completed, 1)) AS todos_remaining_count
		 FROM lists
		 LEFT OUTER JOIN todos ON todos.list_id = lists.id
		 GROUP BY lists.id, lists.name
		 ORDER BY lists.name`
	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, record(span, fmt.Errorf("list summaries: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	summaries := make([]todo.Summary, 0)
	for rows.Next() {
		var summary todo.Summary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.TodosCount, &summary.TodosRemainingCount); err != nil {
			return nil, record(span, fmt.Errorf("scan list summary: %w", err))
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, record(span, fmt.Errorf("iterate list summaries: %w", err))
	}
	return summaries, nil
}

// AllTodosForList loads the todos of one list ordered by id.
func (s *Store) AllTodosForList(ctx context.Context, listID int64) ([]todo.Todo, error) {
	ctx, span := s.start(ctx, "AllTodosForList")
	defer span.End()

	todos, err := s.todosForList(ctx, listID)
	if err != nil {
		return nil, record(span, err)
	}
	return todos, nil
}

// CreateList inserts an empty list.
func (s *Store) CreateList(ctx context.Context, name string) (todo.List, error) {
	ctx, span := s.start(ctx, "CreateList")
	defer span.End()

	const query = `INSERT INTO lists (name) VALUES (?) RETURNING id`
	var id int64
	if err := s.queryRow(ctx, query, name).Scan(&id); err != nil {
		return todo.List{}, record(span, fmt.Errorf("create list: %w", err))
	}
	return todo.List{ID: id, Name: name, Todos: []todo.Todo{}}, nil
}

// DeleteList removes a list; its todos go with it through the foreign key.
func (s *Store) DeleteList(ctx context.Context, listID int64) error {
	ctx, span := s.start(ctx, "DeleteList")
	defer span.End()

	if err := s.exec(ctx, `DELETE FROM lists WHERE id = ?`, listID); err != nil {
		return record(span, fmt.Errorf("delete list: %w", err))
	}
	return nil
}

// UpdateListName renames a list.
func (s *Store) UpdateListName(ctx context.Context, listID int64, name string) error {
	ctx, span := s.start(ctx, "UpdateListName")
	defer span.End()

	if err := s.exec(ctx, `UPDATE lists SET name = ? WHERE id = ?`, name, listID); err != nil {
		return record(span, fmt.Errorf("update list name: %w", err))
	}
	return nil
}

// CreateTodo inserts an incomplete todo. The insert selects the parent list so
// a missing list inserts nothing and reports storage.ErrNotFound.
func (s *Store) CreateTodo(ctx context.Context, listID int64, name string) (todo.Todo, error) {
	ctx, span := s.start(ctx, "CreateTodo")
	defer span.End()

	const query = `INSERT INTO todos (list_id, name)
		 SELECT id, ? FROM lists WHERE id = ?
		 RETURNING id`
	var id int64
	err := s.queryRow(ctx, query, name, listID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Todo{}, fmt.Errorf("create todo in list %d: %w", listID, storage.ErrNotFound)
	}
	if err != nil {
		return todo.Todo{}, record(span, fmt.Errorf("create todo: %w", err))
	}
	return todo.Todo{ID: id, Name: name}, nil
}

// DeleteTodo removes one todo from a list.
func (s *Store) DeleteTodo(ctx context.Context, listID, todoID int64) error {
	ctx, span := s.start(ctx, "DeleteTodo")
	defer span.End()

	if err := s.exec(ctx, `DELETE FROM todos WHERE id = ? AND list_id = ?`, todoID, listID); err != nil {
		return record(span, fmt.Errorf("delete todo: %w", err))
	}
	return nil
}

// UpdateTodoStatus sets the completed flag of one todo.
func (s *Store) UpdateTodoStatus(ctx context.Context, listID, todoID int64, completed bool) error {
	ctx, span := s.start(ctx, "UpdateTodoStatus")
	defer span.End()

	const query = `UPDATE todos SET completed = ? WHERE id = ? AND list_id = ?`
	if err := s.exec(ctx, query, boolToInt(completed), todoID, listID); err != nil {
		return record(span, fmt.Errorf("update todo status: %w", err))
	}
	return nil
}

// MarkAllTodosCompleted completes every todo of one list.
func (s *Store) MarkAllTodosCompleted(ctx context.Context, listID int64) error {
	ctx, span := s.start(ctx, "MarkAllTodosCompleted")
	defer span.End()

	if err := s.exec(ctx, `UPDATE todos SET completed = 1 WHERE list_id = ?`, listID); err != nil {
		return record(span, fmt.Errorf("mark all todos completed: %w", err))
	}
	return nil
}

func (s *Store) todosForList(ctx context.Context, listID int64) ([]todo.Todo, error) {
	const query = `SELECT id, name, completed FROM todos WHERE list_id = ? ORDER BY id`
	rows, err := s.query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("all todos for list: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	todos := make([]todo.Todo, 0)
	for rows.Next() {
		var item todo.Todo
		if err := rows.Scan(&item.ID, &item.Name, &item.Completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.log(query, args)
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.log(query, args)
	return s.conn.QueryContext(ctx, query, args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) rowScanner {
	if err := s.ready(); err != nil {
		return errRow{err: err}
	}
	s.log(query, args)
	return s.conn.QueryRowContext(ctx, query, args...)
}

func (s *Store) ready() error {
	if s == nil || s.conn == nil {
		return errors.New("storage is not configured")
	}
	if s.released {
		return errors.New("storage handle already released")
	}
	return nil
}

func (s *Store) log(query string, args []any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("sql", "statement", query, "params", args)
}

func (s *Store) start(ctx context.Context, operation string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "sqlite."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", "sqlite")),
	)
}

func record(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

var _ storage.Handle = (*Store)(nil)
