package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"basegraph.app/cms/internal/model"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

// table implements Repository[T] over one Postgres table.
type table[T any] struct {
	db   DBTX
	coll Collection[T]
}

func newTable[T any](db DBTX, coll Collection[T]) *table[T] {
	return &table[T]{db: db, coll: coll}
}

func (t *table[T]) selectList() string {
	cols := t.coll.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	return strings.Join(quoted, ", ")
}

func (t *table[T]) List(ctx context.Context, params model.ListParams) ([]T, int64, error) {
	if err := t.coll.CheckList(params); err != nil {
		return nil, 0, err
	}

	where, args := whereClause(params.Filters)

	var total int64
	countSQL := fmt.Sprintf("SELECT count(*) FROM %s%s", ident(t.coll.Name), where)
	if err := t.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", t.coll.Name, err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	n := len(args)
	listSQL := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		t.selectList(), ident(t.coll.Name), where, orderClause(params), n+1, n+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := t.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", t.coll.Name, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, 0, fmt.Errorf("scanning %s: %w", t.coll.Name, err)
	}
	return items, total, nil
}

func (t *table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return t.getBy(ctx, FieldID, id)
}

func (t *table[T]) getBy(ctx context.Context, field string, value any) (*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", t.selectList(), ident(t.coll.Name), ident(field))
	rows, err := t.db.Query(ctx, q, value)
	if err != nil {
		return nil, err
	}
	doc, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (t *table[T]) Create(ctx context.Context, doc *T) error {
	cols := append([]string{FieldID}, t.coll.Fields...)
	args := append([]any{t.coll.ID(doc)}, t.coll.Values(doc)...)

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		ident(t.coll.Name), strings.Join(quoted, ", "), strings.Join(placeholders, ", "), t.selectList())
	rows, err := t.db.Query(ctx, q, args...)
	if err != nil {
		return t.mapError(err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return t.mapError(err)
	}
	*doc = created
	return nil
}

func (t *table[T]) Update(ctx context.Context, id int64, patch model.Patch) (*T, error) {
	if err := t.coll.CheckPatch(patch); err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+1)
	// Iterate Fields rather than the map so the statement text is stable.
	for _, field := range t.coll.Fields {
		value, ok := patch[field]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(field), len(args)))
	}
	sets = append(sets, ident(FieldUpdatedAt)+" = now()")
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		ident(t.coll.Name), strings.Join(sets, ", "), ident(FieldID), len(args), t.selectList())
	rows, err := t.db.Query(ctx, q, args...)
	if err != nil {
		return nil, t.mapError(err)
	}
	doc, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, t.mapError(err)
	}
	return doc, nil
}

func (t *table[T]) Delete(ctx context.Context, id int64) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(t.coll.Name), ident(FieldID))
	tag, err := t.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *table[T]) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &ConflictError{Field: t.constraintField(pgErr.ConstraintName)}
	}
	return err
}

// constraintField recovers the column from Postgres' default
// "<table>_<column>_key" unique constraint naming.
func (t *table[T]) constraintField(constraint string) string {
	field := strings.TrimPrefix(constraint, t.coll.Name+"_")
	field = strings.TrimSuffix(field, "_key")
	if t.coll.HasField(field) {
		return field
	}
	return ""
}

func whereClause(filters []model.Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Value)
		switch f.Op {
		case model.FilterContains:
			conds = append(conds, fmt.Sprintf("$%d = ANY(%s)", len(args), ident(f.Field)))
		default:
			conds = append(conds, fmt.Sprintf("%s = $%d", ident(f.Field), len(args)))
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(params model.ListParams) string {
	dir := "ASC"
	if params.Order == model.SortDesc {
		dir = "DESC"
	}
	if params.Sort == "" || params.Sort == FieldID {
		return ident(FieldID) + " " + dir
	}
	return fmt.Sprintf("%s %s NULLS LAST, %s %s", ident(params.Sort), dir, ident(FieldID), dir)
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
