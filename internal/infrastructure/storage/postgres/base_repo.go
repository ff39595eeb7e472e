package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
	"edr/internal/domain"
)

// BaseRepo implements domain.Repository on a single table. Embedded
// structs, pointers and jsonb columns are handled through the "db"
// tags; per-entity repositories only supply the table, the searchable
// columns and a constructor.
type BaseRepo[T entity.Entity] struct {
	txm        *TxManager
	table      string
	cols       []string
	searchCols []string
	newFn      func() T
}

// NewBaseRepo creates a repository for one table. table must already
// carry the configured prefix.
func NewBaseRepo[T entity.Entity](txm *TxManager, table string, searchCols []string, newFn func() T) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		table:      table,
		cols:       ExtractDBColumns[T](),
		searchCols: searchCols,
		newFn:      newFn,
	}
}

func (r *BaseRepo[T]) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the record with the next sequential ID. The subquery
// and the insert run in one statement, so concurrent creates cannot
// claim the same ID outside a serialization failure.
func (r *BaseRepo[T]) Create(ctx context.Context, record T) error {
	if record.GetVersion() == 0 {
		record.SetVersion(1)
	}

	data := StructToMap(record)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found for %s", r.table)
	}

	cols := make([]string, 0, len(r.cols))
	vals := make([]any, 0, len(r.cols))
	for _, col := range r.cols {
		if col == "id" {
			continue
		}
		if val, ok := data[col]; ok {
			cols = append(cols, col)
			vals = append(vals, val)
		}
	}

	q := r.builder().
		Insert(r.table).
		Columns(append([]string{"id"}, cols...)...).
		Values(append([]any{squirrel.Expr(fmt.Sprintf("(SELECT COALESCE(MAX(id), 0) + 1 FROM %s)", r.table))}, vals...)...).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	var id int64
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return fmt.Errorf("insert %s: %w", r.table, err)
	}
	record.SetID(id)
	return nil
}

// GetByID retrieves a record by ID.
func (r *BaseRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	record := r.newFn()

	q := r.builder().
		Select(r.cols...).
		From(r.table).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return record, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, record, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return record, apperror.NewNotFound(r.table, id)
		}
		return record, fmt.Errorf("get by id: %w", err)
	}
	return record, nil
}

// Update modifies a record with optimistic locking. The version column
// is bumped here, never by callers.
func (r *BaseRepo[T]) Update(ctx context.Context, record T) error {
	data := StructToMap(record)
	version := record.GetVersion()

	setMap := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if col == "id" || col == "version" || col == "created_at" {
			continue
		}
		if val, ok := data[col]; ok {
			setMap[col] = val
		}
	}

	q := r.builder().
		Update(r.table).
		SetMap(setMap).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": record.GetID()}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		exists, exErr := r.Exists(ctx, record.GetID())
		if exErr == nil && !exists {
			return apperror.NewNotFound(r.table, record.GetID())
		}
		return apperror.NewConcurrentModification(r.table, record.GetID())
	}

	record.SetVersion(version + 1)
	return nil
}

// SetArchived sets or clears the archived mark.
func (r *BaseRepo[T]) SetArchived(ctx context.Context, id int64, archived bool) error {
	q := r.builder().
		Update(r.table).
		Set("archived", archived).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("archive %s: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.table, id)
	}
	return nil
}

// List retrieves records with filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(r.cols...).
		From(r.table)

	if !filter.IncludeArchived {
		q = q.Where(squirrel.Eq{"archived": false})
	}
	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	return result, nil
}

// parseOrderBy whitelists the sortable columns.
func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "id ASC", nil
	}

	dir := "ASC"
	col := orderBy
	if strings.HasPrefix(orderBy, "-") {
		dir = "DESC"
		col = orderBy[1:]
	}

	for _, known := range r.cols {
		if known == col {
			return col + " " + dir, nil
		}
	}
	return "", apperror.NewValidation("invalid sort field").WithDetail("field", col)
}

// Exists checks whether a record with the given ID exists.
func (r *BaseRepo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	q := r.builder().
		Select("1").
		From(r.table).
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	querier := r.txm.GetQuerier(ctx)
	err = querier.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}
