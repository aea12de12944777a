package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) applyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

func (q *QueryBuilder[T]) applySelect(sq *bun.SelectQuery) *bun.SelectQuery {
	for _, w := range q.wheres {
		if w.IsRaw {
			sq = sq.Where(w.RawSQL, w.RawArgs...)
		} else {
			sq = sq.Where("? "+w.Operator+" ?", bun.Ident(w.Column), w.Value)
		}
	}
	for _, o := range q.orders {
		sq = sq.OrderExpr("? ?", bun.Ident(o.Column), bun.Safe(o.Direction))
	}
	if q.limitVal != nil {
		sq = sq.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		sq = sq.Offset(*q.offsetVal)
	}
	return sq
}

func (q *QueryBuilder[T]) applyUpdate(uq *bun.UpdateQuery) *bun.UpdateQuery {
	for _, w := range q.wheres {
		if w.IsRaw {
			uq = uq.Where(w.RawSQL, w.RawArgs...)
		} else {
			uq = uq.Where("? "+w.Operator+" ?", bun.Ident(w.Column), w.Value)
		}
	}
	return uq
}

func (q *QueryBuilder[T]) applyDelete(dq *bun.DeleteQuery) *bun.DeleteQuery {
	for _, w := range q.wheres {
		if w.IsRaw {
			dq = dq.Where(w.RawSQL, w.RawArgs...)
		} else {
			dq = dq.Where("? "+w.Operator+" ?", bun.Ident(w.Column), w.Value)
		}
	}
	return dq
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.applySelect(q.db.NewSelect().Model(&data)).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with automatic retry.
// Returns nil, nil when no row matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	data := new(T)

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		return q.applySelect(q.db.NewSelect().Model(data)).Limit(1).Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var err error
		count, err = q.applySelect(q.db.NewSelect().Model((*T)(nil))).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Insert persists a new record and returns it with database-assigned defaults filled in
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Returning("*").Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update applies the given column/value pairs to all matching rows and returns
// the number of rows affected. Conditional single-row state flips rely on this
// count to detect lost races.
func (q *QueryBuilder[T]) Update(ctx context.Context, updates map[string]any) (int, error) {
	start := time.Now()
	var affected int64

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		uq := q.db.NewUpdate().Model((*T)(nil))
		for column, value := range updates {
			uq = uq.Set("? = ?", bun.Ident(column), value)
		}
		res, err := q.applyUpdate(uq).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(affected), nil
}

// Delete removes all matching rows and returns the number of rows affected
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var affected int64

	ctx, cancel := q.applyContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		res, err := q.applyDelete(q.db.NewDelete().Model((*T)(nil))).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(affected), nil
}
