package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Upsert performs an INSERT ... ON CONFLICT (conflictColumn) DO UPDATE,
// overwriting the listed columns with the incoming values. With no update
// columns the conflict is ignored (DO NOTHING). A non-empty guard is applied
// as the WHERE clause of the conflict update: conflicting rows the guard
// filters out are left untouched and show up as zero affected rows.
func Upsert[T any](db *DB, ctx context.Context, data *T, conflictColumn, guard string, updateColumns ...string) (*T, int, error) {
	start := time.Now()

	iq := db.NewInsert().Model(data)

	if len(updateColumns) > 0 {
		sets := make([]string, 0, len(updateColumns))
		for _, col := range updateColumns {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		iq = iq.On(fmt.Sprintf("CONFLICT (%s) DO UPDATE", conflictColumn)).
			Set(strings.Join(sets, ", "))
		if guard != "" {
			iq = iq.Where(guard)
		}
	} else {
		iq = iq.On(fmt.Sprintf("CONFLICT (%s) DO NOTHING", conflictColumn))
	}

	var affected int64
	err := WithRetry(ctx, func() error {
		res, err := iq.Returning("*").Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute upsert: %w (took %v)", err, time.Since(start))
	}

	return data, int(affected), nil
}

// FindByID is a helper to find a record by ID
func FindByID[T any](db *DB, ctx context.Context, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// Pagination represents pagination parameters
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// PaginationResult wraps paginated data with metadata
type PaginationResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate applies pagination to a query builder and returns results with metadata
func Paginate[T any](q *QueryBuilder[T], ctx context.Context, page, pageSize int) (*PaginationResult[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100 // Max page size
	}

	// Get total count
	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	offset := (page - 1) * pageSize

	data, err := q.Limit(pageSize).Offset(offset).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}

	return &PaginationResult[T]{
		Data: data,
		Pagination: Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}
