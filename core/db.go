package core

import (
	"context"
	"database/sql"
)

// DBExecutor is satisfied by *sql.DB, *sql.Tx and *sqlx.DB.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// DBPage is a LIMIT/OFFSET window. A zero Limit means no limit.
type DBPage struct {
	Limit  int
	Offset int
}

// NewDBPage returns the window of the 1-based page of size pageSize.
func NewDBPage(page, pageSize int) *DBPage {
	if page < 1 {
		page = 1
	}
	return &DBPage{Limit: pageSize, Offset: (page - 1) * pageSize}
}
