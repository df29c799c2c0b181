package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result reports the outcome of a write statement.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Client is a thin synchronous wrapper over an embedded SQLite database.
// The connection pool is pinned to a single connection: SQLite allows one
// writer anyway, and a single connection makes in-memory databases behave
// like a file-backed one.
type Client struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// an in-process throwaway database.
func Open(path string) (*Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	return &Client{db: db}, nil
}

// OpenFromConfig opens the database described by cfg.
func OpenFromConfig(cfg Config) (*Client, error) {
	return Open(cfg.DSN())
}

// Query runs a read statement and returns all rows.
func (c *Client) Query(query string, args ...any) ([]Row, error) {
	return queryRows(c.db, query, args...)
}

// QueryOne runs a read statement and returns the first row, or nil when the
// result set is empty.
func (c *Client) QueryOne(query string, args ...any) (Row, error) {
	return queryOneRow(c.db, query, args...)
}

// Exec runs a write statement and reports its outcome.
func (c *Client) Exec(query string, args ...any) (Result, error) {
	return execStmt(c.db, query, args...)
}

// Run executes a statement discarding its outcome. Handy for DDL.
func (c *Client) Run(query string, args ...any) error {
	_, err := execStmt(c.db, query, args...)
	return err
}

// Prepare compiles a statement for repeated execution.
func (c *Client) Prepare(query string) (*Stmt, error) {
	stmt, err := c.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	return &Stmt{stmt: stmt}, nil
}

// Transaction runs fn inside a transaction. The transaction commits when fn
// returns a nil error and rolls back when fn returns an error or panics; the
// panic is re-raised after the rollback. On success fn's result is returned.
func (c *Client) Transaction(fn func(tx *Tx) (any, error)) (result any, err error) {
	sqlTx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	result, err = fn(&Tx{tx: sqlTx})
	if err != nil {
		_ = sqlTx.Rollback()
		return nil, err
	}
	if err := sqlTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return result, nil
}

// Close releases the underlying database handle.
func (c *Client) Close() error {
	return c.db.Close()
}

// Tx exposes the client operations bound to one open transaction.
type Tx struct {
	tx *sql.Tx
}

// Query runs a read statement inside the transaction.
func (t *Tx) Query(query string, args ...any) ([]Row, error) {
	return queryRows(t.tx, query, args...)
}

// QueryOne runs a read statement inside the transaction, returning the first
// row or nil.
func (t *Tx) QueryOne(query string, args ...any) (Row, error) {
	return queryOneRow(t.tx, query, args...)
}

// Exec runs a write statement inside the transaction.
func (t *Tx) Exec(query string, args ...any) (Result, error) {
	return execStmt(t.tx, query, args...)
}

// Run executes a statement inside the transaction discarding its outcome.
func (t *Tx) Run(query string, args ...any) error {
	_, err := execStmt(t.tx, query, args...)
	return err
}

// Stmt is a prepared statement.
type Stmt struct {
	stmt *sql.Stmt
}

// Query runs the prepared statement and returns all rows.
func (s *Stmt) Query(args ...any) ([]Row, error) {
	rows, err := s.stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("query prepared statement: %w", err)
	}
	return collectRows(rows)
}

// QueryOne runs the prepared statement and returns the first row, or nil.
func (s *Stmt) QueryOne(args ...any) (Row, error) {
	rows, err := s.Query(args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Exec runs the prepared statement as a write.
func (s *Stmt) Exec(args ...any) (Result, error) {
	res, err := s.stmt.Exec(args...)
	if err != nil {
		return Result{}, fmt.Errorf("exec prepared statement: %w", err)
	}
	return newResult(res), nil
}

// Close releases the prepared statement.
func (s *Stmt) Close() error {
	return s.stmt.Close()
}

// querier abstracts *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

func queryRows(q querier, query string, args ...any) ([]Row, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return collectRows(rows)
}

func queryOneRow(q querier, query string, args ...any) (Row, error) {
	rows, err := queryRows(q, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func execStmt(q querier, query string, args ...any) (Result, error) {
	res, err := q.Exec(query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("exec: %w", err)
	}
	return newResult(res), nil
}

func newResult(res sql.Result) Result {
	// sqlite supports both; errors here would mean a driver bug
	id, _ := res.LastInsertId()
	n, _ := res.RowsAffected()
	return Result{LastInsertID: id, RowsAffected: n}
}

func collectRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
