package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema for the documents table the MySQL backend expects.
const MySQLSchema = `
CREATE TABLE IF NOT EXISTS documents (
    name       VARCHAR(191) NOT NULL PRIMARY KEY,
    data       LONGBLOB     NOT NULL,
    updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

type MySQLBackend struct {
	db *sqlx.DB
}

func NewMySQLBackend(db *sqlx.DB) *MySQLBackend {
	return &MySQLBackend{db: db}
}

func (b *MySQLBackend) Migrate(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, MySQLSchema); err != nil {
		return fmt.Errorf("storage.MySQLBackend.Migrate: create documents failed: %w", err)
	}
	return nil
}

func (b *MySQLBackend) Load(ctx context.Context, name string) ([]byte, error) {
	const op = "storage.MySQLBackend.Load"

	const query = `SELECT data FROM documents WHERE name = ?`

	var data []byte
	if err := b.db.GetContext(ctx, &data, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: select document failed: %w", op, err)
	}

	return data, nil
}

// Replace upserts the row; a single statement is atomic in InnoDB.
func (b *MySQLBackend) Replace(ctx context.Context, name string, data []byte) error {
	const op = "storage.MySQLBackend.Replace"

	const query = `
    INSERT INTO documents (name, data)
    VALUES (?, ?)
    ON DUPLICATE KEY UPDATE data = VALUES(data)
    `

	if _, err := b.db.ExecContext(ctx, query, name, data); err != nil {
		return fmt.Errorf("%s: upsert document failed: %w", op, err)
	}

	return nil
}

// Update locks the row with SELECT ... FOR UPDATE inside a transaction. The row is
// created empty first so there is always a record lock to wait on.
func (b *MySQLBackend) Update(ctx context.Context, name string, fn UpdateFunc) (err error) {
	const op = "storage.MySQLBackend.Update"

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin failed: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const ensure = `
    INSERT INTO documents (name, data)
    VALUES (?, '')
    ON DUPLICATE KEY UPDATE name = name
    `
	if _, err = tx.ExecContext(ctx, ensure, name); err != nil {
		return fmt.Errorf("%s: ensure document failed: %w", op, err)
	}

	var current []byte
	if err = tx.GetContext(ctx, &current, `SELECT data FROM documents WHERE name = ? FOR UPDATE`, name); err != nil {
		return fmt.Errorf("%s: lock document failed: %w", op, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next != nil {
		if _, err = tx.ExecContext(ctx, `UPDATE documents SET data = ? WHERE name = ?`, next, name); err != nil {
			return fmt.Errorf("%s: update document failed: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit failed: %w", op, err)
	}

	return nil
}
