// internal/repository/storage.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema creates the table backing StorageRepository.
const Schema = `CREATE TABLE IF NOT EXISTS client_storage (
	client_id  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (client_id, key)
)`

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Ping(ctx context.Context) error
}

// StorageRepository keeps per-client items in PostgreSQL.
type StorageRepository struct {
	db DB
}

func NewStorageRepository(db DB) *StorageRepository {
	return &StorageRepository{db: db}
}

func (r *StorageRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create client_storage: %w", err)
	}
	return nil
}

func (r *StorageRepository) GetItem(ctx context.Context, clientID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx,
		"SELECT value FROM client_storage WHERE client_id = $1 AND key = $2",
		clientID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select item: %w", err)
	}
	return value, true, nil
}

func (r *StorageRepository) SetItem(ctx context.Context, clientID, key, value string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO client_storage (client_id, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (client_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		clientID, key, value)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

func (r *StorageRepository) RemoveItem(ctx context.Context, clientID, key string) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM client_storage WHERE client_id = $1 AND key = $2",
		clientID, key)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *StorageRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
