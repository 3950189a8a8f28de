// Package sqlstore implements store.Store on MySQL through database/sql.
// All collections share one table of JSON documents keyed by
// (collection, id); an auto-increment seq column preserves insertion order
// for List.  Equality filters use JSON_EXTRACT on the top-level field, and
// Patch uses JSON_MERGE_PATCH so that a partial update is a single
// statement.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

// errDuplicateEntry is MySQL's ER_DUP_ENTRY.
const errDuplicateEntry = 1062

const schema = `CREATE TABLE IF NOT EXISTS records (
    seq        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
    collection VARCHAR(64)  NOT NULL,
    id         VARCHAR(128) NOT NULL,
    body       JSON         NOT NULL,
    PRIMARY KEY (collection, id),
    UNIQUE KEY uq_records_seq (seq)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Store is a MySQL-backed document store.  The DSN must enable
// clientFoundRows so that replacing a document with identical content still
// reports one affected row (see database.OpenMySQL).
type Store struct {
	db *sql.DB
}

// New wraps an open connection pool.  Call EnsureSchema once at startup.
func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the records table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context, c store.Collection, f *store.Filter) ([]store.Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if f == nil {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, body FROM records WHERE collection = ? ORDER BY seq`, string(c))
	} else {
		// JSON_UNQUOTE renders numbers and strings alike, so tableId 5 and "5" both match "5".
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, body FROM records
			 WHERE collection = ? AND JSON_UNQUOTE(JSON_EXTRACT(body, ?)) = ?
			 ORDER BY seq`, string(c), "$."+f.Field, f.Value)
	}
	if err != nil {
		return nil, store.Unavailable("list", c, err)
	}
	defer rows.Close()
	out := []store.Record{}
	for rows.Next() {
		var rec store.Record
		var body []byte
		if err := rows.Scan(&rec.ID, &body); err != nil {
			return nil, store.Unavailable("list", c, err)
		}
		rec.Body = body
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Unavailable("list", c, err)
	}
	return out, nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM records WHERE collection = ? AND id = ?`, string(c), id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Record{}, store.NotFound(c, id)
		}
		return store.Record{}, store.Unavailable("get", c, err)
	}
	return store.Record{ID: id, Body: body}, nil
}

// Create implements store.Store.
func (s *Store) Create(ctx context.Context, c store.Collection, rec store.Record) (store.Record, error) {
	if rec.ID == "" {
		return store.Record{}, fmt.Errorf("create %s: %w: empty id", c, model.ErrInvalid)
	}
	body, err := store.WithID(rec.Body, rec.ID)
	if err != nil {
		return store.Record{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, body) VALUES (?, ?, ?)`, string(c), rec.ID, []byte(body))
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
			return store.Record{}, store.Conflict(c, rec.ID)
		}
		return store.Record{}, store.Unavailable("create", c, err)
	}
	return store.Record{ID: rec.ID, Body: body}, nil
}

// Replace implements store.Store.
func (s *Store) Replace(ctx context.Context, c store.Collection, id string, body json.RawMessage) (store.Record, error) {
	body, err := store.WithID(body, id)
	if err != nil {
		return store.Record{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET body = ? WHERE collection = ? AND id = ?`, []byte(body), string(c), id)
	if err != nil {
		return store.Record{}, store.Unavailable("replace", c, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.Record{}, store.NotFound(c, id)
	}
	return store.Record{ID: id, Body: body}, nil
}

// Patch implements store.Store.
func (s *Store) Patch(ctx context.Context, c store.Collection, id string, fields map[string]any) (store.Record, error) {
	patch, err := store.PatchBody(c, fields)
	if err != nil {
		return store.Record{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE records SET body = JSON_MERGE_PATCH(body, ?) WHERE collection = ? AND id = ?`,
		patch, string(c), id)
	if err != nil {
		return store.Record{}, store.Unavailable("patch", c, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.Record{}, store.NotFound(c, id)
	}
	return s.Get(ctx, c, id)
}

// Delete implements store.Store.
func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, string(c), id)
	if err != nil {
		return store.Unavailable("delete", c, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound(c, id)
	}
	return nil
}

// Close closes the underlying pool.
func (s *Store) Close() error { return s.db.Close() }
