// Package pgstore implements store.Store on PostgreSQL with pgx.  Documents
// live in a single JSONB table; filters use the ->> operator and Patch is a
// JSONB concatenation, so every operation is one round trip.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/store"
)

const uniqueViolation = "23505"

const schema = `CREATE TABLE IF NOT EXISTS records (
    seq        BIGSERIAL,
    collection TEXT  NOT NULL,
    id         TEXT  NOT NULL,
    body       JSONB NOT NULL,
    PRIMARY KEY (collection, id)
)`

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// EnsureSchema creates the records table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, c store.Collection, f *store.Filter) ([]store.Record, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if f == nil {
		rows, err = s.pool.Query(ctx,
			`SELECT id, body FROM records WHERE collection = $1 ORDER BY seq`, string(c))
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT id, body FROM records WHERE collection = $1 AND body->>$2 = $3 ORDER BY seq`,
			string(c), f.Field, f.Value)
	}
	if err != nil {
		return nil, store.Unavailable("list", c, err)
	}
	defer rows.Close()
	out := []store.Record{}
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, store.Unavailable("list", c, err)
		}
		out = append(out, store.Record{ID: id, Body: body})
	}
	if err := rows.Err(); err != nil {
		return nil, store.Unavailable("list", c, err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, c store.Collection, id string) (store.Record, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM records WHERE collection = $1 AND id = $2`, string(c), id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, store.NotFound(c, id)
		}
		return store.Record{}, store.Unavailable("get", c, err)
	}
	return store.Record{ID: id, Body: body}, nil
}

func (s *Store) Create(ctx context.Context, c store.Collection, rec store.Record) (store.Record, error) {
	if rec.ID == "" {
		return store.Record{}, fmt.Errorf("create %s: %w: empty id", c, model.ErrInvalid)
	}
	body, err := store.WithID(rec.Body, rec.ID)
	if err != nil {
		return store.Record{}, err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO records (collection, id, body) VALUES ($1, $2, $3::jsonb)`,
		string(c), rec.ID, string(body))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return store.Record{}, store.Conflict(c, rec.ID)
		}
		return store.Record{}, store.Unavailable("create", c, err)
	}
	return store.Record{ID: rec.ID, Body: body}, nil
}

func (s *Store) Replace(ctx context.Context, c store.Collection, id string, body json.RawMessage) (store.Record, error) {
	body, err := store.WithID(body, id)
	if err != nil {
		return store.Record{}, err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE records SET body = $3::jsonb WHERE collection = $1 AND id = $2`,
		string(c), id, string(body))
	if err != nil {
		return store.Record{}, store.Unavailable("replace", c, err)
	}
	if tag.RowsAffected() == 0 {
		return store.Record{}, store.NotFound(c, id)
	}
	return store.Record{ID: id, Body: body}, nil
}

func (s *Store) Patch(ctx context.Context, c store.Collection, id string, fields map[string]any) (store.Record, error) {
	patch, err := store.PatchBody(c, fields)
	if err != nil {
		return store.Record{}, err
	}
	var body []byte
	err = s.pool.QueryRow(ctx,
		`UPDATE records SET body = body || $3::jsonb WHERE collection = $1 AND id = $2 RETURNING body`,
		string(c), id, string(patch)).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, store.NotFound(c, id)
		}
		return store.Record{}, store.Unavailable("patch", c, err)
	}
	return store.Record{ID: id, Body: body}, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM records WHERE collection = $1 AND id = $2`, string(c), id)
	if err != nil {
		return store.Unavailable("delete", c, err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound(c, id)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
