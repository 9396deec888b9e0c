// Package postgres keeps backend documents in a single JSONB table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/models"
	"github.com/dmitrijs2005/sehatbeat/internal/server/migrations"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to dsn and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}
	return New(db), nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Insert(ctx context.Context, c api.Collection, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c, id, err)
	}

	query :=
		`INSERT INTO documents (collection, id, body)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET body = EXCLUDED.body`

	if _, err := s.db.ExecContext(ctx, query, string(c), id, string(body)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, c api.Collection, id string) (json.RawMessage, error) {
	query := `SELECT body FROM documents WHERE collection = $1 AND id = $2`

	var body []byte
	err := s.db.QueryRowContext(ctx, query, string(c), id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return json.RawMessage(body), nil
}

// findQuery builds the SELECT for f. Field names travel as parameters.
func findQuery(c api.Collection, f store.Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT body FROM documents WHERE collection = $1`)
	args := []any{string(c)}

	for _, k := range slices.Sorted(maps.Keys(f)) {
		fmt.Fprintf(&sb, ` AND body->>$%d = $%d`, len(args)+1, len(args)+2)
		args = append(args, k, f[k])
	}
	sb.WriteString(` ORDER BY seq`)
	return sb.String(), args
}

func (s *Store) Find(ctx context.Context, c api.Collection, f store.Filter) ([]json.RawMessage, error) {
	query, args := findQuery(c, f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []json.RawMessage{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (s *Store) Patch(ctx context.Context, c api.Collection, id string, patch models.Patch) error {
	body, err := json.Marshal(map[string]any(patch))
	if err != nil {
		return fmt.Errorf("encode patch %s/%s: %w", c, id, err)
	}

	query := `UPDATE documents SET body = body || $3::jsonb WHERE collection = $1 AND id = $2`

	result, err := s.db.ExecContext(ctx, query, string(c), id, string(body))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(result)
}

func (s *Store) Delete(ctx context.Context, c api.Collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	result, err := s.db.ExecContext(ctx, query, string(c), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(result)
}

func expectOne(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
