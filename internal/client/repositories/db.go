// Package repositories opens the local SQLite database of the client and
// wires the repositories stored in it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/sehatbeat/internal/client/migrations"
	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories/localdocs"
	"github.com/dmitrijs2005/sehatbeat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sehatbeat/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB        *sql.DB
	Metadata  metadata.Repository
	LocalDocs localdocs.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens dsn, applies migrations and unlocks the local
// documents with secret.
func InitDatabase(ctx context.Context, dsn string, secret string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases and the write lock sane
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	meta := metadata.NewSQLiteRepository(db)
	key, err := localdocs.Unlock(ctx, meta, secret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:        db,
		Metadata:  meta,
		LocalDocs: localdocs.NewSQLiteRepository(db, key),
	}, nil
}
